package dto

// PredictCategoryRequest asks for a category prediction for a title.
type PredictCategoryRequest struct {
	Title string `json:"title" binding:"required"`
}

// PredictCategoryResponse carries the predicted category label.
type PredictCategoryResponse struct {
	PredictedCategory string `json:"predictedCategory"`
}
