package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/dhanashri-code/expense-tracker/internal/core/ports/services"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
)

// predictHandler handles category prediction requests.
type predictHandler struct {
	categoryService portssvc.CategorySvcFacade
}

func newPredictHandler(categoryService portssvc.CategorySvcFacade) *predictHandler {
	return &predictHandler{
		categoryService: categoryService,
	}
}

// predictCategory godoc
// @Summary Predict a category for a title
// @Description Keyword-based classification; unknown titles map to "Other".
// @Tags predict
// @Accept json
// @Produce json
// @Param title body dto.PredictCategoryRequest true "Expense title"
// @Success 200 {object} dto.PredictCategoryResponse
// @Failure 400 {object} ErrorResponse "Title is required"
// @Router /predict [post]
func (h *predictHandler) predictCategory(c *gin.Context) {
	var req dto.PredictCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Title is required"})
		return
	}

	c.JSON(http.StatusOK, dto.PredictCategoryResponse{
		PredictedCategory: h.categoryService.PredictCategory(req.Title),
	})
}

// registerPredictRoutes registers prediction specific routes.
func registerPredictRoutes(group *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := newPredictHandler(categoryService)
	group.POST("/predict", h.predictCategory)
}
