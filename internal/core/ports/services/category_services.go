package services

// CategorySvcFacade defines the keyword-based category prediction used at
// expense creation and by the prediction endpoint.
type CategorySvcFacade interface {
	// PredictCategory maps a free-text title to a category label.
	// Total and deterministic; unknown titles map to "Other".
	PredictCategory(title string) string

	// ResolveCategory applies the explicit -> predicted -> "Other"
	// fallback chain.
	ResolveCategory(category, predicted string) string
}
