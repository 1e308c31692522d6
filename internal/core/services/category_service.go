package services

import (
	"strings"

	portssvc "github.com/dhanashri-code/expense-tracker/internal/core/ports/services"
)

// FallbackCategory is assigned when no explicit or predicted category applies.
const FallbackCategory = "Other"

// categoryRule maps title keywords to a category label. Rules are evaluated
// in order; the first keyword hit wins.
type categoryRule struct {
	keywords []string
	category string
}

var categoryRules = []categoryRule{
	{keywords: []string{"electric"}, category: "Electricity"},
	{keywords: []string{"fuel"}, category: "Fuel"},
	{keywords: []string{"salary"}, category: "Salary"},
	{keywords: []string{"rent"}, category: "Rent"},
	{keywords: []string{"inventory", "stock"}, category: "Inventory"},
}

// categoryService provides keyword-based category prediction.
type categoryService struct{}

// NewCategoryService creates a new CategoryService.
func NewCategoryService() portssvc.CategorySvcFacade {
	return &categoryService{}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

// PredictCategory lower-cases the title and tests it against the ordered
// keyword rules. Unknown titles map to FallbackCategory.
func (s *categoryService) PredictCategory(title string) string {
	text := strings.ToLower(title)
	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(text, keyword) {
				return rule.category
			}
		}
	}
	return FallbackCategory
}

// ResolveCategory picks the explicit category when given, then the
// prediction, then FallbackCategory.
func (s *categoryService) ResolveCategory(category, predicted string) string {
	if category != "" {
		return category
	}
	if predicted != "" {
		return predicted
	}
	return FallbackCategory
}
