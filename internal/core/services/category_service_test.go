package services_test

import (
	"testing"

	"github.com/dhanashri-code/expense-tracker/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestPredictCategory(t *testing.T) {
	svc := services.NewCategoryService()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "electricity bill", title: "Electricity Bill January", want: "Electricity"},
		{name: "fuel", title: "Fuel for delivery van", want: "Fuel"},
		{name: "salary", title: "Staff Salary", want: "Salary"},
		{name: "rent", title: "Office Rent", want: "Rent"},
		{name: "inventory keyword", title: "New inventory purchase", want: "Inventory"},
		{name: "stock keyword", title: "Stock refill", want: "Inventory"},
		{name: "case insensitive", title: "ELECTRIC connection charges", want: "Electricity"},
		{name: "no keyword match", title: "random text", want: "Other"},
		{name: "empty title", title: "", want: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.PredictCategory(tt.title))
		})
	}
}

func TestResolveCategory(t *testing.T) {
	svc := services.NewCategoryService()

	tests := []struct {
		name      string
		category  string
		predicted string
		want      string
	}{
		{name: "explicit category wins", category: "Business Transaction", predicted: "Rent", want: "Business Transaction"},
		{name: "predicted fills the gap", category: "", predicted: "Rent", want: "Rent"},
		{name: "fallback when both empty", category: "", predicted: "", want: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.ResolveCategory(tt.category, tt.predicted))
		})
	}
}
