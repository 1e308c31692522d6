package services

import (
	portsrepo "github.com/dhanashri-code/expense-tracker/internal/core/ports/repositories"
	portssvc "github.com/dhanashri-code/expense-tracker/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Category = NewCategoryService()
	container.Expense = NewExpenseService(repos.ExpenseRepo, container.Category)
	container.Insight = NewInsightService(repos.ExpenseRepo)

	return container
}
