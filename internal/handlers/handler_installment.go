package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dhanashri-code/expense-tracker/internal/apperrors"
	portssvc "github.com/dhanashri-code/expense-tracker/internal/core/ports/services"
	"github.com/dhanashri-code/expense-tracker/internal/dto"
	"github.com/dhanashri-code/expense-tracker/internal/middleware"
)

// installmentHandler handles payment events recorded against expenses.
type installmentHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newInstallmentHandler(expenseService portssvc.ExpenseSvcFacade) *installmentHandler {
	return &installmentHandler{
		expenseService: expenseService,
	}
}

// addInstallment godoc
// @Summary Record an installment payment
// @Description Appends a payment event to a debit expense and returns the expense with recomputed derived fields.
// @Tags installments
// @Accept json
// @Produce json
// @Param expenseId path string true "Expense ID"
// @Param installment body dto.AddInstallmentRequest true "Payment event"
// @Success 200 {object} dto.ExpenseResponse
// @Failure 400 {object} ErrorResponse "Installments allowed only for debit expenses"
// @Failure 404 {object} ErrorResponse "Expense not found"
// @Failure 500 {object} ErrorResponse
// @Router /installments/{expenseId} [post]
func (h *installmentHandler) addInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	expenseID := c.Param("expenseId")

	var req dto.AddInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	expense, err := h.expenseService.AddInstallment(c.Request.Context(), expenseID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Expense not found"})
		case errors.Is(err, apperrors.ErrInvalidOperation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Installments allowed only for debit expenses"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to add installment", slog.String("error", err.Error()), slog.String("expense_id", expenseID))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to add installment"})
		}
		return
	}

	logger.Info("Installment recorded", slog.String("expense_id", expenseID))
	c.JSON(http.StatusOK, dto.ToExpenseResponse(expense))
}

// registerInstallmentRoutes registers installment specific routes.
func registerInstallmentRoutes(group *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newInstallmentHandler(expenseService)

	installments := group.Group("/installments")
	{
		installments.POST("/:expenseId", h.addInstallment)
	}
}
