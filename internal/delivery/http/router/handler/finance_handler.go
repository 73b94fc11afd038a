package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "pfm/internal/delivery/context"
	"pfm/internal/delivery/http/response"
	"pfm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// FinanceHandler holds dependencies for the finance resource handlers.
// All routes sit behind the auth guard, so an identity is always present.
type FinanceHandler struct {
	transactions usecase.TransactionUsecase
	categories   usecase.CategoryUsecase
	budgets      usecase.BudgetUsecase
	goals        usecase.GoalUsecase
	logger       *slog.Logger
}

// NewFinanceHandler is the constructor for FinanceHandler, injected by Fx.
func NewFinanceHandler(
	transactions usecase.TransactionUsecase,
	categories usecase.CategoryUsecase,
	budgets usecase.BudgetUsecase,
	goals usecase.GoalUsecase,
	logger *slog.Logger,
) *FinanceHandler {
	return &FinanceHandler{
		transactions: transactions,
		categories:   categories,
		budgets:      budgets,
		goals:        goals,
		logger:       logger,
	}
}

// identity reads the guard-attached identity; the guard guarantees presence.
func identity(c echo.Context) (*deliverycontext.Identity, error) {
	id, ok := deliverycontext.GetIdentity(c.Request().Context())
	if !ok {
		return nil, response.Unauthorized(c, "INVALID_TOKEN", "Authentication required")
	}

	return id, nil
}

// ListTransactions returns the caller's transactions, newest first.
func (h *FinanceHandler) ListTransactions(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	txns, err := h.transactions.List(c.Request().Context(), id.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, txns, "Transactions retrieved successfully")
}

// CreateTransaction records a new transaction for the caller.
func (h *FinanceHandler) CreateTransaction(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateTransactionInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid transaction input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	txn, err := h.transactions.Create(c.Request().Context(), id.UserID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, txn, "Transaction created successfully")
}

// ListCategories returns the caller's categories.
func (h *FinanceHandler) ListCategories(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	categories, err := h.categories.List(c.Request().Context(), id.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "Categories retrieved successfully")
}

// CreateCategory creates a new category for the caller.
func (h *FinanceHandler) CreateCategory(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateCategoryInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.categories.Create(c.Request().Context(), id.UserID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created successfully")
}

// ListBudgets returns the caller's budgets.
func (h *FinanceHandler) ListBudgets(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	budgets, err := h.budgets.List(c.Request().Context(), id.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, budgets, "Budgets retrieved successfully")
}

// CreateBudget creates a new budget for the caller.
func (h *FinanceHandler) CreateBudget(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateBudgetInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid budget input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	budget, err := h.budgets.Create(c.Request().Context(), id.UserID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, budget, "Budget created successfully")
}

// ListGoals returns the caller's savings goals.
func (h *FinanceHandler) ListGoals(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	goals, err := h.goals.List(c.Request().Context(), id.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, goals, "Goals retrieved successfully")
}

// CreateGoal creates a new savings goal for the caller.
func (h *FinanceHandler) CreateGoal(c echo.Context) error {
	id, err := identity(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateGoalInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid goal input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	goal, err := h.goals.Create(c.Request().Context(), id.UserID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, goal, "Goal created successfully")
}
