package usecase

import (
	"context"
	"time"

	"pfm/internal/domain/entity"

	"github.com/google/uuid"
)

// The finance usecases below are thin owner-scoped list/create flows. They
// exist so the guarded API surface has real resources behind it; richer
// operations (update, delete, reporting) land with the ingestion pipeline.

// --- Transactions ---

// CreateTransactionInput defines the data required to record a transaction.
type CreateTransactionInput struct {
	CategoryID *uuid.UUID `json:"categoryId"`
	Amount     int64      `json:"amount" validate:"required"`
	Currency   string     `json:"currency" validate:"required,len=3"`
	Note       string     `json:"note"`
	OccurredAt time.Time  `json:"occurredAt" validate:"required"`
}

// TransactionUsecase defines owner-scoped transaction operations.
type TransactionUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)
	Create(ctx context.Context, userID uuid.UUID, input *CreateTransactionInput) (*entity.Transaction, error)
}

// --- Categories ---

// CreateCategoryInput defines the data required to create a category.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required"`
}

// CategoryUsecase defines owner-scoped category operations.
type CategoryUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)
	Create(ctx context.Context, userID uuid.UUID, input *CreateCategoryInput) (*entity.Category, error)
}

// --- Budgets ---

// CreateBudgetInput defines the data required to create a budget.
type CreateBudgetInput struct {
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
	Limit      int64     `json:"limit" validate:"required,gt=0"`
	Period     string    `json:"period" validate:"required"`
}

// BudgetUsecase defines owner-scoped budget operations.
type BudgetUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)
	Create(ctx context.Context, userID uuid.UUID, input *CreateBudgetInput) (*entity.Budget, error)
}

// --- Goals ---

// CreateGoalInput defines the data required to create a savings goal.
type CreateGoalInput struct {
	Name   string     `json:"name" validate:"required"`
	Target int64      `json:"target" validate:"required,gt=0"`
	DueAt  *time.Time `json:"dueAt"`
}

// GoalUsecase defines owner-scoped savings goal operations.
type GoalUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)
	Create(ctx context.Context, userID uuid.UUID, input *CreateGoalInput) (*entity.Goal, error)
}
