package repository

import (
	"context"
	"errors"

	"pfm/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRecordNotFound is returned when a finance record does not exist.
var ErrRecordNotFound = errors.New("record not found")

// TransactionRepository persists financial entries, always scoped to an owner.
type TransactionRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error)
	Create(ctx context.Context, txn *entity.Transaction) error
}

// CategoryRepository persists transaction categories.
type CategoryRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) error
}

// BudgetRepository persists per-category budgets.
type BudgetRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)
	Create(ctx context.Context, budget *entity.Budget) error
}

// GoalRepository persists savings goals.
type GoalRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error)
	Create(ctx context.Context, goal *entity.Goal) error
}
