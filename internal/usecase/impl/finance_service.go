package impl

import (
	"context"

	"pfm/internal/domain/entity"
	"pfm/internal/domain/repository"
	"pfm/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// transactionService implements the TransactionUsecase interface.
type transactionService struct {
	repo repository.TransactionRepository
}

// NewTransactionService is the constructor for transactionService.
func NewTransactionService(repo repository.TransactionRepository) usecase.TransactionUsecase {
	return &transactionService{repo: repo}
}

func (srv *transactionService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	txns, err := srv.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return txns, nil
}

func (srv *transactionService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateTransactionInput) (*entity.Transaction, error) {
	txn := &entity.Transaction{
		UserID:     userID,
		CategoryID: input.CategoryID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Note:       input.Note,
		OccurredAt: input.OccurredAt,
	}

	if err := srv.repo.Create(ctx, txn); err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	return txn, nil
}

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(repo repository.CategoryRepository) usecase.CategoryUsecase {
	return &categoryService{repo: repo}
}

func (srv *categoryService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	categories, err := srv.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *categoryService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateCategoryInput) (*entity.Category, error) {
	category := &entity.Category{
		UserID: userID,
		Name:   input.Name,
	}

	if err := srv.repo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	return category, nil
}

// budgetService implements the BudgetUsecase interface.
type budgetService struct {
	repo repository.BudgetRepository
}

// NewBudgetService is the constructor for budgetService.
func NewBudgetService(repo repository.BudgetRepository) usecase.BudgetUsecase {
	return &budgetService{repo: repo}
}

func (srv *budgetService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	budgets, err := srv.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list budgets")
	}

	return budgets, nil
}

func (srv *budgetService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateBudgetInput) (*entity.Budget, error) {
	budget := &entity.Budget{
		UserID:     userID,
		CategoryID: input.CategoryID,
		Limit:      input.Limit,
		Period:     input.Period,
	}

	if err := srv.repo.Create(ctx, budget); err != nil {
		return nil, errors.Wrap(err, "failed to create budget")
	}

	return budget, nil
}

// goalService implements the GoalUsecase interface.
type goalService struct {
	repo repository.GoalRepository
}

// NewGoalService is the constructor for goalService.
func NewGoalService(repo repository.GoalRepository) usecase.GoalUsecase {
	return &goalService{repo: repo}
}

func (srv *goalService) List(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	goals, err := srv.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list goals")
	}

	return goals, nil
}

func (srv *goalService) Create(ctx context.Context, userID uuid.UUID, input *usecase.CreateGoalInput) (*entity.Goal, error) {
	goal := &entity.Goal{
		UserID: userID,
		Name:   input.Name,
		Target: input.Target,
		DueAt:  input.DueAt,
	}

	if err := srv.repo.Create(ctx, goal); err != nil {
		return nil, errors.Wrap(err, "failed to create goal")
	}

	return goal, nil
}
