package postgres

import (
	"context"

	"pfm/internal/domain/entity"
	domainerrors "pfm/internal/domain/errors"
	"pfm/internal/domain/repository"
	"pfm/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// The finance repositories share one shape: list newest-first scoped to the
// owner, and create with generated IDs written back to the entity.

// transactionRepository implements the domain.TransactionRepository interface using GORM.
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository is the constructor for transactionRepository.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

func (repo *transactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Transaction, error) {
	var rows []*model.TransactionModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	txns := make([]*entity.Transaction, 0, len(rows))
	for _, row := range rows {
		txns = append(txns, toTransactionDomain(row))
	}

	return txns, nil
}

func (repo *transactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	txnM := &model.TransactionModel{
		UserID:     txn.UserID,
		CategoryID: txn.CategoryID,
		Amount:     txn.Amount,
		Currency:   txn.Currency,
		Note:       txn.Note,
		OccurredAt: txn.OccurredAt,
	}

	if err := repo.db.WithContext(ctx).Create(txnM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "unknown category reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create transaction")
	}

	txn.ID = txnM.ID
	txn.CreatedAt = txnM.CreatedAt
	txn.UpdatedAt = txnM.UpdatedAt

	return nil
}

func toTransactionDomain(data *model.TransactionModel) *entity.Transaction {
	return &entity.Transaction{
		ID:         data.ID,
		UserID:     data.UserID,
		CategoryID: data.CategoryID,
		Amount:     data.Amount,
		Currency:   data.Currency,
		Note:       data.Note,
		OccurredAt: data.OccurredAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// categoryRepository implements the domain.CategoryRepository interface using GORM.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Category, error) {
	var rows []*model.CategoryModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, &entity.Category{
			ID:        row.ID,
			UserID:    row.UserID,
			Name:      row.Name,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	return categories, nil
}

func (repo *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	categoryM := &model.CategoryModel{
		UserID: category.UserID,
		Name:   category.Name,
	}

	if err := repo.db.WithContext(ctx).Create(categoryM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("category name already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create category")
	}

	category.ID = categoryM.ID
	category.CreatedAt = categoryM.CreatedAt
	category.UpdatedAt = categoryM.UpdatedAt

	return nil
}

// budgetRepository implements the domain.BudgetRepository interface using GORM.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository is the constructor for budgetRepository.
func NewBudgetRepository(db *gorm.DB) repository.BudgetRepository {
	return &budgetRepository{db: db}
}

func (repo *budgetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var rows []*model.BudgetModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list budgets")
	}

	budgets := make([]*entity.Budget, 0, len(rows))
	for _, row := range rows {
		budgets = append(budgets, &entity.Budget{
			ID:         row.ID,
			UserID:     row.UserID,
			CategoryID: row.CategoryID,
			Limit:      row.Limit,
			Period:     row.Period,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
		})
	}

	return budgets, nil
}

func (repo *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetM := &model.BudgetModel{
		UserID:     budget.UserID,
		CategoryID: budget.CategoryID,
		Limit:      budget.Limit,
		Period:     budget.Period,
	}

	if err := repo.db.WithContext(ctx).Create(budgetM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "unknown category reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create budget")
	}

	budget.ID = budgetM.ID
	budget.CreatedAt = budgetM.CreatedAt
	budget.UpdatedAt = budgetM.UpdatedAt

	return nil
}

// goalRepository implements the domain.GoalRepository interface using GORM.
type goalRepository struct {
	db *gorm.DB
}

// NewGoalRepository is the constructor for goalRepository.
func NewGoalRepository(db *gorm.DB) repository.GoalRepository {
	return &goalRepository{db: db}
}

func (repo *goalRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Goal, error) {
	var rows []*model.GoalModel
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list goals")
	}

	goals := make([]*entity.Goal, 0, len(rows))
	for _, row := range rows {
		goals = append(goals, &entity.Goal{
			ID:        row.ID,
			UserID:    row.UserID,
			Name:      row.Name,
			Target:    row.Target,
			Saved:     row.Saved,
			DueAt:     row.DueAt,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
		})
	}

	return goals, nil
}

func (repo *goalRepository) Create(ctx context.Context, goal *entity.Goal) error {
	goalM := &model.GoalModel{
		UserID: goal.UserID,
		Name:   goal.Name,
		Target: goal.Target,
		Saved:  goal.Saved,
		DueAt:  goal.DueAt,
	}

	if err := repo.db.WithContext(ctx).Create(goalM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create goal")
	}

	goal.ID = goalM.ID
	goal.CreatedAt = goalM.CreatedAt
	goal.UpdatedAt = goalM.UpdatedAt

	return nil
}
