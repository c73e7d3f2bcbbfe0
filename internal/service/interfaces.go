// Package service defines the contracts between the ledger components and the
// persistence layer.
package service

import (
	"context"

	"tally/internal/model"
)

// TransactionFilter narrows ListTransactions results. Start and End are
// inclusive calendar dates; a zero Limit means no pagination.
type TransactionFilter struct {
	Start  *model.Date
	End    *model.Date
	Limit  int
	Offset int
}

// KindTotals carries per-kind sums for a period, accumulated in integer cents.
type KindTotals struct {
	Income  model.Money
	Expense model.Money
}

// Storage defines the contract for the persistence layer. Each method is one
// transactional unit of work on its own connection handle; there is no
// cross-call transaction or long-held lock.
type Storage interface {
	// Category operations
	ListCategories(ctx context.Context) ([]model.Category, error)
	ListCategoriesByKind(ctx context.Context, kind model.Kind) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, name string, kind model.Kind) (*model.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
	CountTransactionsByCategory(ctx context.Context, id int64) (int, error)

	// Transaction operations
	InsertTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn *model.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	SumAmountsByKind(ctx context.Context, start, end model.Date) (KindTotals, error)

	// Database management
	Migrate(ctx context.Context) error
	Path() string
	Close() error
}
