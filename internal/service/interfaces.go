// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/tracker/internal/model"
)

// CategoryStore is the durable mapping from category ID to name and description.
type CategoryStore interface {
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id int64) (*model.Category, error)
	// UpdateCategory returns an error wrapping common.ErrNotFound when no row has id.
	UpdateCategory(ctx context.Context, id int64, name, description string) error
}

// ReportReader is the read side of TransactionStore: the full transaction
// list and the grouped-sum summaries.
type ReportReader interface {
	GetTransactions(ctx context.Context) ([]model.Transaction, error)
	TotalsByDate(ctx context.Context) ([]model.PeriodTotal, error)
	TotalsByMonth(ctx context.Context) ([]model.PeriodTotal, error)
	TotalsByYear(ctx context.Context) ([]model.PeriodTotal, error)
	TotalsByCategory(ctx context.Context) ([]model.CategoryTotal, error)
}

// Snapshotter is implemented by stores that can run a group of reads against
// one consistent view. fn must not write through the store or call back into
// the outer store.
type Snapshotter interface {
	ReadSnapshot(ctx context.Context, fn func(ReportReader) error) error
}

// TransactionStore is the durable mapping from transaction ID to its fields,
// plus grouped-sum summaries over all stored transactions.
type TransactionStore interface {
	ReportReader

	AddTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	// DeleteTransaction returns an error wrapping common.ErrNotFound when no row has id.
	DeleteTransaction(ctx context.Context, id int64) error
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	CategoryStore
	TransactionStore

	// Database management
	Migrate(ctx context.Context) error
	SchemaVersion(ctx context.Context) (int, error)
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
