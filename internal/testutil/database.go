// Package testutil provides shared fixtures for tests that need a populated tracker database.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/tracker/internal/model"
	"github.com/Veraticus/tracker/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new migrated in-memory database.
// It is closed automatically when the test finishes.
//
// Example:
//
//	db := testutil.SetupTestDB(t)
//	db.SeedCategories("rent", "food")
//	db.SeedTransactions(testutil.RentFood()...)
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	store, err := storage.NewSQLiteStorage(storage.InMemory)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return &TestDB{
		Storage: store,
		t:       t,
	}
}

// SeedCategories creates one category per name with an empty description.
func (db *TestDB) SeedCategories(names ...string) []model.Category {
	db.t.Helper()

	created := make([]model.Category, 0, len(names))
	for _, name := range names {
		cat, err := db.Storage.CreateCategory(context.Background(), name, "")
		if err != nil {
			db.t.Fatalf("failed to seed category %q: %v", name, err)
		}
		created = append(created, *cat)
	}
	return created
}

// SeedTransactions adds the transactions in order and returns them with IDs assigned.
func (db *TestDB) SeedTransactions(txns ...model.Transaction) []model.Transaction {
	db.t.Helper()

	saved := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		got, err := db.Storage.AddTransaction(context.Background(), txn)
		if err != nil {
			db.t.Fatalf("failed to seed transaction %+v: %v", txn, err)
		}
		saved = append(saved, *got)
	}
	return saved
}

// RentFood returns a small ledger spanning two months:
// rent totals 125, food totals -50, January nets 50 and February 25.
func RentFood() []model.Transaction {
	return []model.Transaction{
		{Amount: 100, Category: "rent", Date: 20230101, Description: "jan rent"},
		{Amount: -50, Category: "food", Date: 20230115, Description: "refund"},
		{Amount: 25, Category: "rent", Date: 20230201, Description: "late fee"},
	}
}
