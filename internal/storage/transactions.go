package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/tracker/internal/model"
)

const insertTransactionQuery = `
	INSERT INTO "transaction" (amount, category, date, description)
	VALUES (?, ?, ?, ?)`

// AddTransaction inserts txn and returns a copy carrying its store-assigned ID.
// Any ID already set on txn is ignored.
func (s *SQLiteStorage) AddTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	id, err := insertTransaction(ctx, s.q, txn)
	if err != nil {
		return nil, err
	}

	txn.ID = id
	slog.Debug("added transaction", "id", id, "amount", txn.Amount, "date", txn.Date)
	return &txn, nil
}

// SaveTransactions inserts all transactions in one database transaction.
// Either every row is stored or none is.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, txn := range transactions {
		if _, err := insertTransaction(ctx, tx, txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transactions: %w", err)
	}

	slog.Info("saved transactions", "count", len(transactions))
	return nil
}

func insertTransaction(ctx context.Context, q queryable, txn model.Transaction) (int64, error) {
	result, err := q.ExecContext(ctx, insertTransactionQuery,
		txn.Amount, txn.Category, int(txn.Date), txn.Description)
	if err != nil {
		return 0, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction ID: %w", err)
	}
	return id, nil
}

// GetTransactions returns every transaction in insertion order.
func (s *SQLiteStorage) GetTransactions(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT id, amount, category, date, description
		FROM "transaction"
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var (
			txn  model.Transaction
			date int
		)
		if err := rows.Scan(&txn.ID, &txn.Amount, &txn.Category, &date, &txn.Description); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Date = model.Date(date)
		transactions = append(transactions, txn)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}

// DeleteTransaction removes the transaction with id.
// When no row matches, nothing changes and the error wraps common.ErrNotFound.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.q.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := requireAffected(result, "transaction", id); err != nil {
		return err
	}

	slog.Debug("deleted transaction", "id", id)
	return nil
}
