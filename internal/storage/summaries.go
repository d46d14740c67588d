package storage

import (
	"context"
	"fmt"

	"github.com/Veraticus/tracker/internal/model"
)

// Period grouping keys are integer truncations of the yyyymmdd date column.
// No calendar functions are involved, so 20231399 groups under month 202313.
const (
	dateKey  = `date`
	monthKey = `date / 100`
	yearKey  = `date / 10000`
)

// TotalsByDate sums amounts per distinct date, ascending by date.
func (s *SQLiteStorage) TotalsByDate(ctx context.Context) ([]model.PeriodTotal, error) {
	return s.periodTotals(ctx, dateKey)
}

// TotalsByMonth sums amounts per yyyymm key, ascending.
func (s *SQLiteStorage) TotalsByMonth(ctx context.Context) ([]model.PeriodTotal, error) {
	return s.periodTotals(ctx, monthKey)
}

// TotalsByYear sums amounts per yyyy key, ascending.
func (s *SQLiteStorage) TotalsByYear(ctx context.Context) ([]model.PeriodTotal, error) {
	return s.periodTotals(ctx, yearKey)
}

func (s *SQLiteStorage) periodTotals(ctx context.Context, key string) ([]model.PeriodTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	// key is one of the package constants above, never user input.
	query := fmt.Sprintf(`
		SELECT %[1]s AS period, SUM(amount)
		FROM "transaction"
		GROUP BY period
		ORDER BY period`, key)

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	totals := []model.PeriodTotal{}
	for rows.Next() {
		var total model.PeriodTotal
		if err := rows.Scan(&total.Period, &total.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating totals: %w", err)
	}

	return totals, nil
}

// TotalsByCategory sums amounts per exact, case-sensitive category label.
// Rows are ordered by the label's byte order.
func (s *SQLiteStorage) TotalsByCategory(ctx context.Context) ([]model.CategoryTotal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT category, SUM(amount)
		FROM "transaction"
		GROUP BY category COLLATE BINARY
		ORDER BY category COLLATE BINARY`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category totals: %w", err)
	}
	defer rows.Close()

	totals := []model.CategoryTotal{}
	for rows.Next() {
		var total model.CategoryTotal
		if err := rows.Scan(&total.Category, &total.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan category total: %w", err)
		}
		totals = append(totals, total)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category totals: %w", err)
	}

	return totals, nil
}
