package service

import (
	"context"
	"fmt"

	"github.com/Veraticus/tracker/internal/model"
)

// Report holds every transaction together with the four summaries.
// Exporters consume it so that all outputs describe the same store state.
type Report struct {
	Transactions []model.Transaction
	ByDate       []model.PeriodTotal
	ByMonth      []model.PeriodTotal
	ByYear       []model.PeriodTotal
	ByCategory   []model.CategoryTotal
	Total        int64
}

// LoadReport reads all transactions and summaries from store. When store is
// a Snapshotter every read happens inside one snapshot.
func LoadReport(ctx context.Context, store ReportReader) (*Report, error) {
	var r Report

	if snap, ok := store.(Snapshotter); ok {
		err := snap.ReadSnapshot(ctx, func(view ReportReader) error {
			return r.load(ctx, view)
		})
		if err != nil {
			return nil, err
		}
		return &r, nil
	}

	if err := r.load(ctx, store); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Report) load(ctx context.Context, store ReportReader) error {
	var err error

	if r.Transactions, err = store.GetTransactions(ctx); err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	if r.ByDate, err = store.TotalsByDate(ctx); err != nil {
		return fmt.Errorf("failed to load totals by date: %w", err)
	}
	if r.ByMonth, err = store.TotalsByMonth(ctx); err != nil {
		return fmt.Errorf("failed to load totals by month: %w", err)
	}
	if r.ByYear, err = store.TotalsByYear(ctx); err != nil {
		return fmt.Errorf("failed to load totals by year: %w", err)
	}
	if r.ByCategory, err = store.TotalsByCategory(ctx); err != nil {
		return fmt.Errorf("failed to load totals by category: %w", err)
	}

	r.Total = 0
	for _, txn := range r.Transactions {
		r.Total += txn.Amount
	}
	return nil
}

// Table is one rectangular view of a Report: the transaction list or one summary.
type Table struct {
	Title  string
	Name   string
	Header []string
	Rows   [][]any
}

// Tables returns the report views in a fixed order: transactions, then the
// date, month, year and category summaries.
func (r *Report) Tables() []Table {
	transactions := make([][]any, 0, len(r.Transactions))
	for _, txn := range r.Transactions {
		transactions = append(transactions, []any{txn.ID, txn.Amount, txn.Category, int(txn.Date), txn.Description})
	}

	periodRows := func(totals []model.PeriodTotal) [][]any {
		rows := make([][]any, 0, len(totals))
		for _, total := range totals {
			rows = append(rows, []any{total.Period, total.Amount})
		}
		return rows
	}

	byCategory := make([][]any, 0, len(r.ByCategory))
	for _, total := range r.ByCategory {
		byCategory = append(byCategory, []any{total.Category, total.Amount})
	}

	return []Table{
		{
			Title:  "Transactions",
			Name:   "transactions",
			Header: []string{"item #", "amount", "category", "date", "description"},
			Rows:   transactions,
		},
		{Title: "By Date", Name: "by_date", Header: []string{"date", "amount"}, Rows: periodRows(r.ByDate)},
		{Title: "By Month", Name: "by_month", Header: []string{"month", "amount"}, Rows: periodRows(r.ByMonth)},
		{Title: "By Year", Name: "by_year", Header: []string{"year", "amount"}, Rows: periodRows(r.ByYear)},
		{Title: "By Category", Name: "by_category", Header: []string{"category", "amount"}, Rows: byCategory},
	}
}
