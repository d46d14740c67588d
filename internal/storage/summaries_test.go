package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tracker/internal/model"
)

func TestSQLiteStorage_SummariesEmpty(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for name, fn := range map[string]func(context.Context) ([]model.PeriodTotal, error){
		"date":  store.TotalsByDate,
		"month": store.TotalsByMonth,
		"year":  store.TotalsByYear,
	} {
		t.Run(name, func(t *testing.T) {
			totals, err := fn(ctx)
			require.NoError(t, err)
			assert.NotNil(t, totals)
			assert.Empty(t, totals)
		})
	}

	totals, err := store.TotalsByCategory(ctx)
	require.NoError(t, err)
	assert.NotNil(t, totals)
	assert.Empty(t, totals)
}

func TestSQLiteStorage_SummariesRentFood(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	addTransactions(t, store,
		model.Transaction{Amount: 100, Category: "rent", Date: 20230101, Description: "jan rent"},
		model.Transaction{Amount: -50, Category: "food", Date: 20230115, Description: "refund"},
		model.Transaction{Amount: 25, Category: "rent", Date: 20230201, Description: "late fee"},
	)

	byCategory, err := store.TotalsByCategory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryTotal{
		{Category: "food", Amount: -50},
		{Category: "rent", Amount: 125},
	}, byCategory)

	byMonth, err := store.TotalsByMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.PeriodTotal{
		{Period: 202301, Amount: 50},
		{Period: 202302, Amount: 25},
	}, byMonth)

	byYear, err := store.TotalsByYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.PeriodTotal{{Period: 2023, Amount: 75}}, byYear)

	byDate, err := store.TotalsByDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.PeriodTotal{
		{Period: 20230101, Amount: 100},
		{Period: 20230115, Amount: -50},
		{Period: 20230201, Amount: 25},
	}, byDate)
}

func TestSQLiteStorage_SummaryKeysTruncate(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	addTransactions(t, store,
		model.Transaction{Amount: 10, Category: "x", Date: 20230415},
		model.Transaction{Amount: 5, Category: "x", Date: 20231399},
	)

	byMonth, err := store.TotalsByMonth(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.PeriodTotal{
		{Period: 202304, Amount: 10},
		{Period: 202313, Amount: 5},
	}, byMonth)

	byYear, err := store.TotalsByYear(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.PeriodTotal{{Period: 2023, Amount: 15}}, byYear)
}

func TestSQLiteStorage_CategoryTotalsCaseSensitive(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()

	addTransactions(t, store,
		model.Transaction{Amount: 1, Category: "food", Date: 20230101},
		model.Transaction{Amount: 2, Category: "Food", Date: 20230101},
		model.Transaction{Amount: 4, Category: "food", Date: 20230102},
	)

	totals, err := store.TotalsByCategory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryTotal{
		{Category: "Food", Amount: 2},
		{Category: "food", Amount: 5},
	}, totals)
}

func TestSQLiteStorage_SummariesPartitionTotal(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	txns := []model.Transaction{
		{Amount: 1200, Category: "rent", Date: 20221231},
		{Amount: -300, Category: "refund", Date: 20230101},
		{Amount: 45, Category: "food", Date: 20230101},
		{Amount: 80, Category: "food", Date: 20230315},
		{Amount: 0, Category: "", Date: 20240229},
		{Amount: 17, Category: "Food", Date: 20240301},
	}
	saved := addTransactions(t, store, txns...)

	var want int64
	for _, txn := range saved {
		want += txn.Amount
	}

	sumPeriods := func(totals []model.PeriodTotal) int64 {
		var sum int64
		for _, total := range totals {
			sum += total.Amount
		}
		return sum
	}

	byDate, err := store.TotalsByDate(ctx)
	require.NoError(t, err)
	byMonth, err := store.TotalsByMonth(ctx)
	require.NoError(t, err)
	byYear, err := store.TotalsByYear(ctx)
	require.NoError(t, err)
	byCategory, err := store.TotalsByCategory(ctx)
	require.NoError(t, err)

	assert.Equal(t, want, sumPeriods(byDate))
	assert.Equal(t, want, sumPeriods(byMonth))
	assert.Equal(t, want, sumPeriods(byYear))

	var categorySum int64
	for _, total := range byCategory {
		categorySum += total.Amount
	}
	assert.Equal(t, want, categorySum)

	assert.Len(t, byDate, 5)
	assert.Len(t, byMonth, 5)
	assert.Len(t, byYear, 3)
	assert.Len(t, byCategory, 5)
}
