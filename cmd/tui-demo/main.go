// Package main runs the browse view over a generated in-memory ledger.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/Veraticus/tracker/internal/model"
	"github.com/Veraticus/tracker/internal/storage"
	"github.com/Veraticus/tracker/internal/tui"
	"github.com/Veraticus/tracker/internal/tui/themes"
)

var samples = []struct {
	category    string
	description string
	low, high   int64
}{
	{"groceries", "Whole Foods Market", -15000, -2000},
	{"shopping", "Amazon.com", -9000, -500},
	{"fuel", "Shell Oil", -7000, -3000},
	{"subscriptions", "Netflix", -1599, -1599},
	{"coffee", "Starbucks", -900, -300},
	{"dining", "Chipotle", -2500, -1100},
	{"income", "Payroll", 250000, 250000},
}

func main() {
	if err := run(context.Background(), 100); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, count int) error {
	store, err := storage.NewSQLiteStorage(storage.InMemory)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	start := time.Now().AddDate(0, -6, 0)
	txns := make([]model.Transaction, 0, count)
	for n := 0; n < count; n++ {
		s := samples[rand.Intn(len(samples))]
		txns = append(txns, model.Transaction{
			Amount:      s.low + rand.Int63n(s.high-s.low+1),
			Category:    s.category,
			Date:        model.DateFromTime(start.AddDate(0, 0, rand.Intn(180))),
			Description: s.description,
		})
	}

	if err := store.SaveTransactions(ctx, txns); err != nil {
		return err
	}

	return tui.Run(ctx, store, themes.CatppuccinMocha)
}
