package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/tracker/internal/model"
)

// NoItems is printed in place of an empty table.
const NoItems = "no items to print"

var (
	categoryRule = strings.Repeat("-", 45)
	tableRule    = strings.Repeat("-", 50)
)

// RenderCategories writes categories as a fixed-width id/name/description table.
func RenderCategories(w io.Writer, categories []model.Category) {
	if len(categories) == 0 {
		fmt.Fprintln(w, NoItems)
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-3s %-10s %-30s\n", "id", "name", "description")
	fmt.Fprintln(w, categoryRule)
	for _, cat := range categories {
		fmt.Fprintf(w, "%-3d %-10s %-30s\n", cat.ID, cat.Name, cat.Description)
	}
}

// RenderTransactions writes transactions as a fixed-width table keyed by item number.
func RenderTransactions(w io.Writer, transactions []model.Transaction) {
	if len(transactions) == 0 {
		fmt.Fprintln(w, NoItems)
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s %-10s %-10s %-10s %-30s\n", "item #", "amount", "category", "date", "description")
	fmt.Fprintln(w, tableRule)
	for _, txn := range transactions {
		fmt.Fprintf(w, "%-10d %-10d %-10s %-10d %-30s\n",
			txn.ID, txn.Amount, txn.Category, int(txn.Date), txn.Description)
	}
}

// RenderPeriodTotals writes one row per period; label names the key column (date, month or year).
func RenderPeriodTotals(w io.Writer, label string, totals []model.PeriodTotal) {
	if len(totals) == 0 {
		fmt.Fprintln(w, NoItems)
		return
	}
	renderSummaryHeader(w, label)
	for _, total := range totals {
		fmt.Fprintf(w, "%-10d %-10d\n", total.Period, total.Amount)
	}
}

// RenderCategoryTotals writes one row per category label.
func RenderCategoryTotals(w io.Writer, totals []model.CategoryTotal) {
	if len(totals) == 0 {
		fmt.Fprintln(w, NoItems)
		return
	}
	renderSummaryHeader(w, "category")
	for _, total := range totals {
		fmt.Fprintf(w, "%-10s %-10d\n", total.Category, total.Amount)
	}
}

func renderSummaryHeader(w io.Writer, label string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s %-10s\n", label, "amount")
	fmt.Fprintln(w, tableRule)
}
