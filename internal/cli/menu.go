package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Veraticus/tracker/internal/common"
	"github.com/Veraticus/tracker/internal/model"
	"github.com/Veraticus/tracker/internal/service"
)

// MenuText lists the numbered choices understood by Menu.
const MenuText = `
0. quit
1. show categories
2. add category
3. modify category
4. show transactions
5. add transaction
6. delete transaction
7. summarize transactions by date
8. summarize transactions by month
9. summarize transactions by year
10. summarize transactions by category
11. print this menu
`

const (
	quitChoice = "0"
	prompt     = "> "
	farewell   = "bye"
)

// errEndOfInput stops the loop from inside a choice handler.
var errEndOfInput = errors.New("end of input")

// Menu is the numbered text interface over the category and transaction stores.
// Each choice issues at most one store operation and prints its result.
type Menu struct {
	categories   service.CategoryStore
	transactions service.TransactionStore
	reader       *NonBlockingReader
	out          io.Writer
	handlers     map[string]func(context.Context) error
}

// NewMenu creates a menu reading choices from in and printing to out.
func NewMenu(categories service.CategoryStore, transactions service.TransactionStore, in io.Reader, out io.Writer) *Menu {
	m := &Menu{
		categories:   categories,
		transactions: transactions,
		reader:       NewNonBlockingReader(in),
		out:          out,
	}

	m.handlers = map[string]func(context.Context) error{
		"1":  m.showCategories,
		"2":  m.addCategory,
		"3":  m.modifyCategory,
		"4":  m.showTransactions,
		"5":  m.addTransaction,
		"6":  m.deleteTransaction,
		"7":  m.summarizeByDate,
		"8":  m.summarizeByMonth,
		"9":  m.summarizeByYear,
		"10": m.summarizeByCategory,
		"11": m.printMenu,
	}

	return m
}

// Run prints the menu and processes choices until quit, end of input or
// context cancellation. Store failures other than not-found end the loop
// and are returned.
func (m *Menu) Run(ctx context.Context) error {
	m.showMenu()

	for {
		choice, err := m.readLine(ctx, prompt)
		if err != nil {
			return m.finish(err)
		}

		if choice == quitChoice {
			m.println(farewell)
			return nil
		}

		handler, ok := m.handlers[choice]
		if !ok {
			m.println("choice", choice, "not yet implemented")
			continue
		}

		if err := handler(ctx); err != nil {
			switch {
			case errors.Is(err, common.ErrNotFound):
				m.println(FormatWarning(err.Error()))
			case errors.Is(err, errEndOfInput), errors.Is(err, ErrInputCancelled):
				return m.finish(err)
			case errors.Is(err, context.Canceled) && ctx.Err() != nil:
				return nil
			default:
				slog.Error("menu choice failed", "choice", choice, "error", err)
				m.println(FormatError(err.Error()))
				return err
			}
		}
	}
}

// finish maps input shutdown to a clean exit.
func (m *Menu) finish(err error) error {
	if errors.Is(err, errEndOfInput) || errors.Is(err, io.EOF) {
		m.println(farewell)
		return nil
	}
	if errors.Is(err, ErrInputCancelled) {
		return nil
	}
	return fmt.Errorf("failed to read input: %w", err)
}

func (m *Menu) showCategories(ctx context.Context) error {
	categories, err := m.categories.GetCategories(ctx)
	if err != nil {
		return err
	}
	RenderCategories(m.out, categories)
	return nil
}

func (m *Menu) addCategory(ctx context.Context) error {
	name, err := m.readLine(ctx, "category name: ")
	if err != nil {
		return err
	}
	description, err := m.readLine(ctx, "category description: ")
	if err != nil {
		return err
	}

	_, err = m.categories.CreateCategory(ctx, name, description)
	return err
}

func (m *Menu) modifyCategory(ctx context.Context) error {
	m.println("modifying category")
	id, err := m.readInt(ctx, "rowid: ")
	if err != nil {
		return err
	}
	name, err := m.readLine(ctx, "new category name: ")
	if err != nil {
		return err
	}
	description, err := m.readLine(ctx, "new category description: ")
	if err != nil {
		return err
	}

	return m.categories.UpdateCategory(ctx, id, name, description)
}

func (m *Menu) showTransactions(ctx context.Context) error {
	transactions, err := m.transactions.GetTransactions(ctx)
	if err != nil {
		return err
	}
	RenderTransactions(m.out, transactions)
	return nil
}

func (m *Menu) addTransaction(ctx context.Context) error {
	amount, err := m.readInt(ctx, "transaction amount: ")
	if err != nil {
		return err
	}
	category, err := m.readLine(ctx, "transaction category: ")
	if err != nil {
		return err
	}
	date, err := m.readInt(ctx, "transaction date (yyyymmdd): ")
	if err != nil {
		return err
	}
	description, err := m.readLine(ctx, "transaction description: ")
	if err != nil {
		return err
	}

	_, err = m.transactions.AddTransaction(ctx, model.Transaction{
		Amount:      amount,
		Category:    category,
		Date:        model.Date(date),
		Description: description,
	})
	return err
}

func (m *Menu) deleteTransaction(ctx context.Context) error {
	m.println("deleting transaction")
	id, err := m.readInt(ctx, "rowid: ")
	if err != nil {
		return err
	}
	return m.transactions.DeleteTransaction(ctx, id)
}

func (m *Menu) summarizeByDate(ctx context.Context) error {
	return m.periodSummary(ctx, "date", m.transactions.TotalsByDate)
}

func (m *Menu) summarizeByMonth(ctx context.Context) error {
	return m.periodSummary(ctx, "month", m.transactions.TotalsByMonth)
}

func (m *Menu) summarizeByYear(ctx context.Context) error {
	return m.periodSummary(ctx, "year", m.transactions.TotalsByYear)
}

func (m *Menu) periodSummary(ctx context.Context, label string, totals func(context.Context) ([]model.PeriodTotal, error)) error {
	rows, err := totals(ctx)
	if err != nil {
		return err
	}
	RenderPeriodTotals(m.out, label, rows)
	return nil
}

func (m *Menu) summarizeByCategory(ctx context.Context) error {
	rows, err := m.transactions.TotalsByCategory(ctx)
	if err != nil {
		return err
	}
	RenderCategoryTotals(m.out, rows)
	return nil
}

func (m *Menu) printMenu(_ context.Context) error {
	m.showMenu()
	return nil
}

// showMenu writes MenuText as is; it already ends in a newline.
func (m *Menu) showMenu() {
	fmt.Fprint(m.out, MenuText)
}

func (m *Menu) readLine(ctx context.Context, label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.reader.ReadLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", errEndOfInput
	}
	return line, err
}

// readInt prompts until the answer parses as a whole number.
func (m *Menu) readInt(ctx context.Context, label string) (int64, error) {
	for {
		line, err := m.readLine(ctx, label)
		if err != nil {
			return 0, err
		}

		value, err := strconv.ParseInt(line, 10, 64)
		if err == nil {
			return value, nil
		}
		m.println(FormatWarning(fmt.Sprintf("%q is not a whole number", line)))
	}
}

func (m *Menu) println(a ...any) {
	fmt.Fprintln(m.out, a...)
}
