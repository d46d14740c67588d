package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/tracker/internal/model"
)

func TestRenderEmpty(t *testing.T) {
	tests := []struct {
		render func(*bytes.Buffer)
		name   string
	}{
		{name: "categories", render: func(b *bytes.Buffer) { RenderCategories(b, nil) }},
		{name: "transactions", render: func(b *bytes.Buffer) { RenderTransactions(b, []model.Transaction{}) }},
		{name: "period totals", render: func(b *bytes.Buffer) { RenderPeriodTotals(b, "month", nil) }},
		{name: "category totals", render: func(b *bytes.Buffer) { RenderCategoryTotals(b, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.render(&buf)
			assert.Equal(t, "no items to print\n", buf.String())
		})
	}
}

func TestRenderCategories(t *testing.T) {
	var buf bytes.Buffer
	RenderCategories(&buf, []model.Category{
		{ID: 1, Name: "rent", Description: "monthly rent"},
	})

	want := "\n" +
		"id  name       description                   \n" +
		strings.Repeat("-", 45) + "\n" +
		"1   rent       monthly rent                  \n"
	assert.Equal(t, want, buf.String())
}

func TestRenderTransactions(t *testing.T) {
	var buf bytes.Buffer
	RenderTransactions(&buf, []model.Transaction{
		{ID: 3, Amount: -50, Category: "food", Date: 20230115, Description: "refund"},
	})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, "item #     amount     category   date       description                   ", lines[1])
	assert.Equal(t, strings.Repeat("-", 50), lines[2])
	assert.Equal(t, "3          -50        food       20230115   refund                        ", lines[3])
}

func TestRenderSummaries(t *testing.T) {
	var buf bytes.Buffer
	RenderPeriodTotals(&buf, "month", []model.PeriodTotal{{Period: 202301, Amount: 50}})
	assert.Contains(t, buf.String(), "month      amount    \n")
	assert.Contains(t, buf.String(), "202301     50        \n")

	buf.Reset()
	RenderCategoryTotals(&buf, []model.CategoryTotal{{Category: "rent", Amount: 125}})
	assert.Contains(t, buf.String(), "category   amount    \n")
	assert.Contains(t, buf.String(), "rent       125       \n")
}
