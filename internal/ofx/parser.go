// Package ofx converts OFX/QFX bank and credit card statements into tracker transactions.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/Veraticus/tracker/internal/model"
)

// DefaultCategory labels imported transactions when nothing else applies.
const DefaultCategory = "uncategorized"

// typeHints maps OFX transaction types to a category label.
var typeHints = map[string]string{
	"INT": "interest",
	"FEE": "fees",
	"ATM": "cash",
}

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Options controls how statement rows are labeled.
type Options struct {
	// Category, when set, labels every imported transaction and disables type hints.
	Category string
	// DefaultCategory labels transactions with no applicable hint.
	DefaultCategory string
}

// Parser implements OFX/QFX file parsing.
// A Parser remembers FITIDs across ParseFile calls so one import run
// never yields the same statement row twice.
type Parser struct {
	seen    map[string]struct{}
	options Options
}

// NewParser creates a new OFX parser.
func NewParser(opts Options) *Parser {
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = DefaultCategory
	}
	return &Parser{
		options: opts,
		seen:    make(map[string]struct{}),
	}
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of tags that stand alone on a line.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file and returns its transactions in statement order.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var (
		transactions       []model.Transaction
		bankStmts, ccStmts int
		skipped            int
	)

	collect := func(list *ofxgo.TransactionList) {
		if list == nil {
			return
		}
		for _, ofxTx := range list.Transactions {
			txn, ok := p.convertTransaction(ofxTx)
			if !ok {
				skipped++
				continue
			}
			transactions = append(transactions, txn)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			collect(stmt.BankTranList)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			collect(stmt.BankTranList)
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"duplicates_skipped", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertTransaction maps one statement row; ok is false for a FITID already seen.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (model.Transaction, bool) {
	if fitID := string(ofxTx.FiTID); fitID != "" {
		if _, dup := p.seen[fitID]; dup {
			slog.Debug("skipping duplicate FITID", "fitid", fitID)
			return model.Transaction{}, false
		}
		p.seen[fitID] = struct{}{}
	}

	return model.Transaction{
		Amount:      amountInCents(ofxTx.TrnAmt),
		Category:    p.categorize(ofxTx.TrnType.String()),
		Date:        model.DateFromTime(ofxTx.DtPosted.Time),
		Description: describe(ofxTx),
	}, true
}

func (p *Parser) categorize(trnType string) string {
	if p.options.Category != "" {
		return p.options.Category
	}
	if hint, ok := typeHints[trnType]; ok {
		return hint
	}
	return p.options.DefaultCategory
}

// amountInCents converts an OFX amount to signed integer cents, rounding half away from zero.
func amountInCents(amt ofxgo.Amount) int64 {
	num := decimal.NewFromBigInt(amt.Num(), 0)
	denom := decimal.NewFromBigInt(amt.Denom(), 0)
	return num.DivRound(denom, 2).Shift(2).IntPart()
}

// describe picks the most useful free text for a statement row.
func describe(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := string(tx.Name)
	if tx.Memo != "" && (name == "" || isGenericDescription(name)) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	// Prefixes are ASCII, so a byte-length match that folds equal ends on a rune boundary.
	for _, prefix := range prefixes {
		if len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Drop a leading "MM/DD " authorization date.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
