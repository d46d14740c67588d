package model

// Transaction is a single signed amount filed under a category label.
//
// Category is free text and is not checked against the category table.
// Positive amounts are income and negative amounts are expenses by convention.
type Transaction struct {
	Category    string
	Description string
	ID          int64
	Amount      int64
	Date        Date
}

// PeriodTotal is the summed amount for one date, month, or year key.
type PeriodTotal struct {
	Period int
	Amount int64
}

// CategoryTotal is the summed amount for one category label.
type CategoryTotal struct {
	Category string
	Amount   int64
}
