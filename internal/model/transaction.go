package model

import "time"

// Transaction is a single dated ledger entry. CategoryName is populated on
// reads via a join with the categories table; it is empty if the category row
// has gone missing out-of-band, which list callers must tolerate.
type Transaction struct {
	CreatedAt    time.Time
	Date         Date
	Description  string
	CategoryName string
	Kind         Kind
	Amount       Money
	CategoryID   int64
	ID           int64
}

// MonthlySummary holds the derived totals for one calendar month. It is
// computed on demand and never cached; Balance is Income minus Expense and may
// be negative.
type MonthlySummary struct {
	Income  Money
	Expense Money
	Balance Money
	Year    int
	Month   int
}
