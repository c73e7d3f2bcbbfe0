// Package ledger implements the validated transaction store.
package ledger

import (
	"context"
	"fmt"

	"tally/internal/model"
	"tally/internal/service"
)

// Ledger is the sole mutator of transaction rows. Every mutation validates all
// fields before touching storage; a failed call leaves no partial write behind.
type Ledger struct {
	store service.Storage
}

// New creates a Ledger backed by the given storage.
func New(store service.Storage) *Ledger {
	return &Ledger{store: store}
}

// Add records a new transaction and returns it with its assigned id.
func (l *Ledger) Add(ctx context.Context, date model.Date, kind model.Kind, categoryID int64, amount model.Money, description string) (*model.Transaction, error) {
	txn := &model.Transaction{
		Date:        date,
		Kind:        kind,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
	}
	if err := l.validate(ctx, txn); err != nil {
		return nil, err
	}
	return l.store.InsertTransaction(ctx, txn)
}

// Update replaces every field of an existing transaction. The new values go
// through the same validation as Add, including the kind check against the new
// category. A read-then-update sequence spanning two calls is not atomic; only
// each individual call is.
func (l *Ledger) Update(ctx context.Context, id int64, date model.Date, kind model.Kind, categoryID int64, amount model.Money, description string) error {
	txn := &model.Transaction{
		ID:          id,
		Date:        date,
		Kind:        kind,
		CategoryID:  categoryID,
		Amount:      amount,
		Description: description,
	}
	if err := l.validate(ctx, txn); err != nil {
		return err
	}
	return l.store.UpdateTransaction(ctx, txn)
}

// Delete removes a transaction permanently. There is no soft delete.
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	return l.store.DeleteTransaction(ctx, id)
}

// List returns transactions ordered by date descending, most recently created
// first within a day, paginated by limit and offset.
func (l *Ledger) List(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	return l.store.ListTransactions(ctx, service.TransactionFilter{
		Limit:  limit,
		Offset: offset,
	})
}

// ListByDateRange returns transactions between start and end, both inclusive,
// in the same order as List. There is no pagination; callers with very large
// ranges should chunk by date.
func (l *Ledger) ListByDateRange(ctx context.Context, start, end model.Date) ([]model.Transaction, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := end.Validate(); err != nil {
		return nil, err
	}
	return l.store.ListTransactions(ctx, service.TransactionFilter{
		Start: &start,
		End:   &end,
	})
}

// MonthlySummary computes income, expense, and balance for one month. The
// query range is the half-open interval [first of month, first of next month),
// which spans the December to January boundary correctly. An empty month
// yields zero totals, not an error.
func (l *Ledger) MonthlySummary(ctx context.Context, year, month int) (*model.MonthlySummary, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", model.ErrInvalidDate, month)
	}

	start := model.NewDate(year, month, 1)
	end := model.NewDate(year, month+1, 1)

	totals, err := l.store.SumAmountsByKind(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return &model.MonthlySummary{
		Year:    year,
		Month:   month,
		Income:  totals.Income,
		Expense: totals.Expense,
		Balance: totals.Income.Sub(totals.Expense),
	}, nil
}

// validate checks everything Add and Update require against the new values.
func (l *Ledger) validate(ctx context.Context, txn *model.Transaction) error {
	if !txn.Kind.Valid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidKind, txn.Kind)
	}
	if err := txn.Date.Validate(); err != nil {
		return err
	}
	if err := txn.Amount.Validate(); err != nil {
		return err
	}

	cat, err := l.store.GetCategoryByID(ctx, txn.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil {
		return fmt.Errorf("%w: category %d", model.ErrNotFound, txn.CategoryID)
	}
	if cat.Kind != txn.Kind {
		return fmt.Errorf("%w: category %q is %s but transaction is %s",
			model.ErrCategoryKindMismatch, cat.Name, cat.Kind, txn.Kind)
	}
	return nil
}
