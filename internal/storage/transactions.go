package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"tally/internal/model"
	"tally/internal/service"
)

// InsertTransaction persists a new ledger row and returns it with its assigned
// id and creation timestamp. Validation belongs to the ledger; this is a
// single-statement write.
func (s *SQLiteStorage) InsertTransaction(ctx context.Context, txn *model.Transaction) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, fmt.Errorf("%w: transaction", ErrNilParameter)
	}

	now := time.Now().UTC()
	query := `
		INSERT INTO transactions (date, type, category_id, amount, description, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		txn.Date.String(), string(txn.Kind), txn.CategoryID,
		txn.Amount.Float64(), txn.Description, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction ID: %w", err)
	}

	stored := *txn
	stored.ID = id
	stored.CreatedAt = now

	slog.Debug("inserted transaction",
		"id", id, "date", txn.Date, "kind", txn.Kind, "amount", txn.Amount)
	return &stored, nil
}

// UpdateTransaction replaces every mutable field of an existing row in one
// statement. Zero rows affected means the id does not exist.
func (s *SQLiteStorage) UpdateTransaction(ctx context.Context, txn *model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}

	query := `
		UPDATE transactions
		SET date = ?, type = ?, category_id = ?, amount = ?, description = ?
		WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query,
		txn.Date.String(), string(txn.Kind), txn.CategoryID,
		txn.Amount.Float64(), txn.Description, txn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", model.ErrNotFound, txn.ID)
	}

	slog.Debug("updated transaction", "id", txn.ID)
	return nil
}

// DeleteTransaction removes a row permanently.
func (s *SQLiteStorage) DeleteTransaction(ctx context.Context, id int64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: transaction %d", model.ErrNotFound, id)
	}

	slog.Debug("deleted transaction", "id", id)
	return nil
}

// ListTransactions returns rows matching the filter, newest first: date
// descending, then creation time descending, then id descending so that
// same-second inserts stay deterministic. The category name comes from a LEFT
// JOIN and is empty when the category row is gone.
func (s *SQLiteStorage) ListTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.date, t.type, t.category_id, t.amount, t.description, t.created_at, c.name
		FROM transactions t
		LEFT JOIN categories c ON t.category_id = c.id`

	var args []any
	switch {
	case filter.Start != nil && filter.End != nil:
		query += ` WHERE t.date >= ? AND t.date <= ?`
		args = append(args, filter.Start.String(), filter.End.String())
	case filter.Start != nil:
		query += ` WHERE t.date >= ?`
		args = append(args, filter.Start.String())
	case filter.End != nil:
		query += ` WHERE t.date <= ?`
		args = append(args, filter.End.String())
	}

	query += ` ORDER BY t.date DESC, t.created_at DESC, t.id DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var (
			txn          model.Transaction
			date         time.Time
			amount       float64
			description  sql.NullString
			categoryName sql.NullString
		)
		if err := rows.Scan(
			&txn.ID, &date, &txn.Kind, &txn.CategoryID,
			&amount, &description, &txn.CreatedAt, &categoryName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Date = model.NewDate(date.Year(), int(date.Month()), date.Day())
		txn.Amount = model.MoneyFromFloat(amount)
		txn.Description = description.String
		txn.CategoryName = categoryName.String
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	slog.Debug("retrieved transactions", "count", len(transactions))
	return transactions, nil
}

// SumAmountsByKind sums amounts per kind over the half-open interval
// [start, end). The sum runs over integer cents inside SQL, so multi-row
// aggregates cannot pick up binary floating point drift.
func (s *SQLiteStorage) SumAmountsByKind(ctx context.Context, start, end model.Date) (service.KindTotals, error) {
	var totals service.KindTotals
	if err := validateContext(ctx); err != nil {
		return totals, err
	}

	query := `
		SELECT type, COALESCE(SUM(CAST(ROUND(amount * 100) AS INTEGER)), 0)
		FROM transactions
		WHERE date >= ? AND date < ?
		GROUP BY type`

	rows, err := s.db.QueryContext(ctx, query, start.String(), end.String())
	if err != nil {
		return totals, fmt.Errorf("failed to sum transactions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			kind  model.Kind
			cents int64
		)
		if err := rows.Scan(&kind, &cents); err != nil {
			return totals, fmt.Errorf("failed to scan sum row: %w", err)
		}
		switch kind {
		case model.KindIncome:
			totals.Income = model.Money{Cents: cents}
		case model.KindExpense:
			totals.Expense = model.Money{Cents: cents}
		}
	}
	if err := rows.Err(); err != nil {
		return totals, fmt.Errorf("error iterating sum rows: %w", err)
	}

	return totals, nil
}
