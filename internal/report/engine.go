// Package report derives display aggregates from the ledger. Everything here
// is a full re-computation over current ledger state; nothing is cached.
package report

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tally/internal/ledger"
	"tally/internal/model"
)

// MonthTotals is one point of a yearly series.
type MonthTotals struct {
	Income  model.Money
	Expense model.Money
	Month   int
}

// DayTotals is one point of a daily series.
type DayTotals struct {
	Income  model.Money
	Expense model.Money
	Day     int
}

// Engine computes read-side aggregates on top of ledger queries. Its only
// state is the order in which category names were first seen, used to hand out
// stable palette indexes within a single run. The assignment resets on
// restart; callers needing it stable across runs must persist their own map.
type Engine struct {
	ledger *ledger.Ledger
	colors map[string]int
	mu     sync.Mutex
}

// New creates a report engine over the given ledger.
func New(l *ledger.Ledger) *Engine {
	return &Engine{
		ledger: l,
		colors: make(map[string]int),
	}
}

// CategoryBreakdown sums amounts per category name for transactions of the
// given kind within [start, end], both inclusive. The result is empty, not an
// error, when nothing matches.
func (e *Engine) CategoryBreakdown(ctx context.Context, start, end model.Date, kind model.Kind) (map[string]model.Money, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidKind, kind)
	}

	txns, err := e.ledger.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]model.Money)
	for _, txn := range txns {
		if txn.Kind != kind {
			continue
		}
		totals[txn.CategoryName] = totals[txn.CategoryName].Add(txn.Amount)
	}
	return totals, nil
}

// YearlySeries returns per-month income and expense totals for a year. Months
// with no activity in either direction are omitted rather than reported as
// zero; callers that prefer zero-filled series for charting must fill the gaps
// themselves.
func (e *Engine) YearlySeries(ctx context.Context, year int) ([]MonthTotals, error) {
	var series []MonthTotals
	for month := 1; month <= 12; month++ {
		summary, err := e.ledger.MonthlySummary(ctx, year, month)
		if err != nil {
			return nil, err
		}
		if summary.Income.IsZero() && summary.Expense.IsZero() {
			continue
		}
		series = append(series, MonthTotals{
			Month:   month,
			Income:  summary.Income,
			Expense: summary.Expense,
		})
	}
	return series, nil
}

// DailySeries returns per-day income and expense totals for one month, in
// ascending day order. Days without any transaction are omitted, mirroring the
// yearly series policy.
func (e *Engine) DailySeries(ctx context.Context, year, month int) ([]DayTotals, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d", model.ErrInvalidDate, month)
	}

	start := model.NewDate(year, month, 1)
	end := model.NewDate(year, month+1, 0) // day 0 of next month is the last day

	txns, err := e.ledger.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int]DayTotals)
	for _, txn := range txns {
		day := txn.Date.Day()
		totals := byDay[day]
		totals.Day = day
		switch txn.Kind {
		case model.KindIncome:
			totals.Income = totals.Income.Add(txn.Amount)
		case model.KindExpense:
			totals.Expense = totals.Expense.Add(txn.Amount)
		}
		byDay[day] = totals
	}

	days := make([]int, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Ints(days)

	series := make([]DayTotals, 0, len(days))
	for _, day := range days {
		series = append(series, byDay[day])
	}
	return series, nil
}

// ColorIndex returns the palette slot for a category name, assigning the next
// free slot on first sight. Indexes grow without bound; renderers take them
// modulo their palette size.
func (e *Engine) ColorIndex(name string) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	if idx, ok := e.colors[name]; ok {
		return idx
	}
	idx := len(e.colors)
	e.colors[name] = idx
	return idx
}
