package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/ledger"
	"tally/internal/model"
	"tally/internal/storage"
)

func newTestEngine(t *testing.T) (*Engine, *ledger.Ledger, *storage.SQLiteStorage) {
	t.Helper()
	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	led := ledger.New(store)
	return New(led), led, store
}

func categoryID(t *testing.T, store *storage.SQLiteStorage, name string) int64 {
	t.Helper()
	cat, err := store.GetCategoryByName(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, cat, "category %q not seeded", name)
	return cat.ID
}

func addTxn(t *testing.T, led *ledger.Ledger, date model.Date, kind model.Kind, catID int64, cents int64) {
	t.Helper()
	_, err := led.Add(context.Background(), date, kind, catID, model.Money{Cents: cents}, "")
	require.NoError(t, err)
}

func TestCategoryBreakdown(t *testing.T) {
	eng, led, store := newTestEngine(t)
	ctx := context.Background()
	foodID := categoryID(t, store, "Food")
	transportID := categoryID(t, store, "Transport")
	salaryID := categoryID(t, store, "Salary")

	addTxn(t, led, model.NewDate(2024, 3, 5), model.KindExpense, foodID, 2500)
	addTxn(t, led, model.NewDate(2024, 3, 12), model.KindExpense, foodID, 1500)
	addTxn(t, led, model.NewDate(2024, 3, 20), model.KindExpense, transportID, 900)
	// Income in the same range must not leak into an expense breakdown.
	addTxn(t, led, model.NewDate(2024, 3, 25), model.KindIncome, salaryID, 5000000)
	// Outside the range.
	addTxn(t, led, model.NewDate(2024, 4, 1), model.KindExpense, foodID, 9999)

	totals, err := eng.CategoryBreakdown(ctx, model.NewDate(2024, 3, 1), model.NewDate(2024, 3, 31), model.KindExpense)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, int64(4000), totals["Food"].Cents)
	assert.Equal(t, int64(900), totals["Transport"].Cents)
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	totals, err := eng.CategoryBreakdown(context.Background(), model.NewDate(2024, 3, 1), model.NewDate(2024, 3, 31), model.KindExpense)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestCategoryBreakdown_InvalidKind(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	_, err := eng.CategoryBreakdown(context.Background(), model.NewDate(2024, 3, 1), model.NewDate(2024, 3, 31), model.Kind("transfer"))
	assert.ErrorIs(t, err, model.ErrInvalidKind)
}

func TestYearlySeries(t *testing.T) {
	eng, led, store := newTestEngine(t)
	ctx := context.Background()
	salaryID := categoryID(t, store, "Salary")
	foodID := categoryID(t, store, "Food")

	addTxn(t, led, model.NewDate(2024, 1, 5), model.KindIncome, salaryID, 5000000)
	addTxn(t, led, model.NewDate(2024, 1, 10), model.KindExpense, foodID, 12050)
	addTxn(t, led, model.NewDate(2024, 6, 15), model.KindExpense, foodID, 3000)
	addTxn(t, led, model.NewDate(2024, 12, 31), model.KindIncome, salaryID, 100000)

	series, err := eng.YearlySeries(ctx, 2024)
	require.NoError(t, err)

	// Empty months are dropped from the series.
	require.Len(t, series, 3)
	assert.Equal(t, 1, series[0].Month)
	assert.Equal(t, int64(5000000), series[0].Income.Cents)
	assert.Equal(t, int64(12050), series[0].Expense.Cents)
	assert.Equal(t, 6, series[1].Month)
	assert.True(t, series[1].Income.IsZero())
	assert.Equal(t, 12, series[2].Month)
	assert.Equal(t, int64(100000), series[2].Income.Cents)
}

func TestYearlySeries_MatchesMonthlySummaries(t *testing.T) {
	eng, led, store := newTestEngine(t)
	ctx := context.Background()
	salaryID := categoryID(t, store, "Salary")
	foodID := categoryID(t, store, "Food")

	for month := 1; month <= 12; month++ {
		addTxn(t, led, model.NewDate(2024, month, 5), model.KindIncome, salaryID, int64(month*1000))
		addTxn(t, led, model.NewDate(2024, month, 15), model.KindExpense, foodID, int64(month*100))
	}

	series, err := eng.YearlySeries(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, series, 12)

	for _, point := range series {
		summary, err := led.MonthlySummary(ctx, 2024, point.Month)
		require.NoError(t, err)
		assert.Equal(t, summary.Income, point.Income, "month %d income", point.Month)
		assert.Equal(t, summary.Expense, point.Expense, "month %d expense", point.Month)
	}
}

func TestMonthlySummariesReconcileWithBreakdown(t *testing.T) {
	eng, led, store := newTestEngine(t)
	ctx := context.Background()
	salaryID := categoryID(t, store, "Salary")
	bonusID := categoryID(t, store, "Bonus")
	foodID := categoryID(t, store, "Food")
	transportID := categoryID(t, store, "Transport")

	addTxn(t, led, model.NewDate(2024, 1, 5), model.KindIncome, salaryID, 5000000)
	addTxn(t, led, model.NewDate(2024, 1, 20), model.KindExpense, foodID, 12050)
	addTxn(t, led, model.NewDate(2024, 4, 5), model.KindIncome, salaryID, 5000000)
	addTxn(t, led, model.NewDate(2024, 4, 12), model.KindIncome, bonusID, 250000)
	addTxn(t, led, model.NewDate(2024, 4, 18), model.KindExpense, transportID, 4400)
	addTxn(t, led, model.NewDate(2024, 7, 30), model.KindExpense, foodID, 333)
	addTxn(t, led, model.NewDate(2024, 12, 31), model.KindExpense, foodID, 9901)

	// The summaries ride the SQL aggregation; the breakdowns re-sum rows in
	// memory. The two paths must land on the same cent.
	var income, expense model.Money
	for month := 1; month <= 12; month++ {
		summary, err := led.MonthlySummary(ctx, 2024, month)
		require.NoError(t, err)
		income = income.Add(summary.Income)
		expense = expense.Add(summary.Expense)
	}

	start := model.NewDate(2024, 1, 1)
	end := model.NewDate(2024, 12, 31)

	incomeByCategory, err := eng.CategoryBreakdown(ctx, start, end, model.KindIncome)
	require.NoError(t, err)
	var incomeTotal model.Money
	for _, amount := range incomeByCategory {
		incomeTotal = incomeTotal.Add(amount)
	}
	assert.Equal(t, income, incomeTotal)

	expenseByCategory, err := eng.CategoryBreakdown(ctx, start, end, model.KindExpense)
	require.NoError(t, err)
	var expenseTotal model.Money
	for _, amount := range expenseByCategory {
		expenseTotal = expenseTotal.Add(amount)
	}
	assert.Equal(t, expense, expenseTotal)
}

func TestDailySeries(t *testing.T) {
	eng, led, store := newTestEngine(t)
	ctx := context.Background()
	salaryID := categoryID(t, store, "Salary")
	foodID := categoryID(t, store, "Food")

	addTxn(t, led, model.NewDate(2024, 3, 20), model.KindExpense, foodID, 700)
	addTxn(t, led, model.NewDate(2024, 3, 5), model.KindIncome, salaryID, 5000000)
	addTxn(t, led, model.NewDate(2024, 3, 5), model.KindExpense, foodID, 1200)
	// Last day of the month is still inside the range.
	addTxn(t, led, model.NewDate(2024, 3, 31), model.KindExpense, foodID, 300)
	addTxn(t, led, model.NewDate(2024, 4, 1), model.KindExpense, foodID, 9999)

	series, err := eng.DailySeries(ctx, 2024, 3)
	require.NoError(t, err)

	// Ascending day order, empty days omitted.
	require.Len(t, series, 3)
	assert.Equal(t, 5, series[0].Day)
	assert.Equal(t, int64(5000000), series[0].Income.Cents)
	assert.Equal(t, int64(1200), series[0].Expense.Cents)
	assert.Equal(t, 20, series[1].Day)
	assert.Equal(t, int64(700), series[1].Expense.Cents)
	assert.Equal(t, 31, series[2].Day)
	assert.Equal(t, int64(300), series[2].Expense.Cents)
}

func TestDailySeries_InvalidMonth(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	_, err := eng.DailySeries(context.Background(), 2024, 13)
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestColorIndex(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	assert.Equal(t, 0, eng.ColorIndex("Food"))
	assert.Equal(t, 1, eng.ColorIndex("Transport"))
	assert.Equal(t, 2, eng.ColorIndex("Medical"))

	// Repeated lookups keep their first-seen slot.
	assert.Equal(t, 0, eng.ColorIndex("Food"))
	assert.Equal(t, 1, eng.ColorIndex("Transport"))
}
