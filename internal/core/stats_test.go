package core

import (
	"math"
	"testing"
)

func tx(date string, typ TransactionType, amount float64, category string, mode PaymentMode) Transaction {
	d, _ := ParseDate(date)
	return Transaction{
		Description: "t",
		Amount:      amount,
		Type:        typ,
		Category:    category,
		PaymentMode: mode,
		Date:        d,
	}
}

func TestMonthlyStatsGroupsAndSums(t *testing.T) {
	txs := []Transaction{
		tx("2026-01-15", Expense, 100, "food", Cash),
		tx("2026-01-20", Income, 500, "salary", Cash),
		tx("2026-02-01", Expense, 50, "gas", Cash),
	}
	points := MonthlyStats(txs)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[0].Month != "Jan" || points[0].Income != 500 || points[0].Expenses != 100 {
		t.Fatalf("unexpected first point: %+v", points[0])
	}
	if points[1].Month != "Feb" || points[1].Expenses != 50 {
		t.Fatalf("unexpected second point: %+v", points[1])
	}
}

func TestMonthlyStatsKeepsSixMostRecentMonthsOldestFirst(t *testing.T) {
	dates := []string{
		"2025-06-01", "2025-07-01", "2025-08-01", "2025-09-01",
		"2025-10-01", "2025-11-01", "2025-12-01", "2026-01-01",
	}
	var txs []Transaction
	for _, d := range dates {
		txs = append(txs, tx(d, Expense, 10, "food", Cash))
	}
	points := MonthlyStats(txs)
	if len(points) != 6 {
		t.Fatalf("expected 6 points, got %d", len(points))
	}
	wantOrder := []string{"Aug", "Sep", "Oct", "Nov", "Dec", "Jan"}
	for i, w := range wantOrder {
		if points[i].Month != w {
			t.Fatalf("point %d: got %q, want %q", i, points[i].Month, w)
		}
	}
}

func TestMonthlyStatsEmpty(t *testing.T) {
	if points := MonthlyStats(nil); len(points) != 0 {
		t.Fatalf("expected empty series, got %d points", len(points))
	}
}

func TestCategoryStatsPercentagesSumToHundred(t *testing.T) {
	txs := []Transaction{
		tx("2026-01-01", Expense, 75, "food", Cash),
		tx("2026-01-02", Expense, 25, "gas", Cash),
		tx("2026-01-03", Income, 500, "salary", Cash), // ignored
	}
	stats := CategoryStats(txs)
	if len(stats) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(stats))
	}
	if stats[0].Category != "food" || stats[0].Percentage != 75 {
		t.Fatalf("unexpected first stat: %+v", stats[0])
	}
	var sum float64
	for _, s := range stats {
		sum += s.Percentage
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", sum)
	}
}

func TestCategoryStatsZeroTotal(t *testing.T) {
	// Only income: every expense percentage is defined as zero.
	stats := CategoryStats([]Transaction{tx("2026-01-01", Income, 100, "salary", Cash)})
	if len(stats) != 0 {
		t.Fatalf("expected no expense categories, got %d", len(stats))
	}
}

func TestCategoryStatsFallbackCategory(t *testing.T) {
	stats := CategoryStats([]Transaction{tx("2026-01-01", Expense, 10, "", Cash)})
	if len(stats) != 1 || stats[0].Category != FallbackCategory {
		t.Fatalf("expected fallback category, got %+v", stats)
	}
}

func TestPaymentModeStatsAlwaysFourModes(t *testing.T) {
	stats := PaymentModeStats(nil)
	if len(stats) != 4 {
		t.Fatalf("expected 4 modes, got %d", len(stats))
	}
	wantOrder := []PaymentMode{Cash, GCash, BDOSavings, CBSChecking}
	for i, mode := range wantOrder {
		if stats[i].PaymentMode != mode {
			t.Fatalf("mode %d: got %q, want %q", i, stats[i].PaymentMode, mode)
		}
		if stats[i].TransactionCount != 0 || stats[i].NetFlow != 0 {
			t.Fatalf("mode %q: expected zero activity, got %+v", mode, stats[i])
		}
	}
}

func TestPaymentModeStatsNetFlowAndUnknownMode(t *testing.T) {
	txs := []Transaction{
		tx("2026-01-01", Income, 1000, "salary", GCash),
		tx("2026-01-02", Expense, 300, "food", GCash),
		tx("2026-01-03", Expense, 40, "gas", ""), // missing mode counts as cash
	}
	stats := PaymentModeStats(txs)

	byMode := make(map[PaymentMode]PaymentModeStat)
	for _, s := range stats {
		byMode[s.PaymentMode] = s
	}
	if g := byMode[GCash]; g.TotalIncome != 1000 || g.TotalExpenses != 300 || g.NetFlow != 700 || g.TransactionCount != 2 {
		t.Fatalf("unexpected gcash summary: %+v", g)
	}
	if c := byMode[Cash]; c.TotalExpenses != 40 || c.NetFlow != -40 || c.TransactionCount != 1 {
		t.Fatalf("unexpected cash summary: %+v", c)
	}
}
