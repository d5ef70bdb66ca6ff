package core

import (
	"sort"
	"time"
)

// maxMonthlyPoints caps the monthly series at the six most recent months.
const maxMonthlyPoints = 6

type (
	// MonthlyPoint is one month of the income/expense trend series.
	MonthlyPoint struct {
		Month    string  `json:"month"`
		Income   float64 `json:"income"`
		Expenses float64 `json:"expenses"`
	}

	// CategoryStat is the expense share of a single category.
	CategoryStat struct {
		Category   string  `json:"category"`
		Amount     float64 `json:"amount"`
		Percentage float64 `json:"percentage"`
	}

	// PaymentModeStat is the cash-flow summary for one settlement channel.
	PaymentModeStat struct {
		PaymentMode      PaymentMode `json:"paymentMode"`
		Label            string      `json:"label"`
		TotalIncome      float64     `json:"totalIncome"`
		TotalExpenses    float64     `json:"totalExpenses"`
		NetFlow          float64     `json:"netFlow"`
		TransactionCount int         `json:"transactionCount"`
	}

	// ExpenseTotal is the ground-truth expense aggregate from storage.
	ExpenseTotal struct {
		Total float64 `json:"total"`
		Count int     `json:"count"`
	}
)

// MonthlyStats groups transactions by calendar month and sums income and
// expenses per month. It keeps the six most recent months with activity,
// oldest first.
func MonthlyStats(txs []Transaction) []MonthlyPoint {
	type sums struct {
		income   float64
		expenses float64
	}
	byMonth := make(map[string]*sums)
	for _, t := range txs {
		key := t.Date.MonthKey()
		s, ok := byMonth[key]
		if !ok {
			s = &sums{}
			byMonth[key] = s
		}
		if t.Type == Income {
			s.income += t.Amount
		} else {
			s.expenses += t.Amount
		}
	}

	keys := make([]string, 0, len(byMonth))
	for key := range byMonth {
		keys = append(keys, key)
	}
	// Year-month keys are zero padded, so lexical order is chronological.
	sort.Strings(keys)
	if len(keys) > maxMonthlyPoints {
		keys = keys[len(keys)-maxMonthlyPoints:]
	}

	points := make([]MonthlyPoint, 0, len(keys))
	for _, key := range keys {
		s := byMonth[key]
		month, _ := time.Parse("2006-01", key)
		points = append(points, MonthlyPoint{
			Month:    month.Format("Jan"),
			Income:   s.income,
			Expenses: s.expenses,
		})
	}
	return points
}

// CategoryStats sums expense transactions per joined category name and
// derives each category's percentage of total expenses. Categories appear
// in order of first encounter; the percentage is 0 when there are no
// expenses at all.
func CategoryStats(txs []Transaction) []CategoryStat {
	amounts := make(map[string]float64)
	var order []string
	var total float64

	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		name := t.Category
		if name == "" {
			name = FallbackCategory
		}
		if _, seen := amounts[name]; !seen {
			order = append(order, name)
		}
		amounts[name] += t.Amount
		total += t.Amount
	}

	stats := make([]CategoryStat, 0, len(order))
	for _, name := range order {
		amount := amounts[name]
		var pct float64
		if total > 0 {
			pct = amount / total * 100
		}
		stats = append(stats, CategoryStat{Category: name, Amount: amount, Percentage: pct})
	}
	return stats
}

// PaymentModeStats summarizes income, expenses, net flow, and count per
// settlement channel. All four modes are always present in enum order;
// records with an unknown or missing mode count as cash.
func PaymentModeStats(txs []Transaction) []PaymentModeStat {
	byMode := make(map[PaymentMode]*PaymentModeStat, len(PaymentModes))
	stats := make([]PaymentModeStat, len(PaymentModes))
	for i, mode := range PaymentModes {
		stats[i] = PaymentModeStat{PaymentMode: mode, Label: mode.Label()}
		byMode[mode] = &stats[i]
	}

	for _, t := range txs {
		mode := t.PaymentMode
		if !mode.Valid() {
			mode = Cash
		}
		s := byMode[mode]
		if t.Type == Income {
			s.TotalIncome += t.Amount
		} else {
			s.TotalExpenses += t.Amount
		}
		s.TransactionCount++
	}

	for i := range stats {
		stats[i].NetFlow = stats[i].TotalIncome - stats[i].TotalExpenses
	}
	return stats
}
