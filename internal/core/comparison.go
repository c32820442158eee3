package core

import "strconv"

// ComparisonBucket is one month of the trailing comparison series. The
// savings rate is serialized with exactly one decimal so month-over-month
// figures render consistently.
type ComparisonBucket struct {
	Key         string  `json:"key"`
	Label       string  `json:"month"`
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	SavingsRate string  `json:"savingsRate"`
}

// Compare builds the trailing 6-month income/expense/savings-rate series
// from the owner's full transaction history. The series is ordered
// ascending by month key; ranking best and worst months is left to the
// consumer.
func Compare(txs []Transaction) []ComparisonBucket {
	s := Summarize(txs)
	out := make([]ComparisonBucket, 0, len(s.MonthlyData))
	for _, m := range s.MonthlyData {
		out = append(out, ComparisonBucket{
			Key:         m.Key,
			Label:       m.Label,
			Income:      m.Income,
			Expense:     m.Expense,
			SavingsRate: strconv.FormatFloat(SavingsRate(m.Income, m.Expense), 'f', 1, 64),
		})
	}
	return out
}
