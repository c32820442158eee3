package core

import "sort"

// CategoryBucket is an aggregated sum of expense amounts for one category.
// Derived per request, never persisted.
type CategoryBucket struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// MonthBucket carries the income and expense rollup for one YYYY-MM month.
type MonthBucket struct {
	Key     string  `json:"key"`
	Label   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Summary is the full aggregation output for a filtered transaction set.
type Summary struct {
	TotalIncome   float64          `json:"totalIncome"`
	TotalExpenses float64          `json:"totalExpenses"`
	Balance       float64          `json:"balance"`
	CategoryData  []CategoryBucket `json:"categoryData"`
	MonthlyData   []MonthBucket    `json:"monthlyData"`
}

// monthWindow is how many trailing months the monthly rollup keeps.
const monthWindow = 6

// groupedSums accumulates float sums keyed by string while remembering
// first-seen insertion order. Category order propagates into the response
// arrays, so iteration must be deterministic.
type groupedSums struct {
	keys []string
	sums map[string]float64
}

func newGroupedSums() *groupedSums {
	return &groupedSums{sums: make(map[string]float64)}
}

func (g *groupedSums) add(key string, v float64) {
	if _, ok := g.sums[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.sums[key] += v
}

// Summarize computes the aggregation for an already period-filtered
// transaction set. It is a pure function: identical input yields identical
// output. An empty set yields zero totals and empty slices, never an error.
func Summarize(txs []Transaction) Summary {
	var s Summary
	s.CategoryData = []CategoryBucket{}
	s.MonthlyData = []MonthBucket{}

	byCategory := newGroupedSums()
	byMonthIncome := newGroupedSums()
	byMonthExpense := newGroupedSums()

	for _, t := range txs {
		switch t.Kind {
		case Income:
			s.TotalIncome += t.Amount
		case Expense:
			s.TotalExpenses += t.Amount
			byCategory.add(t.Category, t.Amount)
		}
		if t.Kind.Valid() {
			key := monthKey(t.Date)
			// register the month in both maps so income and expense
			// rollups cover the same key set
			byMonthIncome.add(key, 0)
			byMonthExpense.add(key, 0)
			if t.Kind == Income {
				byMonthIncome.add(key, t.Amount)
			} else {
				byMonthExpense.add(key, t.Amount)
			}
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpenses

	for _, name := range byCategory.keys {
		s.CategoryData = append(s.CategoryData, CategoryBucket{Name: name, Value: byCategory.sums[name]})
	}

	months := append([]string(nil), byMonthIncome.keys...)
	sort.Strings(months)
	if len(months) > monthWindow {
		months = months[len(months)-monthWindow:]
	}
	for _, m := range months {
		s.MonthlyData = append(s.MonthlyData, MonthBucket{
			Key:     m,
			Label:   MonthLabel(m),
			Income:  byMonthIncome.sums[m],
			Expense: byMonthExpense.sums[m],
		})
	}

	return s
}

// TopCategory returns the expense category with the highest value, or ok
// false when there are no expense buckets. Ties resolve to the earliest
// inserted bucket.
func TopCategory(buckets []CategoryBucket) (CategoryBucket, bool) {
	if len(buckets) == 0 {
		return CategoryBucket{}, false
	}
	top := buckets[0]
	for _, b := range buckets[1:] {
		if b.Value > top.Value {
			top = b
		}
	}
	return top, true
}

// SavingsRate is (income - expenses) / income * 100, and 0 when income is
// 0 so degenerate input never produces NaN.
func SavingsRate(income, expenses float64) float64 {
	if income <= 0 {
		return 0
	}
	return (income - expenses) / income * 100
}

// monthKey extracts the YYYY-MM prefix of a date string.
func monthKey(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// ptBRMonths holds the short month names the original product displayed.
// The label locale is fixed so aggregation stays deterministic.
var ptBRMonths = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// MonthLabel renders a YYYY-MM key as a short pt-BR label like "jan/24".
// Keys that do not look like YYYY-MM come back unchanged.
func MonthLabel(key string) string {
	if len(key) != 7 || key[4] != '-' {
		return key
	}
	m := int(key[5]-'0')*10 + int(key[6]-'0')
	if m < 1 || m > 12 {
		return key
	}
	return ptBRMonths[m-1] + "/" + key[2:4]
}
