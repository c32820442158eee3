package core

import "fmt"

const (
	SeverityPositive Severity = "positive"
	SeverityWarning  Severity = "warning"
	SeverityDanger   Severity = "danger"
	SeverityInfo     Severity = "info"
)

// Severity classifies an insight or notification for downstream styling.
// The engine carries the classification only, never the styling.
type Severity string

// Insight is a single rule-derived reading of financial behavior for a
// period.
type Insight struct {
	Severity Severity `json:"type"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
}

// BuildInsight evaluates the insight rules in order, first match wins:
//
//  1. expenses above income            -> danger
//  2. savings rate below 10%           -> warning, names the top category
//  3. savings rate at or above 20%     -> positive
//  4. otherwise (10% <= rate < 20%)    -> info
//
// With zero income the savings rate is 0, so the zero/zero case lands on
// the warning branch and an insight is always produced.
func BuildInsight(totalIncome, totalExpenses float64, categoryData []CategoryBucket) Insight {
	if totalExpenses > totalIncome {
		return Insight{
			Severity: SeverityDanger,
			Title:    "⚠️ Alerta de Gastos",
			Message:  fmt.Sprintf("Seus gastos (R$ %.2f) superam sua renda. Revise urgentemente.", totalExpenses),
		}
	}

	rate := SavingsRate(totalIncome, totalExpenses)
	if rate < 10 {
		name := "lazer"
		if top, ok := TopCategory(categoryData); ok {
			name = top.Name
		}
		return Insight{
			Severity: SeverityWarning,
			Title:    "💡 Poupança Baixa",
			Message:  fmt.Sprintf("Poupando apenas %.1f%%. Meta: 20%%. Reduza gastos com %s.", rate, name),
		}
	}
	if rate >= 20 {
		return Insight{
			Severity: SeverityPositive,
			Title:    "🎉 Parabéns!",
			Message:  fmt.Sprintf("Poupando %.1f%% da renda. Excelente! Considere investir o excedente.", rate),
		}
	}

	name := "supérfluos"
	if top, ok := TopCategory(categoryData); ok {
		name = top.Name
	}
	return Insight{
		Severity: SeverityInfo,
		Title:    "📊 Comportamento Estável",
		Message:  fmt.Sprintf("Taxa de poupança: %.1f%%. Pode melhorar reduzindo gastos com %q.", rate, name),
	}
}
