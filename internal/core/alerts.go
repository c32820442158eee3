package core

import "fmt"

const (
	AlertOK       AlertState = "ok"
	AlertWarning  AlertState = "warning"
	AlertExceeded AlertState = "exceeded"
)

// AlertState classifies spending against one alert's limit.
type AlertState string

// AlertStatus is the evaluation of a single alert against the category
// buckets of the same period. Nothing here is persisted; every fetch
// recomputes from live aggregation.
type AlertStatus struct {
	Alert   Alert      `json:"alert"`
	Spent   float64    `json:"spent"`
	Percent float64    `json:"percent"`
	Overage float64    `json:"overage"`
	State   AlertState `json:"state"`
}

// Notification is the flattened client-facing record for one non-ok alert.
type Notification struct {
	Severity Severity `json:"type"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
}

// warningPercent is the utilization at which an alert turns to warning.
const warningPercent = 80

// EvaluateAlerts classifies each alert against the category buckets.
// Spending strictly above the limit is exceeded; hitting the limit exactly
// is 100% utilization and therefore a warning. Percent is capped at 100.
// The result list parallels the input alert list.
func EvaluateAlerts(alerts []Alert, categoryData []CategoryBucket) []AlertStatus {
	spentBy := make(map[string]float64, len(categoryData))
	for _, b := range categoryData {
		spentBy[b.Name] = b.Value
	}

	statuses := make([]AlertStatus, 0, len(alerts))
	for _, a := range alerts {
		spent := spentBy[a.Category]
		pct := 0.0
		if a.LimitAmount > 0 {
			pct = spent / a.LimitAmount * 100
		}
		if pct > 100 {
			pct = 100
		}

		st := AlertStatus{Alert: a, Spent: spent, Percent: pct, State: AlertOK}
		switch {
		case spent > a.LimitAmount:
			st.State = AlertExceeded
			st.Overage = spent - a.LimitAmount
		case pct >= warningPercent:
			st.State = AlertWarning
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// Notifications flattens the non-ok statuses into client notifications.
// There is no dedup or suppression: a threshold still breached on the next
// fetch re-emits its notification, by contract.
func Notifications(statuses []AlertStatus) []Notification {
	out := []Notification{}
	for _, st := range statuses {
		switch st.State {
		case AlertExceeded:
			out = append(out, Notification{
				Severity: SeverityDanger,
				Category: st.Alert.Category,
				Message: fmt.Sprintf("Limite de %s estourado! Gasto: R$ %.2f de R$ %.2f (excedeu R$ %.2f).",
					st.Alert.Category, st.Spent, st.Alert.LimitAmount, st.Overage),
			})
		case AlertWarning:
			out = append(out, Notification{
				Severity: SeverityWarning,
				Category: st.Alert.Category,
				Message: fmt.Sprintf("Você já usou %.0f%% do limite de %s (R$ %.2f de R$ %.2f).",
					st.Percent, st.Alert.Category, st.Spent, st.Alert.LimitAmount),
			})
		}
	}
	return out
}
