package http

import (
	"net/http"
	"testing"

	"mindmoney/internal/core"
)

func seedTransactions(t *testing.T, s *Server, token string) {
	t.Helper()
	seed := []map[string]any{
		{"amount": 3500.0, "category": "Salário", "date": "2024-01-05", "type": "income"},
		{"amount": 890.0, "category": "Moradia", "date": "2024-01-10", "type": "expense"},
		{"amount": 320.0, "category": "Alimentação", "date": "2024-01-12", "type": "expense"},
		{"amount": 150.0, "category": "Lazer", "date": "2024-01-18", "type": "expense"},
		{"amount": 3500.0, "category": "Salário", "date": "2024-02-05", "type": "income"},
		{"amount": 890.0, "category": "Moradia", "date": "2024-02-10", "type": "expense"},
	}
	for _, body := range seed {
		rec := doJSON(t, s, http.MethodPost, "/api/transactions", token, body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed status = %d, body %s", rec.Code, rec.Body.String())
		}
	}
}

func TestSummary(t *testing.T) {
	s, pub := newTestServer(t)
	token := register(t, s, "ana@example.com")
	seedTransactions(t, s, token)

	// An alert on Lazer that January's spending exceeds.
	rec := doJSON(t, s, http.MethodPost, "/api/alerts", token, map[string]any{
		"category": "Lazer", "limit_amount": 100.0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create alert status = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/summary?startDate=2024-01-01&endDate=2024-01-31", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp summaryResponse
	decodeInto(t, rec, &resp)

	if resp.TotalIncome != 3500 || resp.TotalExpenses != 1360 || resp.Balance != 2140 {
		t.Errorf("totals = %+v", resp.Summary)
	}
	if len(resp.MonthlyData) != 1 || resp.MonthlyData[0].Label != "jan/24" {
		t.Errorf("monthly data = %+v", resp.MonthlyData)
	}
	// 61.1% saved -> positive branch
	if resp.Insight.Severity != core.SeverityPositive {
		t.Errorf("insight = %+v", resp.Insight)
	}
	if len(resp.Notifications) != 1 || resp.Notifications[0].Severity != core.SeverityDanger {
		t.Errorf("notifications = %+v", resp.Notifications)
	}
	if len(pub.published) != 1 || pub.published[0].Category != "Lazer" {
		t.Errorf("published = %+v", pub.published)
	}

	t.Run("notifications re-emit on every fetch", func(t *testing.T) {
		again := doJSON(t, s, http.MethodGet, "/api/summary?startDate=2024-01-01&endDate=2024-01-31", token, nil)
		if again.Code != http.StatusOK {
			t.Fatalf("status = %d", again.Code)
		}
		if len(pub.published) != 2 {
			t.Errorf("published = %d, want 2", len(pub.published))
		}
	})

	t.Run("empty ledger", func(t *testing.T) {
		other := register(t, s, "vazio@example.com")
		rec := doJSON(t, s, http.MethodGet, "/api/summary", other, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var resp summaryResponse
		decodeInto(t, rec, &resp)
		if resp.TotalIncome != 0 || len(resp.CategoryData) != 0 || len(resp.MonthlyData) != 0 {
			t.Errorf("empty summary = %+v", resp.Summary)
		}
		// zero income, zero expenses lands on the low-savings warning
		if resp.Insight.Severity != core.SeverityWarning {
			t.Errorf("insight = %+v", resp.Insight)
		}
	})
}

func TestEvaluateAlerts(t *testing.T) {
	s, pub := newTestServer(t)
	token := register(t, s, "ana@example.com")

	for _, body := range []map[string]any{
		{"category": "Lazer", "limit_amount": 100.0},
		{"category": "Moradia", "limit_amount": 1000.0},
	} {
		if rec := doJSON(t, s, http.MethodPost, "/api/alerts", token, body); rec.Code != http.StatusCreated {
			t.Fatalf("create alert status = %d", rec.Code)
		}
	}

	rec := doJSON(t, s, http.MethodPost, "/api/alerts/evaluate", token, map[string]any{
		"categoryData": []map[string]any{
			{"name": "Lazer", "value": 150.0},
			{"name": "Moradia", "value": 890.0},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results       []core.AlertStatus  `json:"results"`
		Notifications []core.Notification `json:"notifications"`
	}
	decodeInto(t, rec, &resp)

	if len(resp.Results) != 2 {
		t.Fatalf("results = %+v", resp.Results)
	}
	// Results parallel the stored alert list, newest first.
	if resp.Results[0].State != core.AlertWarning || resp.Results[1].State != core.AlertExceeded {
		t.Errorf("states = %v / %v", resp.Results[0].State, resp.Results[1].State)
	}
	if len(resp.Notifications) != 2 || len(pub.published) != 2 {
		t.Errorf("notifications = %+v, published = %+v", resp.Notifications, pub.published)
	}
}

func TestComparison(t *testing.T) {
	s, _ := newTestServer(t)
	token := register(t, s, "ana@example.com")
	seedTransactions(t, s, token)

	rec := doJSON(t, s, http.MethodGet, "/api/comparison", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var series []core.ComparisonBucket
	decodeInto(t, rec, &series)

	if len(series) != 2 {
		t.Fatalf("series = %+v", series)
	}
	if series[0].Key != "2024-01" || series[1].Key != "2024-02" {
		t.Errorf("months out of order: %+v", series)
	}
	// February: 3500 in, 890 out -> 74.6% saved
	if series[1].SavingsRate != "74.6" {
		t.Errorf("savings rate = %q", series[1].SavingsRate)
	}
}
