package http

import (
	"log/slog"
	"net/http"

	"mindmoney/internal/core"
	"mindmoney/internal/ledger"
)

// summaryResponse is the aggregation payload: totals, buckets, the insight
// and any alert notifications recomputed for this fetch.
type summaryResponse struct {
	core.Summary
	Insight       core.Insight        `json:"insight"`
	Notifications []core.Notification `json:"notifications"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	q := r.URL.Query()

	filter := ledger.TransactionFilter{
		Period: core.Period{
			Start: q.Get("startDate"),
			End:   q.Get("endDate"),
		},
	}

	txs, err := s.store.ListTransactions(r.Context(), claims.UserID, filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary transactions error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	summary := core.Summarize(txs)
	insight := core.BuildInsight(summary.TotalIncome, summary.TotalExpenses, summary.CategoryData)

	alerts, err := s.store.ListAlerts(r.Context(), claims.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Summary alerts error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	notifications := core.Notifications(core.EvaluateAlerts(alerts, summary.CategoryData))
	s.publishNotifications(r, claims.UserID, notifications)

	writeJSON(w, http.StatusOK, summaryResponse{
		Summary:       summary,
		Insight:       insight,
		Notifications: notifications,
	})
}

// handleEvaluateAlerts classifies the caller's alerts against an already
// aggregated category breakdown, without touching the ledger.
func (s *Server) handleEvaluateAlerts(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	var req struct {
		CategoryData []core.CategoryBucket `json:"categoryData"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	alerts, err := s.store.ListAlerts(r.Context(), claims.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Evaluate alerts error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	statuses := core.EvaluateAlerts(alerts, req.CategoryData)
	notifications := core.Notifications(statuses)
	s.publishNotifications(r, claims.UserID, notifications)

	writeJSON(w, http.StatusOK, struct {
		Results       []core.AlertStatus  `json:"results"`
		Notifications []core.Notification `json:"notifications"`
	}{Results: statuses, Notifications: notifications})
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	txs, err := s.store.ListTransactions(r.Context(), claims.UserID, ledger.TransactionFilter{})
	if err != nil {
		slog.ErrorContext(r.Context(), "Comparison transactions error", "error", err, "user_id", claims.UserID)
		writeError(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	writeJSON(w, http.StatusOK, core.Compare(txs))
}

// publishNotifications forwards breached-alert notifications to the broker.
// Publishing is best-effort: failures are logged and never fail the
// request.
func (s *Server) publishNotifications(r *http.Request, userID int64, notifications []core.Notification) {
	if s.notifier == nil {
		return
	}
	for _, n := range notifications {
		if err := s.notifier.PublishNotification(r.Context(), userID, n); err != nil {
			slog.ErrorContext(r.Context(), "Notification publish error",
				"error", err,
				"user_id", userID,
				"category", n.Category)
		}
	}
}
