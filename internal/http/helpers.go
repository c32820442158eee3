package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
)

// writeJSON serializes v with the given status. Encoding failures are
// logged; by then the status line is already on the wire.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError sends the API's {"error": ...} envelope.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeSuccess sends the {"success": true} envelope deletions respond with.
func writeSuccess(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// decodeBody parses a JSON request body into dst. A false return means the
// 400 has already been written.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return false
	}
	return true
}

// pathID parses the named path wildcard as a numeric id. A false return
// means the 404 has already been written.
func pathID(w http.ResponseWriter, r *http.Request, name, notFoundMsg string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusNotFound, notFoundMsg)
		return 0, false
	}
	return id, true
}
