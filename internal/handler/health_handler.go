package handlers

import (
	"net/http"
)

type HealthResponse struct {
	Status string `json:"status"`
}

func (h *Handlers) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.HealthService.Check(r.Context()); err != nil {
		h.Log.Warnw("База данных недоступна", "error", err)
		writeJSON(w, ErrorResponse{Message: "Database unavailable.", Status: http.StatusServiceUnavailable}, http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, HealthResponse{Status: "ok"}, http.StatusOK)
}
