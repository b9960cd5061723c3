package handler

import "net/http"

// Health reports process liveness.
type Health struct{}

func NewHealth() *Health {
	return &Health{}
}

func (h *Health) Get(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
