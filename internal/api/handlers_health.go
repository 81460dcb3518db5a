package api

import (
	"net/http"

	"ratewatch/internal/rates"
)

// ReadyResponse represents the readiness response
type ReadyResponse struct {
	Status string `json:"status" example:"ready"`
}

// HandleHealthz godoc
// @Summary Health check (liveness)
// @Description Always returns 200 OK if the service is running. Used for liveness probes.
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("OK"))
	}
}

// HandleReadyz godoc
// @Summary Readiness check
// @Description Returns 200 once the initial refresh attempt has completed, successfully or not. Before that the service has nothing to serve yet.
// @Tags health
// @Produce json
// @Success 200 {object} ReadyResponse "Initial refresh completed"
// @Failure 503 {object} ErrorResponse "Initial refresh still in flight"
// @Router /readyz [get]
func HandleReadyz(ctrl rates.RateControllerInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !ctrl.Ready() {
			writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Error: "Initial refresh not completed"})
			return
		}
		writeJSON(w, http.StatusOK, ReadyResponse{Status: "ready"})
	}
}
