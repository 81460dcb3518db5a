package api

import (
	"net/http"
	"time"

	"ratewatch/internal/output"
	"ratewatch/internal/rates"
)

// HandleGetRatesTable godoc
// @Summary Get the current rate list as a plain-text table
// @Description Terminal-friendly rendering of the same state snapshot served by GET /rates.
// @Tags rates
// @Produce plain
// @Success 200 {string} string "Rendered table"
// @Router /rates/table [get]
func HandleGetRatesTable(ctrl rates.RateControllerInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(output.RenderState(ctrl.State(), time.Now())))
	}
}
