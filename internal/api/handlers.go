package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"ratewatch/internal/rates"
)

// RateRow is one rendered rate list entry.
type RateRow struct {
	Pair      string   `json:"pair" example:"USD → UAH"`
	RateBuy   *float64 `json:"rate_buy,omitempty" example:"41.0"`
	RateSell  *float64 `json:"rate_sell,omitempty" example:"41.5"`
	RateCross *float64 `json:"rate_cross,omitempty"`
	Display   string   `json:"display,omitempty" example:"buy: 41.00 / sell: 41.50"`
}

// StateResponse is the JSON rendering of the refresh state snapshot. Exactly
// one of the loading/error/loaded shapes is populated, keyed by Status.
type StateResponse struct {
	Status     string    `json:"status" example:"loaded"`
	Error      string    `json:"error,omitempty"`
	FetchedAt  *string   `json:"fetched_at,omitempty" example:"2026-08-26T10:15:30Z"`
	LastUpdate string    `json:"last_update,omitempty" example:"updated just now"`
	Rates      []RateRow `json:"rates,omitempty"`
}

func stateResponse(st rates.State, now time.Time) StateResponse {
	resp := StateResponse{Status: string(st.Kind)}

	switch st.Kind {
	case rates.KindError:
		resp.Error = st.Err
	case rates.KindLoaded:
		ts := st.FetchedAt.Format(time.RFC3339)
		resp.FetchedAt = &ts
		resp.LastUpdate = rates.LastUpdateDescription(now, st.FetchedAt)
		resp.Rates = make([]RateRow, 0, len(st.Rates))
		for _, r := range st.Rates {
			resp.Rates = append(resp.Rates, RateRow{
				Pair:      r.PairLabel(),
				RateBuy:   r.RateBuy,
				RateSell:  r.RateSell,
				RateCross: r.RateCross,
				Display:   r.RateDescription(),
			})
		}
	}

	return resp
}

// HandleGetRates godoc
// @Summary Get the current rate refresh state
// @Description Returns the current state snapshot: loading, error, or the loaded rate list with its age. Never triggers a fetch.
// @Tags rates
// @Produce json
// @Success 200 {object} StateResponse "Current state"
// @Router /rates [get]
func HandleGetRates(ctrl rates.RateControllerInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stateResponse(ctrl.State(), time.Now()))
	}
}

// HandleRefresh godoc
// @Summary Trigger a rate refresh
// @Description Performs one fetch against the provider, subject to the client-side throttle. A throttled attempt returns 429 with the remaining wait and leaves the published state untouched.
// @Tags rates
// @Produce json
// @Success 200 {object} StateResponse "Refresh succeeded"
// @Failure 429 {object} ThrottledResponse "Refresh suppressed by the local throttle"
// @Failure 502 {object} ErrorResponse "Provider fetch failed"
// @Router /rates/refresh [post]
func HandleRefresh(ctrl rates.RateControllerInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := ctrl.Refresh(r.Context())
		if err != nil {
			var throttled *rates.ThrottledError
			if errors.As(err, &throttled) {
				w.Header().Set("Retry-After", strconv.Itoa(throttled.SecondsRemaining))
				writeJSON(w, http.StatusTooManyRequests, ThrottledResponse{
					Notice:           throttled.Error(),
					SecondsRemaining: throttled.SecondsRemaining,
				})
				return
			}
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			return
		}

		if st.Kind == rates.KindError {
			writeJSON(w, http.StatusBadGateway, ErrorResponse{Error: st.Err})
			return
		}

		writeJSON(w, http.StatusOK, stateResponse(st, time.Now()))
	}
}
