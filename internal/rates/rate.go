// Package rates implements the core domain logic for currency exchange rates:
// the rate snapshot model, the refresh state machine, and the client-side
// refresh throttle.
package rates

import (
	"fmt"
	"strconv"
	"strings"
)

// ExchangeRate is one currency pair snapshot as reported by the provider.
// Either RateBuy/RateSell or RateCross is expected to be present, but the
// schema does not enforce it; all three may be absent.
type ExchangeRate struct {
	CurrencyCodeA int      `json:"currencyCodeA"`
	CurrencyCodeB int      `json:"currencyCodeB"`
	RateBuy       *float64 `json:"rateBuy,omitempty"`
	RateSell      *float64 `json:"rateSell,omitempty"`
	RateCross     *float64 `json:"rateCross,omitempty"`
}

// currencyLabels maps ISO 4217 numeric codes to their three-letter symbols.
var currencyLabels = map[int]string{
	840: "USD",
	978: "EUR",
	980: "UAH",
	826: "GBP",
	392: "JPY",
	756: "CHF",
	985: "PLN",
}

// CurrencyLabel returns the three-letter symbol for a known ISO 4217 numeric
// code, or the decimal string of the code itself when unknown.
func CurrencyLabel(code int) string {
	if label, ok := currencyLabels[code]; ok {
		return label
	}
	return strconv.Itoa(code)
}

// PairLabel renders the currency pair as "USD → UAH".
func (r ExchangeRate) PairLabel() string {
	return CurrencyLabel(r.CurrencyCodeA) + " → " + CurrencyLabel(r.CurrencyCodeB)
}

// RateDescription renders the rate values for display: "cross: X.XXXX" when a
// cross rate is present, "buy: X.XX / sell: X.XX" otherwise. Returns an empty
// string when no rate fields are set.
func (r ExchangeRate) RateDescription() string {
	if r.RateCross != nil {
		return fmt.Sprintf("cross: %.4f", *r.RateCross)
	}

	var parts []string
	if r.RateBuy != nil {
		parts = append(parts, fmt.Sprintf("buy: %.2f", *r.RateBuy))
	}
	if r.RateSell != nil {
		parts = append(parts, fmt.Sprintf("sell: %.2f", *r.RateSell))
	}
	return strings.Join(parts, " / ")
}
