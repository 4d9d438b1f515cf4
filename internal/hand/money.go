package hand

import (
	"fmt"
	"strconv"
	"strings"
)

// currencySymbols maps leading currency symbols to ISO-ish codes.
// Platforms print amounts as "$0.05", "€1,50" or "¥100"; tournament chip
// amounts carry no symbol at all.
var currencySymbols = map[string]string{
	"$": "USD",
	"€": "EUR",
	"£": "GBP",
	"¥": "CNY",
}

// ParseAmount parses a money token like "$1,234.56" into its numeric value
// and detected currency code. Bare numbers default to USD.
func ParseAmount(s string) (float64, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", fmt.Errorf("empty amount")
	}

	currency := "USD"
	for symbol, code := range currencySymbols {
		if strings.HasPrefix(s, symbol) {
			currency = code
			s = strings.TrimPrefix(s, symbol)
			break
		}
	}

	s = strings.ReplaceAll(s, ",", "")
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return value, currency, nil
}

// ParseDecimal parses a bare decimal, tolerating thousands separators.
func ParseDecimal(s string) (float64, error) {
	value, _, err := ParseAmount(s)
	return value, err
}
