package presenter

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/assetbook/internal/ledger"
)

const minuteLayout = "2006-01-02 15:04"

// ParseAmount reads a user-typed amount. Thousands separators "," and "_"
// and surrounding blanks are ignored.
func ParseAmount(s string) (float64, error) {
	cleaned := strings.NewReplacer(",", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0, fmt.Errorf("%w: amount is required", ledger.ErrValidation)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", ledger.ErrValidation, s)
	}

	return d.InexactFloat64(), nil
}

// ParseDate reads an optional record date. Blank means now (zero time).
// Dates without a zone are taken in local time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	for _, layout := range []string{minuteLayout, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD, YYYY-MM-DD HH:MM or RFC3339", ledger.ErrValidation, s)
}
