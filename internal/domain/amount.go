package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RequirePositive returns an InvalidInputError unless amount > 0
func RequirePositive(operation, field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &InvalidInputError{Operation: operation, Field: field, Value: amount.String()}
	}
	return nil
}

// AmountFromFloat converts a float entry into a decimal, rejecting NaN, ±Inf and
// non-positive values
func AmountFromFloat(operation, field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, &InvalidInputError{Operation: operation, Field: field, Value: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	d := decimal.NewFromFloat(f)
	if err := RequirePositive(operation, field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// ParseAmount parses user-typed currency such as "8.500.000", "8,500,000" or
// "8500000.50". The last comma or dot followed by exactly three digits is a
// thousands separator; followed by one or two digits it is the decimal point.
// Any other shape is rejected rather than guessed.
func ParseAmount(operation, field, raw string) (decimal.Decimal, error) {
	invalid := &InvalidInputError{Operation: operation, Field: field, Value: raw}

	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	if s == "" {
		return decimal.Zero, invalid
	}

	whole, fraction := s, ""
	if i := strings.LastIndexAny(s, ".,"); i >= 0 {
		switch len(s) - i - 1 {
		case 3:
		case 1, 2:
			if strings.IndexByte(s[:i], s[i]) >= 0 {
				return decimal.Zero, invalid
			}
			whole, fraction = s[:i], s[i+1:]
		default:
			return decimal.Zero, invalid
		}
	}
	if !validGrouping(whole) {
		return decimal.Zero, invalid
	}

	s = strings.NewReplacer(".", "", ",", "").Replace(whole)
	if fraction != "" {
		s += "." + fraction
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, invalid
	}
	if err := RequirePositive(operation, field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

// validGrouping accepts digits without separators, or one to three leading digits
// followed by groups of exactly three
func validGrouping(s string) bool {
	groups := strings.FieldsFunc(s, func(r rune) bool { return r == '.' || r == ',' })
	if len(groups) <= 1 {
		return !strings.ContainsAny(s, ".,")
	}
	if strings.Count(s, ".")+strings.Count(s, ",") != len(groups)-1 ||
		strings.ContainsAny(s, ".") && strings.ContainsAny(s, ",") {
		return false
	}
	if len(groups[0]) < 1 || len(groups[0]) > 3 {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 {
			return false
		}
	}
	return true
}
