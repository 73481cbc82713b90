package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// Amounts are handled as integer minor currency units everywhere in the core.
// Decimal strings appear only at two boundaries: formatted display values in
// order descriptions and product lists, and decimal amount fields of inbound
// callbacks. Conversion goes through string splitting, never through floating
// multiplication.

// FormatAmount renders minor units as a plain decimal string: 1250 -> "12.50".
func FormatAmount(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", sign, minor/100, minor%100)
}

// ParseAmount converts a decimal string into minor units: "12.5" -> 1250.
// Fractions beyond two digits are rejected, partial minor units do not exist.
func ParseAmount(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty amount")
	}
	negative := false
	if strings.HasPrefix(value, "-") {
		negative = true
		value = value[1:]
	}
	whole, fraction, _ := strings.Cut(value, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %v", value, err)
	}
	var cents int64
	switch len(fraction) {
	case 0:
	case 1:
		cents, err = strconv.ParseInt(fraction, 10, 64)
		cents *= 10
	case 2:
		cents, err = strconv.ParseInt(fraction, 10, 64)
	default:
		return 0, fmt.Errorf("invalid amount %q: too many decimal places", value)
	}
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %v", value, err)
	}
	minor := units*100 + cents
	if negative {
		minor = -minor
	}
	return minor, nil
}
