package filters

import (
	"fmt"
	"strconv"
)

// Amount is a price bound kept in the exact textual form it was supplied in,
// so "2.50" is re-encoded as "2.50" and never rounded.
type Amount string

// ParseAmount accepts a non-negative decimal with an optional fractional part.
func ParseAmount(s string) (Amount, error) {
	if s == "" {
		return "", fmt.Errorf("empty amount")
	}
	dot := false
	digits := 0
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !dot && i > 0 && i < len(s)-1:
			dot = true
		default:
			return "", fmt.Errorf("amount %q is not a decimal number", s)
		}
	}
	if digits == 0 {
		return "", fmt.Errorf("amount %q is not a decimal number", s)
	}
	return Amount(s), nil
}

func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Float returns the numeric value. Zero for an empty amount.
func (a Amount) Float() float64 {
	if a == "" {
		return 0
	}
	f, _ := strconv.ParseFloat(string(a), 64)
	return f
}

func (a Amount) String() string {
	return string(a)
}
