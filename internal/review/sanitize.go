package review

import (
	"strconv"
	"strings"
)

// SanitizeDecimalInput strips everything but digits and keeps only the
// first decimal point. Free-text money fields are filtered at input
// time rather than rejected after the fact.
func SanitizeDecimalInput(value string) string {
	var sb strings.Builder
	seenDot := false
	for _, r := range value {
		switch {
		case r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == '.' && !seenDot:
			sb.WriteRune(r)
			seenDot = true
		}
	}
	return sb.String()
}

// NormalizeTrailingDot drops a bare trailing decimal point, as happens
// when a field loses focus mid-entry ("12." -> "12").
func NormalizeTrailingDot(value string) string {
	return strings.TrimSuffix(value, ".")
}

// SanitizeIntegerInput strips everything but digits.
func SanitizeIntegerInput(value string) string {
	var sb strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// ParseAmount parses a sanitized money string; empty or invalid input
// coerces to 0.
func ParseAmount(value string) float64 {
	v, err := strconv.ParseFloat(NormalizeTrailingDot(SanitizeDecimalInput(value)), 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseQuantity parses a quantity string; empty, invalid or
// non-positive input coerces to 1.
func ParseQuantity(value string) int {
	v, err := strconv.Atoi(SanitizeIntegerInput(value))
	if err != nil || v < 1 {
		return 1
	}
	return v
}
