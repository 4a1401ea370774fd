package validation

import "strings"

type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func MinInt(field string, val, minVal int, v Violations) {
	if val < minVal {
		v[field] = "too_small"
	}
}

// PhoneDigits accepts an optional phone field: when present it must carry
// between minD and maxD digits, separators ignored.
func PhoneDigits(field, value string, minD, maxD int, v Violations) {
	if strings.TrimSpace(value) == "" {
		return
	}
	digits := 0
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < minD || digits > maxD {
		v[field] = "invalid_phone"
	}
}
