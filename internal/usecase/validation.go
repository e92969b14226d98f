package usecase

import (
	"math"
	"strings"
)

// SanitizeEmail keeps the address only when it is syntactically plausible.
// Anything without an @ is coerced to empty rather than rejected.
func SanitizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return ""
	}
	return email
}

// ValidAmount reports whether v is a usable monetary amount.
func ValidAmount(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
