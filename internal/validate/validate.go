// Package validate holds the shape checks applied to booking submissions.
package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Loose on purpose: the lower bound counts separators as well as digits,
	// so "(--) ------" passes. Kept for parity with the live form.
	phoneRe = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)
)

// IsValidEmail reports whether s looks like local@domain.tld. Permissive;
// it exists to gate the best-effort confirmation email, not to verify
// deliverability.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPhone accepts an optional leading + followed by at least ten
// characters drawn from digits, spaces, hyphens and parentheses.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s)
}

// Phone adapts IsValidPhone for use as a validator tag (bookingphone).
var Phone = func(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

// Email adapts IsValidEmail for use as a validator tag (bookingemail).
var Email = func(fl validator.FieldLevel) bool {
	return IsValidEmail(fl.Field().String())
}
