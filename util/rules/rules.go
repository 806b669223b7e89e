// Package rules holds the pure account-form validation rules. Every
// function is total over strings and issues no I/O.
package rules

import "regexp"

var (
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidEmail reports whether s looks like local@domain.tld with a final
// label of at least two characters. The empty string fails.
func ValidEmail(s string) bool { return emailRe.MatchString(s) }

// PasswordChecks is the per-requirement breakdown rendered as the
// password checklist.
type PasswordChecks struct {
	MinLength bool
	Upper     bool
	Lower     bool
	Digit     bool
	Special   bool
}

// Met reports whether every requirement is satisfied.
func (p PasswordChecks) Met() bool {
	return p.MinLength && p.Upper && p.Lower && p.Digit && p.Special
}

// CheckPassword evaluates the five independent password requirements.
func CheckPassword(s string) PasswordChecks {
	return PasswordChecks{
		MinLength: len(s) >= 8,
		Upper:     upperRe.MatchString(s),
		Lower:     lowerRe.MatchString(s),
		Digit:     digitRe.MatchString(s),
		Special:   specialRe.MatchString(s),
	}
}

// PasswordsMatch reports whether the confirmation equals the password.
// Two empty strings do not match: the field stays in its mismatch state
// until a non-empty confirmation is typed.
func PasswordsMatch(password, confirmation string) bool {
	return confirmation != "" && password == confirmation
}
