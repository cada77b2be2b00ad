package validation

import (
	"strings"
	"unicode"
)

// passwordSymbols is the fixed punctuation set accepted for the symbol
// requirement at registration.
const passwordSymbols = `!@#$%^&*()_+-=[]{};':",.<>/?` + "`~|\\"

// Password checks the registration password policy: minimum length 6, at
// least one uppercase letter, one lowercase letter, one digit and one symbol
// from the fixed punctuation set.
func Password(pw string) error {
	var fe FieldErrors
	if len(pw) < 6 {
		fe = fe.add("password", "must be at least 6 characters")
	}
	var upper, lower, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	if !upper {
		fe = fe.add("password", "must contain an uppercase letter")
	}
	if !lower {
		fe = fe.add("password", "must contain a lowercase letter")
	}
	if !digit {
		fe = fe.add("password", "must contain a digit")
	}
	if !symbol {
		fe = fe.add("password", "must contain a symbol")
	}
	return fe.OrNil()
}

// PasswordConfirmation checks that the confirmation field matches exactly.
func PasswordConfirmation(pw, confirm string) error {
	var fe FieldErrors
	if pw != confirm {
		fe = fe.add("confirmPassword", "does not match password")
	}
	return fe.OrNil()
}
