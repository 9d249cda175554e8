package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// emailRegex is a permissive single-pass structural check: local part,
// domain, dot, TLD. Not full RFC 5322 validation.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// phoneCleaner strips the separators people type into phone numbers.
var phoneCleaner = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_email", func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true // Optional, use required if needed
		}
		return ValidEmail(val)
	})
	_ = v.RegisterValidation("valid_phone", func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		if val == "" {
			return true
		}
		return ValidPhone(val, "")
	})
}

// ValidEmail reports whether the trimmed value has the shape local@domain.tld.
func ValidEmail(value string) bool {
	return emailRegex.MatchString(strings.TrimSpace(value))
}

// ValidPhone applies a loose E.164-adjacent check so real international
// numbers are not rejected. countryHint is the selected country's dialing
// prefix and only participates when the input itself is not conclusive.
func ValidPhone(value, countryHint string) bool {
	cleaned := phoneCleaner.Replace(strings.TrimSpace(value))

	if strings.HasPrefix(cleaned, "+") {
		return digitsInRange(cleaned[1:], 7, 15)
	}
	if isDigits(cleaned) {
		return digitsInRange(cleaned, 7, 15)
	}
	if countryHint != "" && len(cleaned) >= 7 {
		combined := strings.TrimPrefix(digitsOf(countryHint)+cleaned, "+")
		return digitsInRange(combined, 7, 15)
	}
	return false
}

func digitsInRange(s string, min, max int) bool {
	return isDigits(s) && len(s) >= min && len(s) <= max
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
