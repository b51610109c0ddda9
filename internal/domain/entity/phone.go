package entity

import (
	"fmt"
	"strings"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
)

// MinPhoneDigits is the shortest local number accepted when adding a phone
const MinPhoneDigits = 6

// UserPhone is a mobile-money number registered by the user on one network
type UserPhone struct {
	ID      int64  `json:"id"`
	Phone   string `json:"phone"`
	Network int64  `json:"network"`
}

// Digits returns the stored number without separators
func (p UserPhone) Digits() string {
	return FormatDigits(p.Phone)
}

// FormatDigits removes every non-digit character
func FormatDigits(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectCountry returns the first known country whose calling code prefixes the phone digits.
// Falls back to DefaultCountry when nothing matches.
func DetectCountry(rawPhone string, known []CountryOption) CountryOption {
	digits := FormatDigits(rawPhone)
	for _, c := range known {
		if c.CallingCode != "" && strings.HasPrefix(digits, c.CallingCode) {
			return c
		}
	}
	return DefaultCountry
}

// StripCountryPrefix returns the local digits of a phone for the given country
func StripCountryPrefix(rawPhone string, country CountryOption) string {
	digits := FormatDigits(rawPhone)
	return strings.TrimPrefix(digits, country.CallingCode)
}

// ComposeFull prefixes local digits with the country calling code, without separators
func ComposeFull(localDigits string, country CountryOption) string {
	return country.CallingCode + localDigits
}

// ValidateLocalPhone checks that a local number has enough digits to be registered
func ValidateLocalPhone(rawPhone string) error {
	digits := FormatDigits(rawPhone)
	if len(digits) < MinPhoneDigits {
		return fmt.Errorf("%w: at least %d digits required, got %d", errs.ErrInvalidPhone, MinPhoneDigits, len(digits))
	}
	return nil
}
