package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	errs "github.com/turaincash/mobcash-wallet/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for user-entered amounts
const MaxDecimalPlaces = 2

// Amount is a FCFA amount stored in minor units (centimes) to avoid floating point drift
type Amount int64

// ParseAmount validates a user-entered decimal string and converts it to minor units.
// Uses a string-based approach to handle decimal places:
// - If no decimal point: multiplies by 100
// - If one digit after decimal: adds a "0"
// - If two digits after decimal: just removes the point
// Zero is a valid parse; callers decide whether it is an acceptable amount.
func ParseAmount(amount string) (Amount, error) {
	amount = strings.TrimSpace(amount)
	if len(amount) == 0 {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	if strings.HasPrefix(amount, "-") || strings.HasPrefix(amount, "+") {
		return 0, fmt.Errorf("%w: signed value", errs.ErrInvalidAmount)
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var integerValue string
	if len(parts) == 1 {
		integerValue = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			integerValue = parts[0] + "00"
		case 1:
			integerValue = parts[0] + parts[1] + "0"
		case 2:
			integerValue = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	for _, r := range integerValue {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: non-numeric value", errs.ErrInvalidAmount)
		}
	}

	value, err := strconv.ParseInt(integerValue, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	return Amount(value), nil
}

// AmountFromWhole builds an Amount from a whole FCFA value
func AmountFromWhole(fcfa int64) Amount {
	return Amount(fcfa * 100)
}

// Whole returns the amount truncated to whole FCFA
func (a Amount) Whole() int64 {
	return int64(a) / 100
}

// String converts the amount to a decimal string with two decimal places
// For example:
// - 1015 becomes "10.15"
// - 1000 becomes "10.00"
func (a Amount) String() string {
	minor := int64(a)
	isNegative := minor < 0
	if isNegative {
		minor = -minor
	}

	amountStr := strconv.FormatInt(minor, 10)
	for len(amountStr) < 3 {
		amountStr = "0" + amountStr
	}

	decimalPos := len(amountStr) - 2
	wholePart := amountStr[:decimalPos]
	decimalPart := amountStr[decimalPos:]

	if isNegative {
		return "-" + wholePart + "." + decimalPart
	}
	return wholePart + "." + decimalPart
}

// Decimal returns the shortest decimal form: "1000" for 100000, "10.5" for 1050
func (a Amount) Decimal() string {
	s := a.String()
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// MarshalJSON writes the amount as a JSON number, the way the remote API expects it
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal()), nil
}

// UnmarshalJSON accepts a JSON number, a quoted decimal string or null.
// Remote bounds sometimes carry more than two decimals; extra digits are truncated.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = 0
		return nil
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
		}
		raw = s
	}
	if strings.TrimSpace(raw) == "" {
		*a = 0
		return nil
	}

	negative := strings.HasPrefix(raw, "-")
	parsed, err := ParseAmount(truncateDecimals(strings.TrimPrefix(raw, "-")))
	if err != nil {
		return err
	}
	if negative {
		parsed = -parsed
	}
	*a = parsed
	return nil
}

func truncateDecimals(amount string) string {
	whole, frac, found := strings.Cut(strings.TrimSpace(amount), ".")
	if !found || len(frac) <= MaxDecimalPlaces {
		return amount
	}
	return whole + "." + frac[:MaxDecimalPlaces]
}
