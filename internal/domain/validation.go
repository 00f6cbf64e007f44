package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidName     = errors.New("invalid customer name")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidMobile   = errors.New("invalid mobile number")
	ErrAmountTooLarge  = errors.New("value exceeds maximum allowed")
)

// Validation constants
const (
	MaxNameLength     = 255
	MaxPasswordLength = 128
	MaxDescription    = 1024
	MaxLitersPerEntry = "10000"
	MaxMoneyValue     = "1000000000" // 1 billion
)

var mobileRegex = regexp.MustCompile(`^\+?[0-9][0-9 -]{5,19}$`)

// ValidateName validates a customer name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidName)
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidName, MaxNameLength)
	}

	return nil
}

// ValidatePassword checks a plain-text password before hashing
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", ErrInvalidPassword)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: must not exceed %d characters", ErrInvalidPassword, MaxPasswordLength)
	}

	return nil
}

// ValidateMobile validates an optional mobile number
func ValidateMobile(mobile string) error {
	mobile = strings.TrimSpace(mobile)
	if mobile == "" {
		return nil
	}

	if !mobileRegex.MatchString(mobile) {
		return fmt.Errorf("%w: %s", ErrInvalidMobile, mobile)
	}

	return nil
}

// ValidateLiters validates the quantity of a milk entry
func ValidateLiters(liters decimal.Decimal) error {
	if !liters.IsPositive() {
		return ErrInvalidLiters
	}

	maxLiters, _ := decimal.NewFromString(MaxLitersPerEntry)
	if liters.GreaterThan(maxLiters) {
		return fmt.Errorf("%w: maximum is %s liters", ErrAmountTooLarge, MaxLitersPerEntry)
	}

	return nil
}

// ValidateRate validates a price per liter
func ValidateRate(rate decimal.Decimal) error {
	if !rate.IsPositive() {
		return ErrInvalidRate
	}
	return validateMoneyCeiling(rate)
}

// ValidateAmount validates a payment amount
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	return validateMoneyCeiling(amount)
}

// ValidateDescription limits free-text payment descriptions
func ValidateDescription(desc string) error {
	if len(desc) > MaxDescription {
		return fmt.Errorf("%w: description exceeds %d characters", ErrAmountTooLarge, MaxDescription)
	}
	return nil
}

func validateMoneyCeiling(v decimal.Decimal) error {
	maxValue, _ := decimal.NewFromString(MaxMoneyValue)
	if v.GreaterThan(maxValue) {
		return fmt.Errorf("%w: maximum is %s", ErrAmountTooLarge, MaxMoneyValue)
	}
	return nil
}
