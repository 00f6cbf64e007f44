package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Sita Sharma", false},
		{"trimmed empty", "   ", true},
		{"too long", strings.Repeat("a", MaxNameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidName) {
				t.Fatalf("expected ErrInvalidName, got %v", err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("secret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePassword(""); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if err := ValidatePassword(strings.Repeat("x", MaxPasswordLength+1)); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword for long password, got %v", err)
	}
}

func TestValidateMobile(t *testing.T) {
	for _, ok := range []string{"", "9800000000", "+977 9800000000", "01-4412345"} {
		if err := ValidateMobile(ok); err != nil {
			t.Errorf("expected %q to be valid, got %v", ok, err)
		}
	}
	for _, bad := range []string{"abc", "12", "98000000000000000000000"} {
		if err := ValidateMobile(bad); !errors.Is(err, ErrInvalidMobile) {
			t.Errorf("expected %q to be invalid, got %v", bad, err)
		}
	}
}

func TestValidateLiters(t *testing.T) {
	if err := ValidateLiters(decimal.RequireFromString("12.5")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateLiters(decimal.Zero); !errors.Is(err, ErrInvalidLiters) {
		t.Fatalf("expected ErrInvalidLiters, got %v", err)
	}
	if err := ValidateLiters(decimal.NewFromInt(-1)); !errors.Is(err, ErrInvalidLiters) {
		t.Fatalf("expected ErrInvalidLiters, got %v", err)
	}
	if err := ValidateLiters(decimal.NewFromInt(10001)); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateRateAndAmount(t *testing.T) {
	if err := ValidateRate(decimal.NewFromInt(80)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateRate(decimal.Zero); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("expected ErrInvalidRate, got %v", err)
	}
	if err := ValidateAmount(decimal.NewFromInt(-5)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if err := ValidateAmount(decimal.RequireFromString("1000000000.01")); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateDescription(t *testing.T) {
	if err := ValidateDescription("cash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateDescription(strings.Repeat("d", MaxDescription+1)); err == nil {
		t.Fatal("expected error for long description")
	}
}
