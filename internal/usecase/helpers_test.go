package usecase_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
	"github.com/iho/dairyledger/internal/usecase"
)

var fixedNow = usecase.FixedClock{At: time.Date(2026, time.January, 16, 9, 30, 0, 0, time.UTC)}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func date(s string) domain.Date {
	return domain.MustParseDate(s)
}
