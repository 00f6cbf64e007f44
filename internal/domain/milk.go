package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Shift is the collection period of a milk entry.
type Shift string

const (
	ShiftMorning Shift = "morning"
	ShiftEvening Shift = "evening"
)

// ParseShift parses a shift name. An empty string means morning.
func ParseShift(s string) (Shift, error) {
	switch Shift(strings.ToLower(strings.TrimSpace(s))) {
	case "", ShiftMorning:
		return ShiftMorning, nil
	case ShiftEvening:
		return ShiftEvening, nil
	default:
		return "", fmt.Errorf("%w: got %q", ErrInvalidShift, s)
	}
}

// MilkEntry is one shift's milk collection from one customer.
type MilkEntry struct {
	ID          string
	CustomerID  string
	Date        Date
	DisplayDate BSDate
	Liters      decimal.Decimal
	Rate        decimal.Decimal
	Total       decimal.Decimal
	Shift       Shift
}

// NewMilkEntry builds an entry with Total and DisplayDate derived from the inputs.
// The ID is assigned by the record store.
func NewMilkEntry(customerID string, date Date, liters, rate decimal.Decimal, shift Shift, conv DateConverter) MilkEntry {
	return MilkEntry{
		CustomerID:  customerID,
		Date:        date,
		DisplayDate: conv.ToBS(date),
		Liters:      liters,
		Rate:        rate,
		Total:       liters.Mul(rate),
		Shift:       shift,
	}
}

// MilkEntryPatch lists the mutable fields of an entry. Nil fields are left unchanged.
type MilkEntryPatch struct {
	Date   *Date
	Liters *decimal.Decimal
	Rate   *decimal.Decimal
	Shift  *Shift
}

// Apply returns a copy of e with the patch applied and Total and DisplayDate
// recomputed. e itself is not modified.
func (e MilkEntry) Apply(p MilkEntryPatch, conv DateConverter) MilkEntry {
	out := e
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Liters != nil {
		out.Liters = *p.Liters
	}
	if p.Rate != nil {
		out.Rate = *p.Rate
	}
	if p.Shift != nil {
		out.Shift = *p.Shift
	}

	out.Total = out.Liters.Mul(out.Rate)
	out.DisplayDate = conv.ToBS(out.Date)
	return out
}
