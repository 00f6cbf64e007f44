package domain

import "github.com/shopspring/decimal"

// RateRecord is a per-customer price per liter, applicable from EffectiveDate on.
type RateRecord struct {
	CustomerID    string
	Rate          decimal.Decimal
	EffectiveDate Date
}

// ResolveRate returns the rate in effect for the customer on the given date:
// the record with the latest EffectiveDate not after on. When several records
// share that date, the one later in records wins. The second return value is
// false when no record applies.
func ResolveRate(customerID string, on Date, records []RateRecord) (decimal.Decimal, bool) {
	var (
		best  RateRecord
		found bool
	)

	for _, r := range records {
		if r.CustomerID != customerID || r.EffectiveDate.After(on) {
			continue
		}
		if !found || !r.EffectiveDate.Before(best.EffectiveDate) {
			best = r
			found = true
		}
	}

	if !found {
		return decimal.Zero, false
	}
	return best.Rate, true
}
