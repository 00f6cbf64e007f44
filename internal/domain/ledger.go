package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const (
	// ReportMonths is the width of the trailing monthly statement.
	ReportMonths = 3
	// ChartDays is the width of the trailing daily collection chart.
	ChartDays = 7
)

var hundred = decimal.NewFromInt(100)

// Ledger is the derived account position of a customer. It is never stored.
type Ledger struct {
	TotalBilled decimal.Decimal
	TotalPaid   decimal.Decimal
	Dues        decimal.Decimal
}

// ledgerOf sums all entries and payments it is given, without filtering.
func ledgerOf(entries []MilkEntry, payments []Payment) Ledger {
	billed := decimal.Zero
	for _, e := range entries {
		billed = billed.Add(e.Total)
	}

	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(p.Amount)
	}

	return Ledger{
		TotalBilled: billed,
		TotalPaid:   paid,
		Dues:        billed.Sub(paid),
	}
}

// CustomerLedger computes billed, paid and dues for one customer. Negative dues
// mean the customer has overpaid.
func CustomerLedger(customerID string, entries []MilkEntry, payments []Payment) Ledger {
	return ledgerOf(EntriesForCustomer(customerID, entries), PaymentsForCustomer(customerID, payments))
}

// TotalLedger sums every entry and payment regardless of customer.
func TotalLedger(entries []MilkEntry, payments []Payment) Ledger {
	return ledgerOf(entries, payments)
}

// EntriesForCustomer returns the entries belonging to customerID, in input order.
func EntriesForCustomer(customerID string, entries []MilkEntry) []MilkEntry {
	out := make([]MilkEntry, 0)
	for _, e := range entries {
		if e.CustomerID == customerID {
			out = append(out, e)
		}
	}
	return out
}

// PaymentsForCustomer returns the payments belonging to customerID, in input order.
func PaymentsForCustomer(customerID string, payments []Payment) []Payment {
	out := make([]Payment, 0)
	for _, p := range payments {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out
}

// CustomerSummary is the merged view of all entries of one customer.
type CustomerSummary struct {
	CustomerID  string
	Entries     []MilkEntry
	TotalLiters decimal.Decimal
	TotalAmount decimal.Decimal
	AverageRate decimal.Decimal
}

// MergeByCustomer groups entries by customer in first-seen order. AverageRate is
// TotalAmount / TotalLiters, or zero when no liters were recorded.
func MergeByCustomer(entries []MilkEntry) []CustomerSummary {
	index := make(map[string]int)
	summaries := make([]CustomerSummary, 0)

	for _, e := range entries {
		i, ok := index[e.CustomerID]
		if !ok {
			i = len(summaries)
			index[e.CustomerID] = i
			summaries = append(summaries, CustomerSummary{
				CustomerID:  e.CustomerID,
				TotalLiters: decimal.Zero,
				TotalAmount: decimal.Zero,
			})
		}

		s := &summaries[i]
		s.Entries = append(s.Entries, e)
		s.TotalLiters = s.TotalLiters.Add(e.Liters)
		s.TotalAmount = s.TotalAmount.Add(e.Total)
	}

	for i := range summaries {
		summaries[i].AverageRate = safeDiv(summaries[i].TotalAmount, summaries[i].TotalLiters)
	}

	return summaries
}

// MonthKey identifies an AD calendar month.
type MonthKey struct {
	Year  int
	Month int
}

// AddMonths returns the key n months later (earlier for negative n).
func (k MonthKey) AddMonths(n int) MonthKey {
	t := time.Date(k.Year, time.Month(k.Month), 1, 12, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	return MonthKey{Year: t.Year(), Month: int(t.Month())}
}

// Name is the English month name with year, e.g. "January 2026".
func (k MonthKey) Name() string {
	return fmt.Sprintf("%s %d", time.Month(k.Month), k.Year)
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, k.Month)
}

// TrailingMonths returns n month keys ending with today's month, oldest first.
func TrailingMonths(today Date, n int) []MonthKey {
	if n <= 0 {
		return nil
	}
	current := today.MonthKey()
	keys := make([]MonthKey, n)
	for i := 0; i < n; i++ {
		keys[i] = current.AddMonths(i - (n - 1))
	}
	return keys
}

// MonthlyLedger is the ledger restricted to one month.
type MonthlyLedger struct {
	Key      MonthKey
	Entries  []MilkEntry
	Payments []Payment
	Ledger   Ledger
	// Current marks the most recent month, which is shown expanded by default.
	Current bool
}

// GroupByMonth buckets entries and payments into the given months and computes
// the ledger of each. The last key is treated as the current month.
func GroupByMonth(entries []MilkEntry, payments []Payment, keys []MonthKey) []MonthlyLedger {
	out := make([]MonthlyLedger, len(keys))
	for i, key := range keys {
		monthEntries := make([]MilkEntry, 0)
		for _, e := range entries {
			if e.Date.MonthKey() == key {
				monthEntries = append(monthEntries, e)
			}
		}

		monthPayments := make([]Payment, 0)
		for _, p := range payments {
			if p.Date.MonthKey() == key {
				monthPayments = append(monthPayments, p)
			}
		}

		out[i] = MonthlyLedger{
			Key:      key,
			Entries:  monthEntries,
			Payments: monthPayments,
			Ledger:   ledgerOf(monthEntries, monthPayments),
			Current:  i == len(keys)-1,
		}
	}
	return out
}

// ShiftTotals is the collected quantity and value for one shift or one day.
type ShiftTotals struct {
	Liters decimal.Decimal
	Amount decimal.Decimal
}

func (t ShiftTotals) add(e MilkEntry) ShiftTotals {
	return ShiftTotals{Liters: t.Liters.Add(e.Liters), Amount: t.Amount.Add(e.Total)}
}

// DailyTotals holds one chart column.
type DailyTotals struct {
	Date    Date
	Morning ShiftTotals
	Evening ShiftTotals
	Total   ShiftTotals
}

// DailyChart is the trailing per-shift collection chart.
type DailyChart struct {
	Days []DailyTotals
	// MaxLiters is the largest single-shift liters value, never below 1.
	MaxLiters decimal.Decimal
}

// Percentage scales v against MaxLiters for bar heights.
func (c DailyChart) Percentage(v decimal.Decimal) decimal.Decimal {
	return safeDiv(v, c.MaxLiters).Mul(hundred)
}

// DailyShiftTotals sums liters and amount per shift for each of the days ending
// with today, oldest first.
func DailyShiftTotals(entries []MilkEntry, today Date, days int) DailyChart {
	chart := DailyChart{
		Days:      make([]DailyTotals, 0, max(days, 0)),
		MaxLiters: decimal.NewFromInt(1),
	}

	for i := days - 1; i >= 0; i-- {
		day := DailyTotals{
			Date:    today.AddDays(-i),
			Morning: ShiftTotals{Liters: decimal.Zero, Amount: decimal.Zero},
			Evening: ShiftTotals{Liters: decimal.Zero, Amount: decimal.Zero},
			Total:   ShiftTotals{Liters: decimal.Zero, Amount: decimal.Zero},
		}

		for _, e := range entries {
			if e.Date != day.Date {
				continue
			}
			switch e.Shift {
			case ShiftMorning:
				day.Morning = day.Morning.add(e)
			case ShiftEvening:
				day.Evening = day.Evening.add(e)
			}
			day.Total = day.Total.add(e)
		}

		chart.MaxLiters = decimal.Max(chart.MaxLiters, day.Morning.Liters, day.Evening.Liters)
		chart.Days = append(chart.Days, day)
	}

	return chart
}

func safeDiv(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}
