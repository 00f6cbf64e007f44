package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func entry(customer, date, liters, total string, shift Shift) MilkEntry {
	l, tot := dec(liters), dec(total)
	return MilkEntry{
		CustomerID: customer,
		Date:       MustParseDate(date),
		Liters:     l,
		Rate:       safeDiv(tot, l),
		Total:      tot,
		Shift:      shift,
	}
}

func payment(customer, date, amount string) Payment {
	return Payment{CustomerID: customer, Date: MustParseDate(date), Amount: dec(amount)}
}

func TestCustomerLedger(t *testing.T) {
	entries := []MilkEntry{
		entry("CUST001", "2025-06-01", "10", "100.00", ShiftMorning),
		entry("CUST001", "2025-06-02", "5", "50.00", ShiftEvening),
		entry("CUST002", "2025-06-02", "3", "999.00", ShiftEvening),
	}
	payments := []Payment{
		payment("CUST001", "2025-06-03", "60.00"),
		payment("CUST001", "2025-06-04", "40.00"),
		payment("CUST002", "2025-06-04", "1.00"),
	}

	got := CustomerLedger("CUST001", entries, payments)

	assert.True(t, got.TotalBilled.Equal(dec("150")), "billed %s", got.TotalBilled)
	assert.True(t, got.TotalPaid.Equal(dec("100")), "paid %s", got.TotalPaid)
	assert.True(t, got.Dues.Equal(dec("50")), "dues %s", got.Dues)
}

func TestCustomerLedger_Empty(t *testing.T) {
	got := CustomerLedger("CUST001", nil, nil)

	assert.True(t, got.TotalBilled.IsZero())
	assert.True(t, got.TotalPaid.IsZero())
	assert.True(t, got.Dues.IsZero())
}

func TestCustomerLedger_Overpaid(t *testing.T) {
	got := CustomerLedger("CUST001",
		[]MilkEntry{entry("CUST001", "2025-06-01", "1", "10", ShiftMorning)},
		[]Payment{payment("CUST001", "2025-06-01", "25")},
	)

	assert.True(t, got.Dues.Equal(dec("-15")), "dues %s", got.Dues)
}

func TestMergeByCustomer(t *testing.T) {
	entries := []MilkEntry{
		entry("CUST002", "2025-06-01", "2", "20", ShiftMorning),
		entry("CUST001", "2025-06-01", "10", "100", ShiftMorning),
		entry("CUST001", "2025-06-02", "5", "60", ShiftEvening),
	}

	got := MergeByCustomer(entries)
	require.Len(t, got, 2)

	assert.Equal(t, "CUST002", got[0].CustomerID, "first-seen order")
	assert.Equal(t, "CUST001", got[1].CustomerID)

	merged := got[1]
	assert.Len(t, merged.Entries, 2)
	assert.True(t, merged.TotalLiters.Equal(dec("15")))
	assert.True(t, merged.TotalAmount.Equal(dec("160")))
	assert.Equal(t, "10.67", merged.AverageRate.StringFixed(2))
}

func TestMergeByCustomer_ZeroLitersGivesZeroAverage(t *testing.T) {
	entries := []MilkEntry{{CustomerID: "CUST001", Liters: decimal.Zero, Total: decimal.Zero}}

	got := MergeByCustomer(entries)
	require.Len(t, got, 1)
	assert.True(t, got[0].AverageRate.IsZero())
}

func TestMergeByCustomer_Empty(t *testing.T) {
	assert.Empty(t, MergeByCustomer(nil))
}

func TestTrailingMonths(t *testing.T) {
	got := TrailingMonths(MustParseDate("2026-02-10"), ReportMonths)

	assert.Equal(t, []MonthKey{{2025, 12}, {2026, 1}, {2026, 2}}, got)
	assert.Nil(t, TrailingMonths(MustParseDate("2026-02-10"), 0))
}

func TestGroupByMonth(t *testing.T) {
	entries := []MilkEntry{
		entry("CUST001", "2025-12-31", "1", "10", ShiftMorning),
		entry("CUST001", "2026-01-01", "2", "20", ShiftMorning),
		entry("CUST001", "2026-01-15", "3", "30", ShiftEvening),
		entry("CUST001", "2025-10-01", "9", "90", ShiftEvening),
	}
	payments := []Payment{
		payment("CUST001", "2026-01-20", "45"),
	}
	keys := TrailingMonths(MustParseDate("2026-02-10"), ReportMonths)

	got := GroupByMonth(entries, payments, keys)
	require.Len(t, got, 3)

	dec2025 := got[0]
	assert.Equal(t, MonthKey{2025, 12}, dec2025.Key)
	assert.Len(t, dec2025.Entries, 1)
	assert.True(t, dec2025.Ledger.Dues.Equal(dec("10")))
	assert.False(t, dec2025.Current)

	jan := got[1]
	assert.Len(t, jan.Entries, 2)
	assert.Len(t, jan.Payments, 1)
	assert.True(t, jan.Ledger.TotalBilled.Equal(dec("50")))
	assert.True(t, jan.Ledger.Dues.Equal(dec("5")))

	feb := got[2]
	assert.True(t, feb.Current)
	assert.Empty(t, feb.Entries)
	assert.True(t, feb.Ledger.TotalBilled.IsZero())
}

func TestMonthKey_Name(t *testing.T) {
	assert.Equal(t, "January 2026", MonthKey{2026, 1}.Name())
	assert.Equal(t, "2026-01", MonthKey{2026, 1}.String())
	assert.Equal(t, MonthKey{2025, 11}, MonthKey{2026, 1}.AddMonths(-2))
}

func TestDailyShiftTotals(t *testing.T) {
	today := MustParseDate("2026-01-16")
	entries := []MilkEntry{
		entry("CUST001", "2026-01-16", "4", "40", ShiftMorning),
		entry("CUST002", "2026-01-16", "6", "60", ShiftMorning),
		entry("CUST001", "2026-01-16", "3", "30", ShiftEvening),
		entry("CUST001", "2026-01-10", "7", "70", ShiftEvening),
		entry("CUST001", "2026-01-09", "50", "500", ShiftMorning), // outside the window
	}

	chart := DailyShiftTotals(entries, today, ChartDays)
	require.Len(t, chart.Days, ChartDays)

	assert.Equal(t, "2026-01-10", chart.Days[0].Date.String())
	assert.Equal(t, today, chart.Days[6].Date)

	first := chart.Days[0]
	assert.True(t, first.Evening.Liters.Equal(dec("7")))
	assert.True(t, first.Morning.Liters.IsZero())

	last := chart.Days[6]
	assert.True(t, last.Morning.Liters.Equal(dec("10")))
	assert.True(t, last.Morning.Amount.Equal(dec("100")))
	assert.True(t, last.Evening.Liters.Equal(dec("3")))
	assert.True(t, last.Total.Liters.Equal(dec("13")))
	assert.True(t, last.Total.Amount.Equal(dec("130")))

	assert.True(t, chart.MaxLiters.Equal(dec("10")), "max %s", chart.MaxLiters)
	assert.True(t, chart.Percentage(dec("5")).Equal(dec("50")))
}

func TestDailyShiftTotals_EntryWithoutShiftSkipsShiftBars(t *testing.T) {
	today := MustParseDate("2026-01-16")
	entries := []MilkEntry{
		entry("CUST001", "2026-01-16", "4", "40", ShiftMorning),
		entry("CUST002", "2026-01-16", "20", "200", ""),
	}

	chart := DailyShiftTotals(entries, today, ChartDays)
	last := chart.Days[len(chart.Days)-1]

	assert.True(t, last.Morning.Liters.Equal(dec("4")))
	assert.True(t, last.Evening.Liters.IsZero())
	assert.True(t, last.Total.Liters.Equal(dec("24")), "the day total still counts it")
	assert.True(t, chart.MaxLiters.Equal(dec("4")), "max %s", chart.MaxLiters)
}

func TestDailyShiftTotals_AllZeroFloorsMaxAtOne(t *testing.T) {
	chart := DailyShiftTotals(nil, MustParseDate("2026-01-16"), ChartDays)

	require.Len(t, chart.Days, ChartDays)
	assert.True(t, chart.MaxLiters.Equal(decimal.NewFromInt(1)))
	for _, d := range chart.Days {
		assert.True(t, chart.Percentage(d.Morning.Liters).IsZero())
		assert.True(t, chart.Percentage(d.Evening.Liters).IsZero())
	}
}

func TestDailyShiftTotals_SmallValuesKeepFloor(t *testing.T) {
	entries := []MilkEntry{entry("CUST001", "2026-01-16", "0.5", "5", ShiftMorning)}

	chart := DailyShiftTotals(entries, MustParseDate("2026-01-16"), ChartDays)

	assert.True(t, chart.MaxLiters.Equal(decimal.NewFromInt(1)))
	assert.True(t, chart.Percentage(dec("0.5")).Equal(dec("50")))
}

func TestTotalLedger(t *testing.T) {
	got := TotalLedger(
		[]MilkEntry{
			entry("CUST001", "2025-06-01", "1", "10", ShiftMorning),
			entry("CUST002", "2025-06-01", "2", "30", ShiftEvening),
		},
		[]Payment{payment("CUST002", "2025-06-02", "15")},
	)

	assert.True(t, got.TotalBilled.Equal(dec("40")))
	assert.True(t, got.Dues.Equal(dec("25")))
}
