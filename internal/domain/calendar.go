package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dateLayout is the wire format for both calendars.
const dateLayout = "2006-01-02"

// Date is a Gregorian (AD) calendar date without a time component.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate returns the AD date for the given time, in the time's own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// ParseDate parses a YYYY-MM-DD string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

// MustParseDate is like ParseDate but panics on error. Intended for tests and constants.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns the date pinned to midday UTC, so whole-day arithmetic never
// lands on a partial day.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, time.UTC)
}

// AddDays returns the date n days later (or earlier for negative n).
func (d Date) AddDays(n int) Date {
	return NewDate(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool { return d == Date{} }

// MonthKey returns the (year, month) bucket the date falls in.
func (d Date) MonthKey() MonthKey {
	return MonthKey{Year: d.Year, Month: d.Month}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// BSDate is a Bikram Sambat calendar date. It is only ever derived for display.
type BSDate struct {
	Year  int
	Month int
	Day   int
}

// ParseBSDate parses a YYYY-MM-DD string in the BS calendar. Month must be 1..12
// and day 1..32; the longest BS month has 32 days.
func ParseBSDate(s string) (BSDate, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return BSDate{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
	}

	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return BSDate{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", ErrInvalidDate, s)
		}
		nums[i] = n
	}

	b := BSDate{Year: nums[0], Month: nums[1], Day: nums[2]}
	if b.Month < 1 || b.Month > 12 || b.Day < 1 || b.Day > maxBSMonthLength {
		return BSDate{}, fmt.Errorf("%w: %q is out of range", ErrInvalidDate, s)
	}
	return b, nil
}

func (b BSDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", b.Year, b.Month, b.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (b BSDate) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BSDate) UnmarshalText(text []byte) error {
	parsed, err := ParseBSDate(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

const (
	maxBSMonthLength = 32
	// approxBSYearDays is used for spans that cross a BS year boundary.
	approxBSYearDays = 365
)

// MonthLengths2082 holds the BS month lengths of 2082, Baishakh first.
var MonthLengths2082 = [12]int{30, 32, 31, 32, 31, 30, 30, 29, 30, 29, 30, 30}

// DateConverter maps AD dates to BS dates and back using a single anchor pair and
// one year's month-length table. Other BS years are assumed to have the same
// month lengths, so results drift the further a date is from the anchor.
type DateConverter struct {
	AnchorAD     Date
	AnchorBS     BSDate
	MonthLengths [12]int
}

// DefaultDateConverter is anchored at 2026-01-16 AD = Magh 2, 2082 BS.
var DefaultDateConverter = DateConverter{
	AnchorAD:     Date{Year: 2026, Month: 1, Day: 16},
	AnchorBS:     BSDate{Year: 2082, Month: 10, Day: 2},
	MonthLengths: MonthLengths2082,
}

// ToBS converts an AD date to its BS display date. It never fails; the result
// is clamped to a plausible range.
func (c DateConverter) ToBS(ad Date) BSDate {
	daysDiff := c.AnchorAD.DaysUntil(ad)

	year := c.AnchorBS.Year
	month := clamp(c.AnchorBS.Month, 1, 12)
	day := c.AnchorBS.Day + daysDiff

	for day > c.monthLength(month) {
		day -= c.monthLength(month)
		month++
		if month > 12 {
			month = 1
			year++
		}
	}

	for day < 1 {
		month--
		if month < 1 {
			month = 12
			year--
		}
		day += c.monthLength(month)
	}

	return BSDate{
		Year:  year,
		Month: clamp(month, 1, 12),
		Day:   clamp(day, 1, maxBSMonthLength),
	}
}

// ToAD converts a BS date back to AD. Within the anchor's BS year this is the
// exact inverse of ToBS; across years each BS year counts as 365 days.
func (c DateConverter) ToAD(bs BSDate) Date {
	offset := (bs.Year-c.AnchorBS.Year)*approxBSYearDays +
		c.dayOfYear(bs.Month, bs.Day) - c.dayOfYear(c.AnchorBS.Month, c.AnchorBS.Day)

	return c.AnchorAD.AddDays(offset)
}

func (c DateConverter) monthLength(month int) int {
	return c.MonthLengths[clamp(month, 1, 12)-1]
}

// dayOfYear is the 1-based position of (month, day) in the table year.
func (c DateConverter) dayOfYear(month, day int) int {
	month = clamp(month, 1, 12)
	n := day
	for m := 1; m < month; m++ {
		n += c.monthLength(m)
	}
	return n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
