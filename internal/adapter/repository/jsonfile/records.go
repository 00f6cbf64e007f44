package jsonfile

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/iho/dairyledger/internal/domain"
)

// number is a decimal written as a bare JSON number, matching files produced
// by earlier versions of the application. Quoted numbers are accepted on read.
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func (n *number) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := json.Unmarshal(b, &d); err != nil {
		return err
	}
	*n = number(d)
	return nil
}

func (n number) dec() decimal.Decimal { return decimal.Decimal(n) }

type userRecord struct {
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Address  string `json:"address,omitempty"`
	Mobile   string `json:"mobile,omitempty"`
}

func userFromDomain(c *domain.Customer) userRecord {
	return userRecord{
		UserID:   c.ID,
		Name:     c.Name,
		Password: c.PasswordHash,
		Role:     string(c.Role),
		Address:  c.Address,
		Mobile:   c.Mobile,
	}
}

func (r userRecord) toDomain() domain.Customer {
	return domain.Customer{
		ID:           r.UserID,
		Name:         r.Name,
		PasswordHash: r.Password,
		Role:         domain.Role(r.Role),
		Address:      r.Address,
		Mobile:       r.Mobile,
	}
}

type entryRecord struct {
	EntryID    string      `json:"entryId"`
	UserID     string      `json:"userId"`
	Date       domain.Date `json:"date"`
	NepaliDate string      `json:"nepaliDate,omitempty"`
	Liters     number      `json:"liters"`
	Rate       number      `json:"rate"`
	Total      number      `json:"total"`
	Time       string      `json:"time,omitempty"`
}

func entryFromDomain(e *domain.MilkEntry) entryRecord {
	return entryRecord{
		EntryID:    e.ID,
		UserID:     e.CustomerID,
		Date:       e.Date,
		NepaliDate: e.DisplayDate.String(),
		Liters:     number(e.Liters),
		Rate:       number(e.Rate),
		Total:      number(e.Total),
		Time:       string(e.Shift),
	}
}

// toDomain rebuilds the entry. A missing or malformed BS date is recomputed.
// Entries recorded before shifts existed have no time and keep an empty shift,
// so the collection chart leaves them out of both shift bars.
func (r entryRecord) toDomain(conv domain.DateConverter) domain.MilkEntry {
	display, err := domain.ParseBSDate(r.NepaliDate)
	if err != nil {
		display = conv.ToBS(r.Date)
	}

	var shift domain.Shift
	if r.Time != "" {
		if parsed, err := domain.ParseShift(r.Time); err == nil {
			shift = parsed
		}
	}

	return domain.MilkEntry{
		ID:          r.EntryID,
		CustomerID:  r.UserID,
		Date:        r.Date,
		DisplayDate: display,
		Liters:      r.Liters.dec(),
		Rate:        r.Rate.dec(),
		Total:       r.Total.dec(),
		Shift:       shift,
	}
}

type paymentRecord struct {
	PaymentID   string      `json:"paymentId"`
	UserID      string      `json:"userId"`
	Amount      number      `json:"amount"`
	Date        domain.Date `json:"date"`
	Description string      `json:"description,omitempty"`
}

func paymentFromDomain(p *domain.Payment) paymentRecord {
	return paymentRecord{
		PaymentID:   p.ID,
		UserID:      p.CustomerID,
		Amount:      number(p.Amount),
		Date:        p.Date,
		Description: p.Description,
	}
}

func (r paymentRecord) toDomain() domain.Payment {
	return domain.Payment{
		ID:          r.PaymentID,
		CustomerID:  r.UserID,
		Amount:      r.Amount.dec(),
		Date:        r.Date,
		Description: r.Description,
	}
}

type rateRecord struct {
	UserID        string      `json:"userId"`
	Rate          number      `json:"rate"`
	EffectiveDate domain.Date `json:"effectiveDate"`
}

func rateFromDomain(r *domain.RateRecord) rateRecord {
	return rateRecord{
		UserID:        r.CustomerID,
		Rate:          number(r.Rate),
		EffectiveDate: r.EffectiveDate,
	}
}

func (r rateRecord) toDomain() domain.RateRecord {
	return domain.RateRecord{
		CustomerID:    r.UserID,
		Rate:          r.Rate.dec(),
		EffectiveDate: r.EffectiveDate,
	}
}
