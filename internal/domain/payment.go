package domain

import "github.com/shopspring/decimal"

// Payment is money received from a customer. Payments are never edited.
type Payment struct {
	ID          string
	CustomerID  string
	Amount      decimal.Decimal
	Date        Date
	Description string
}
