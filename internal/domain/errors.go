package domain

import "errors"

var (
	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerExists   = errors.New("customer already exists")

	// Milk entry errors
	ErrEntryNotFound = errors.New("milk entry not found")
	ErrInvalidLiters = errors.New("liters must be a positive number")
	ErrInvalidRate   = errors.New("rate must be a positive number")
	ErrRateNotFound  = errors.New("rate is required: provide a rate or set a customer rate")
	ErrInvalidShift  = errors.New("shift must be morning or evening")
	ErrEmptyBatch    = errors.New("batch contains no entries")

	// Payment errors
	ErrInvalidAmount = errors.New("amount must be a positive number")

	// Shared
	ErrInvalidDate = errors.New("invalid date")
)
