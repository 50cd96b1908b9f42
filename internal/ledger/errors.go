package ledger

import "errors"

var (
	ErrInvalidAmount     = errors.New("amount must be positive with at most two decimal places")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrHistoryFull       = errors.New("transaction history is full")
	ErrSameAccount       = errors.New("sender and receiver are the same customer")

	ErrInvalidCustomer  = errors.New("name and password must not be empty")
	ErrCustomerExists   = errors.New("customer already exists")
	ErrCustomerLimit    = errors.New("customer limit reached")
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrUnauthorized does not tell a missing customer apart from a wrong password.
	ErrUnauthorized = errors.New("customer not found or incorrect password")
)
