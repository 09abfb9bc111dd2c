package services

import "errors"

// Typed errors surfaced by the service layer. Controllers map these to HTTP
// status codes with errors.Is.
var (
	ErrValidation           = errors.New("missing or malformed input")
	ErrPastDate             = errors.New("cannot book a past date or time")
	ErrBookingConflict      = errors.New("table is already reserved within 30 minutes of the requested time")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrNotFound             = errors.New("record not found")
	ErrInvalidTransition    = errors.New("order status transition not allowed")
	ErrOrderNumberExhausted = errors.New("could not generate a unique order number")
)
