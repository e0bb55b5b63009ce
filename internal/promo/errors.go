package promo

import "errors"

var (
	// ErrPromoNotFound is returned when a code does not resolve. Distinct
	// from a valid code whose computed benefit happens to be zero.
	ErrPromoNotFound = errors.New("promo code not found")

	// ErrEmptyCode is returned when the submitted code is blank.
	ErrEmptyCode = errors.New("promo code is empty")
)
