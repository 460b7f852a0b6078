package domain

import "errors"

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidLineItem    = errors.New("invalid line item")
	ErrCheckoutInProgress = errors.New("checkout in progress")
)
