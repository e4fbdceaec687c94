package model

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrCompanyNotFound    = errors.New("company not found")
	ErrCompanyLocked      = errors.New("company account is locked")
	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available for sale")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrConcurrentUpdate   = errors.New("order was modified concurrently")
)
