package payroll

import "errors"

var (
	ErrNotFound      = errors.New("payroll detail not found")
	ErrInvalidPeriod = errors.New("invalid payroll month or year")
	ErrInvalidAmount = errors.New("payroll amounts must not be negative")
)
