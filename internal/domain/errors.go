package domain

import "errors"

var (
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource conflict")
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidDateRange = errors.New("start date is after end date")
)
