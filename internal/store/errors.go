package store

import "errors"

var (
	// ErrDuplicate is shown to the user as is.
	ErrDuplicate     = errors.New("This job is already tracked.")
	ErrNotFound      = errors.New("not found")
	ErrMissingFields = errors.New("company and role title are required")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
	ErrUnknownStatus = errors.New("status is not a board column")

	ErrInvalidColumn = errors.New("column name is empty")
	ErrColumnExists  = errors.New("column already exists")
	ErrInvalidColor  = errors.New("color must be a 3 or 6 digit hex value")
	ErrInvalidTheme  = errors.New("theme must be dark or light")
)
