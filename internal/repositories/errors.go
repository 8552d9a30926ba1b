package repositories

import "errors"

var (
	// ErrNotFound is wrapped by every lookup that matches no record.
	ErrNotFound = errors.New("not found")
	// ErrStatusConflict is returned when an order's status changed between read and write.
	ErrStatusConflict = errors.New("order status was changed by another request")
)
