package services

import "errors"

var (
	// ErrInvalidCredentials is returned when no user matches the login triple.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers malformed, expired and revoked session tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden is returned when the caller's role or ownership does not allow the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrEmptyCart is returned when checking out a cart with no items.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock is returned when a requested quantity exceeds the material's stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrNotDelivered is returned when a receipt is requested before delivery.
	ErrNotDelivered = errors.New("order is not delivered")
)
