package models

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled,
}

// ErrInvalidTransition is returned when a status change is not in the lifecycle table.
var ErrInvalidTransition = errors.New("invalid order status transition")

var validNext = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusPreparing},
	StatusPreparing: {StatusReady},
	StatusReady:     {StatusDelivered},
	StatusDelivered: {},
	StatusCancelled: {},
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := validNext[s]
	return ok
}

// IsTerminal reports whether no transition leaves s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether an order in s is still in progress.
func (s OrderStatus) IsActive() bool {
	return s.Valid() && !s.IsTerminal()
}

// AllowedTransitions returns the statuses reachable from s in one step.
func (s OrderStatus) AllowedTransitions() []OrderStatus {
	next := validNext[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from -> to is in the lifecycle table.
func CanTransition(from, to OrderStatus) bool {
	for _, s := range validNext[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Order is a purchase of one material by a service provider from its vendor.
type Order struct {
	ID                  string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	MaterialID          string      `json:"materialId" gorm:"index;type:varchar(36)"`
	MaterialName        string      `json:"materialName" gorm:"type:varchar(100)"`
	VendorID            string      `json:"vendorId" gorm:"index;type:varchar(36)"`
	VendorName          string      `json:"vendorName" gorm:"type:varchar(100)"`
	ServiceProviderID   string      `json:"serviceProviderId" gorm:"index;type:varchar(36)"`
	ServiceProviderName string      `json:"serviceProviderName" gorm:"type:varchar(100)"`
	Quantity            int         `json:"quantity"`
	TotalPrice          float64     `json:"totalPrice"` // quantity x unit price at order time
	Status              OrderStatus `json:"status" gorm:"index;type:varchar(16)"`
	OrderDate           time.Time   `json:"orderDate"`
	DeliveryDate        *time.Time  `json:"deliveryDate,omitempty"`
	Notes               string      `json:"notes,omitempty" gorm:"type:varchar(500)"`
	UpdatedAt           time.Time   `json:"-"`
}

// Transition moves the order to the given status. Reaching delivered stamps
// the delivery date; nothing else touches it, and the total is never recomputed.
func (o *Order) Transition(to OrderStatus, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}
	o.Status = to
	if to == StatusDelivered {
		delivered := now
		o.DeliveryDate = &delivered
	}
	return nil
}

// InvolvesUser reports whether the user is the vendor or the buyer of the order.
func (o *Order) InvolvesUser(userID string) bool {
	return o.VendorID == userID || o.ServiceProviderID == userID
}
