package models

import "fmt"

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

type OrderType string

const (
	OrderTypeDineIn  OrderType = "dine_in"
	OrderTypeTakeout OrderType = "takeout"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// transitions is the full lifecycle table. Cancellation is allowed from
// pending and preparing; once an order is ready the only exit is completed.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transitions are permitted.
func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active reports whether the order still needs staff attention.
func (s OrderStatus) Active() bool {
	return s == StatusPending || s == StatusPreparing || s == StatusReady
}

// CanTransitionTo reports whether next is a permitted transition from s.
// A same-status "transition" is not permitted here; callers treat it as a
// no-op instead of an error.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Transition validates and returns the next status. Terminal sources and
// unknown targets are rejected with an error; the caller keeps the old status.
func (s OrderStatus) Transition(next OrderStatus) (OrderStatus, error) {
	if !next.Valid() {
		return s, fmt.Errorf("unknown order status %q", next)
	}
	if s.Terminal() {
		return s, fmt.Errorf("order is already %s", s)
	}
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("cannot move order from %s to %s", s, next)
	}
	return next, nil
}

func (t OrderType) Valid() bool {
	return t == OrderTypeDineIn || t == OrderTypeTakeout
}
