package models

import "strings"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusConfirmed OrderStatus = "confirmed" // initial state for every new order
	StatusAccepted  OrderStatus = "accepted"
	StatusRejected  OrderStatus = "rejected"
	StatusDelivered OrderStatus = "delivered"
)

// transitions holds the allowed moves. Nothing transitions into confirmed;
// rejected and delivered have no outgoing moves.
var transitions = map[OrderStatus][]OrderStatus{
	StatusConfirmed: {StatusAccepted, StatusRejected},
	StatusAccepted:  {StatusDelivered},
}

// ParseStatus normalizes a raw status string. The second return is false for
// anything outside the four known states.
func ParseStatus(raw string) (OrderStatus, bool) {
	s := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusConfirmed, StatusAccepted, StatusRejected, StatusDelivered:
		return s, true
	}
	return "", false
}

// Valid reports whether s is one of the known states.
func (s OrderStatus) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// Terminal reports whether s admits no further transitions. Orders may only
// be deleted from a terminal state.
func (s OrderStatus) Terminal() bool {
	return s == StatusRejected || s == StatusDelivered
}

// CanTransitionTo reports whether the move s -> next is allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
