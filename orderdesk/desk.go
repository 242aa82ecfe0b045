// Package orderdesk is the operator's view of the order table: a local copy
// of the orders plus the lifecycle actions (accept, reject, deliver,
// delete). Every mutating action follows the same sequence: tentative local
// apply, gateway call, then one authoritative re-fetch. Conflicts are never
// merged; the fresh read simply replaces the local view.
package orderdesk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tacotown/models"
)

var (
	// ErrUnknownOrder means the id is not in the local view.
	ErrUnknownOrder = errors.New("unknown order")
	// ErrIllegalTransition means the lifecycle model forbids the move.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrNotTerminal means deletion was attempted on a live order.
	ErrNotTerminal = errors.New("order is not in a terminal state")
)

// Gateway is the slice of the order API the desk needs.
type Gateway interface {
	List(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	Delete(ctx context.Context, orderID string) error
}

type Desk struct {
	gw Gateway

	mu     sync.Mutex
	orders []models.Order
}

func New(gw Gateway) *Desk {
	return &Desk{gw: gw}
}

// Refresh replaces the local view with the gateway's. On failure the
// previous view is kept; the desk does not fabricate state.
func (d *Desk) Refresh(ctx context.Context) error {
	orders, err := d.gw.List(ctx)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.orders = orders
	d.mu.Unlock()
	return nil
}

// Orders returns a snapshot of the local view.
func (d *Desk) Orders() []models.Order {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]models.Order, len(d.orders))
	copy(out, d.orders)
	return out
}

// Filter returns the local orders in the given status.
func (d *Desk) Filter(status models.OrderStatus) []models.Order {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []models.Order
	for _, o := range d.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// Accept moves a confirmed order to accepted.
func (d *Desk) Accept(ctx context.Context, orderID string) error {
	return d.setStatus(ctx, orderID, models.StatusAccepted)
}

// Reject moves a confirmed order to rejected.
func (d *Desk) Reject(ctx context.Context, orderID string) error {
	return d.setStatus(ctx, orderID, models.StatusRejected)
}

// Deliver moves an accepted order to delivered.
func (d *Desk) Deliver(ctx context.Context, orderID string) error {
	return d.setStatus(ctx, orderID, models.StatusDelivered)
}

func (d *Desk) setStatus(ctx context.Context, orderID string, next models.OrderStatus) error {
	d.mu.Lock()
	idx := d.find(orderID)
	if idx < 0 {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	if !d.orders[idx].Status.CanTransitionTo(next) {
		cur := d.orders[idx].Status
		d.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, cur, next)
	}
	d.mu.Unlock()

	return d.mutate(ctx,
		func(orders []models.Order) []models.Order {
			for i := range orders {
				if orders[i].OrderID == orderID {
					orders[i].Status = next
				}
			}
			return orders
		},
		func(ctx context.Context) error {
			return d.gw.UpdateStatus(ctx, orderID, next)
		})
}

// Delete removes a terminal order.
func (d *Desk) Delete(ctx context.Context, orderID string) error {
	d.mu.Lock()
	idx := d.find(orderID)
	if idx < 0 {
		d.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownOrder, orderID)
	}
	if !d.orders[idx].Status.Terminal() {
		st := d.orders[idx].Status
		d.mu.Unlock()
		return fmt.Errorf("%w: status is %s", ErrNotTerminal, st)
	}
	d.mu.Unlock()

	return d.mutate(ctx,
		func(orders []models.Order) []models.Order {
			out := orders[:0]
			for _, o := range orders {
				if o.OrderID != orderID {
					out = append(out, o)
				}
			}
			return out
		},
		func(ctx context.Context) error {
			return d.gw.Delete(ctx, orderID)
		})
}

// mutate is the tentative-apply, confirm-or-revert helper shared by every
// mutating action: apply the optimistic local change, make the gateway call,
// then re-fetch once so the local view matches the authoritative record
// whether the call succeeded or not.
func (d *Desk) mutate(ctx context.Context, apply func([]models.Order) []models.Order, call func(context.Context) error) error {
	d.mu.Lock()
	d.orders = apply(d.orders)
	d.mu.Unlock()

	callErr := call(ctx)
	refreshErr := d.Refresh(ctx)

	if callErr != nil {
		return callErr
	}
	return refreshErr
}

// find returns the index of orderID in the local view, or -1. Caller holds
// the lock.
func (d *Desk) find(orderID string) int {
	for i, o := range d.orders {
		if o.OrderID == orderID {
			return i
		}
	}
	return -1
}
