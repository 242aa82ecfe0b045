// Package checkout assembles an order from the cart and submits it through
// the gateway. Delivery details are captured ahead of payment into their own
// transient slot, mirroring how the storefront collects them on the
// delivery form before the payment page.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tacotown/cart"
	"tacotown/models"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrMissingDetails = errors.New("delivery details are incomplete")
)

// Details is the delivery contact captured before checkout. Address fields
// stay client-side; only the contact trio travels on the order.
type Details struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Landmark string `json:"landmark"`
	Pincode  string `json:"pincode"`
}

// SaveDetails writes the delivery details to their slot.
func SaveDetails(ctx context.Context, slot cart.Slot, d Details) error {
	data, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return slot.Write(ctx, data)
}

// LoadDetails reads the delivery details. ok is false when the slot is
// empty or unreadable.
func LoadDetails(ctx context.Context, slot cart.Slot) (Details, bool) {
	data, err := slot.Read(ctx)
	if err != nil || len(data) == 0 {
		return Details{}, false
	}
	var d Details
	if json.Unmarshal(data, &d) != nil {
		return Details{}, false
	}
	return d, true
}

// NewOrderID generates a client-side order id.
func NewOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// BuildOrder turns cart lines plus delivery details into an order ready for
// submission. Status is left empty; the gateway defaults it to confirmed.
func BuildOrder(details Details, lines []cart.Line, now time.Time) (models.Order, error) {
	if len(lines) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	if strings.TrimSpace(details.Name) == "" || strings.TrimSpace(details.Phone) == "" {
		return models.Order{}, ErrMissingDetails
	}

	items := make([]models.OrderItem, 0, len(lines))
	var total float64
	for _, l := range lines {
		items = append(items, models.OrderItem{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.Price,
		})
		total += l.Price * float64(l.Quantity)
	}

	return models.Order{
		OrderID:       NewOrderID(),
		CustomerName:  details.Name,
		CustomerEmail: details.Email,
		CustomerPhone: details.Phone,
		Items:         items,
		TotalAmount:   total,
		CreatedAt:     now.UTC(),
	}, nil
}

// OrderPlacer is the slice of the gateway checkout needs.
type OrderPlacer interface {
	Create(ctx context.Context, order models.Order) (models.Order, error)
}

// Checkout drives one submission: cart lines in, order out, cart cleared
// only once the gateway has confirmed the save.
type Checkout struct {
	Cart        *cart.Store
	Gateway     OrderPlacer
	DetailsSlot cart.Slot
}

// Submit builds the order from the current cart and delivery slot and sends
// it. On success the cart is cleared; on failure it is left intact so the
// customer can retry.
func (c *Checkout) Submit(ctx context.Context) (models.Order, error) {
	details, ok := LoadDetails(ctx, c.DetailsSlot)
	if !ok {
		return models.Order{}, ErrMissingDetails
	}

	order, err := BuildOrder(details, c.Cart.Lines(), time.Now())
	if err != nil {
		return models.Order{}, err
	}

	stored, err := c.Gateway.Create(ctx, order)
	if err != nil {
		return models.Order{}, fmt.Errorf("submit order: %w", err)
	}

	if err := c.Cart.Clear(ctx); err != nil {
		return stored, err
	}
	return stored, nil
}
