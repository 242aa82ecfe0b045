package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tacotown/cart"
	"tacotown/catalog"
	"tacotown/models"
)

var testMenu = []byte(`
categories:
  - key: tacos
    name: Tacos
    items:
      - {id: taco1, name: Classic Taco, price: 79}
      - {id: fries1, name: Salted Fries, price: 59}
`)

type fakePlacer struct {
	got models.Order
	err error
}

func (f *fakePlacer) Create(ctx context.Context, order models.Order) (models.Order, error) {
	f.got = order
	if f.err != nil {
		return models.Order{}, f.err
	}
	stored := order
	stored.Status = models.StatusConfirmed
	return stored, nil
}

func newCheckout(t *testing.T, placer OrderPlacer) (*Checkout, *cart.Store, cart.Slot) {
	t.Helper()
	cat, err := catalog.Parse(testMenu)
	require.NoError(t, err)
	store := cart.NewStore(cat, &cart.MemorySlot{})
	detailsSlot := &cart.MemorySlot{}
	return &Checkout{Cart: store, Gateway: placer, DetailsSlot: detailsSlot}, store, detailsSlot
}

func TestBuildOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	details := Details{Name: "Asha", Phone: "9999999999", Email: "asha@example.com"}
	lines := []cart.Line{
		{ID: "taco1", Name: "Classic Taco", Price: 79, Quantity: 2},
		{ID: "fries1", Name: "Salted Fries", Price: 59, Quantity: 1},
	}

	order, err := BuildOrder(details, lines, now)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.OrderID, "ORD-"))
	assert.Equal(t, "Asha", order.CustomerName)
	assert.Equal(t, 217.0, order.TotalAmount)
	require.Len(t, order.Items, 2)
	assert.Equal(t, models.OrderItem{Name: "Classic Taco", Quantity: 2, Price: 79}, order.Items[0])
	assert.Empty(t, order.Status) // gateway defaults it
}

func TestBuildOrderRejectsEmptyCart(t *testing.T) {
	_, err := BuildOrder(Details{Name: "A", Phone: "1"}, nil, time.Now())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestBuildOrderRejectsMissingContact(t *testing.T) {
	lines := []cart.Line{{ID: "taco1", Name: "Classic Taco", Price: 79, Quantity: 1}}
	_, err := BuildOrder(Details{Name: "  "}, lines, time.Now())
	assert.ErrorIs(t, err, ErrMissingDetails)
}

func TestSubmitClearsCartOnSuccess(t *testing.T) {
	placer := &fakePlacer{}
	co, store, detailsSlot := newCheckout(t, placer)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "taco1"))
	require.NoError(t, store.Add(ctx, "taco1"))
	require.NoError(t, SaveDetails(ctx, detailsSlot, Details{Name: "Asha", Phone: "9999999999"}))

	stored, err := co.Submit(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, stored.Status)
	assert.Equal(t, 158.0, placer.got.TotalAmount)
	assert.Zero(t, store.Count(), "cart should be cleared after a confirmed save")
}

func TestSubmitKeepsCartOnFailure(t *testing.T) {
	placer := &fakePlacer{err: errors.New("gateway failure: down")}
	co, store, detailsSlot := newCheckout(t, placer)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "taco1"))
	require.NoError(t, SaveDetails(ctx, detailsSlot, Details{Name: "Asha", Phone: "9999999999"}))

	_, err := co.Submit(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, store.Count(), "cart must survive a failed submission")
}

func TestSubmitRequiresDetails(t *testing.T) {
	co, store, _ := newCheckout(t, &fakePlacer{})
	ctx := context.Background()
	require.NoError(t, store.Add(ctx, "taco1"))

	_, err := co.Submit(ctx)
	assert.ErrorIs(t, err, ErrMissingDetails)
}

func TestDetailsRoundtrip(t *testing.T) {
	ctx := context.Background()
	slot := &cart.MemorySlot{}

	d := Details{Name: "Asha", Phone: "9999999999", Address: "12 MG Road", Pincode: "560001"}
	require.NoError(t, SaveDetails(ctx, slot, d))

	got, ok := LoadDetails(ctx, slot)
	require.True(t, ok)
	assert.Equal(t, d, got)
}

func TestLoadDetailsFromCorruptSlot(t *testing.T) {
	ctx := context.Background()
	slot := &cart.MemorySlot{}
	require.NoError(t, slot.Write(ctx, []byte("not json")))

	_, ok := LoadDetails(ctx, slot)
	assert.False(t, ok)
}
