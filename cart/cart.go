// Package cart implements the storefront cart: a list of lines keyed by menu
// item id, persisted to a durable slot after every mutation. State mutation
// is kept separate from rendering; displays subscribe to change
// notifications instead of being written to directly.
package cart

import (
	"context"
	"encoding/json"

	"tacotown/catalog"
)

// Line is one catalog item plus a quantity held ahead of checkout.
// Quantity is always >= 1 while the line exists.
type Line struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Store owns the cart lines for one storefront session. At most one line
// exists per item id. Not safe for concurrent use; the storefront is a
// single event loop.
type Store struct {
	catalog   *catalog.Catalog
	slot      Slot
	lines     []Line
	listeners []func([]Line)
}

func NewStore(cat *catalog.Catalog, slot Slot) *Store {
	return &Store{catalog: cat, slot: slot}
}

// Subscribe registers a listener invoked with a snapshot of the lines after
// every mutation and after Restore. Badge displays hang off this.
func (s *Store) Subscribe(fn func(lines []Line)) {
	s.listeners = append(s.listeners, fn)
}

// Restore loads the persisted lines. A missing or malformed slot yields an
// empty cart; Restore never fails the session over bad saved state.
func (s *Store) Restore(ctx context.Context) {
	s.lines = nil

	data, err := s.slot.Read(ctx)
	if err == nil && len(data) > 0 {
		var lines []Line
		if json.Unmarshal(data, &lines) == nil {
			for _, l := range lines {
				if l.ID != "" && l.Quantity >= 1 {
					s.lines = append(s.lines, l)
				}
			}
		}
	}

	s.notify()
}

// Add puts one unit of the item in the cart, merging into an existing line
// when the id is already present. Unknown ids are ignored.
func (s *Store) Add(ctx context.Context, itemID string) error {
	item, ok := s.catalog.Lookup(itemID)
	if !ok {
		return nil
	}

	merged := false
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			s.lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, Line{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Quantity: 1,
			Image:    item.Image,
		})
	}

	return s.sync(ctx)
}

// ChangeQuantity adds delta to the matching line's quantity. A resulting
// quantity <= 0 removes the line. Absent ids are ignored.
func (s *Store) ChangeQuantity(ctx context.Context, itemID string, delta int) error {
	for i := range s.lines {
		if s.lines[i].ID != itemID {
			continue
		}
		s.lines[i].Quantity += delta
		if s.lines[i].Quantity <= 0 {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
		}
		return s.sync(ctx)
	}
	return nil
}

// Remove drops the matching line unconditionally.
func (s *Store) Remove(ctx context.Context, itemID string) error {
	for i := range s.lines {
		if s.lines[i].ID == itemID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.sync(ctx)
		}
	}
	return nil
}

// Clear empties the cart, typically after a successful checkout.
func (s *Store) Clear(ctx context.Context) error {
	s.lines = nil
	if err := s.slot.Clear(ctx); err != nil {
		s.notify()
		return err
	}
	s.notify()
	return nil
}

// Total is the sum of price x quantity over all lines.
func (s *Store) Total() float64 {
	var total float64
	for _, l := range s.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Count is the sum of quantities over all lines, shown on the badge.
func (s *Store) Count() int {
	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Lines returns a snapshot of the cart lines.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// sync persists the lines, then notifies listeners, so memory, slot and
// badge agree by the time the mutating call returns.
func (s *Store) sync(ctx context.Context) error {
	data, err := json.Marshal(s.lines)
	if err == nil {
		err = s.slot.Write(ctx, data)
	}
	s.notify()
	return err
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.Lines()
	for _, fn := range s.listeners {
		fn(snapshot)
	}
}
