package cart

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/joao160197/InsanyShop/internal/catalog"
)

// ShippingFlat is the flat shipping fee charged on any non-empty cart.
const ShippingFlat = 20.0

// Store is the sole owner of one session's cart. Mutations update the
// in-memory items first and then write the whole sequence to the slot; a
// failed write leaves the in-memory cart authoritative and is only logged,
// so the shop keeps working when storage does not.
type Store struct {
	mu    sync.Mutex
	items []Item
	slot  Slot
	log   logrus.FieldLogger
}

// NewStore restores the cart persisted in slot. A missing, unreadable or
// malformed snapshot yields a working empty cart and a warning, never an
// error: losing persistence degrades to a session-only cart.
func NewStore(ctx context.Context, slot Slot, log logrus.FieldLogger) *Store {
	s := &Store{slot: slot, log: log}
	items, err := slot.Load(ctx)
	if err != nil {
		log.WithError(err).Warn("could not restore cart, starting empty")
		return s
	}
	s.items = items
	return s
}

// AddItem puts quantity units of product in the cart. If the product is
// already present its quantity is incremented and the stored snapshot is
// kept as-is; otherwise the product is appended. Quantity is taken as given.
func (s *Store) AddItem(ctx context.Context, product catalog.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{Product: product, Quantity: quantity})
	}
	s.save(ctx)
}

// RemoveItem drops the line with the given product id. Absence is a no-op.
func (s *Store) RemoveItem(ctx context.Context, id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.save(ctx)
			return
		}
	}
}

// SetQuantity sets the line's quantity; zero or below removes the line. A
// cart never holds a zero-quantity item. Absence of the id is a no-op.
func (s *Store) SetQuantity(ctx context.Context, id, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		s.save(ctx)
		return
	}
}

// Clear empties the cart and persists the empty sequence.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.save(ctx)
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Subtotal is the sum of price times quantity over all lines, recomputed on
// every call so it cannot drift from the items.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// Shipping is the flat fee for a non-empty cart and zero for an empty one.
func (s *Store) Shipping() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shippingLocked()
}

func (s *Store) Total() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked() + s.shippingLocked()
}

// Count is the total unit count, not the number of distinct products.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, it := range s.items {
		n += it.Quantity
	}
	return n
}

func (s *Store) subtotalLocked() float64 {
	var sum float64
	for _, it := range s.items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

func (s *Store) shippingLocked() float64 {
	if len(s.items) == 0 {
		return 0
	}
	return ShippingFlat
}

// save writes the current items to the slot. Callers hold s.mu.
func (s *Store) save(ctx context.Context) {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	if err := s.slot.Save(ctx, items); err != nil {
		s.log.WithError(err).Warn("could not persist cart, in-memory state kept")
	}
}
