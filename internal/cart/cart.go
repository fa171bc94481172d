// Package cart owns the shopping cart: an ordered set of line items with
// quantities and price/weight snapshots frozen at the time of add. Every
// mutation is snapshotted synchronously to the storage port; storage
// failures are swallowed and the cart keeps working in memory.
package cart

import (
	"encoding/json"
	"sync"

	"konaseema-kart/internal/model"
	"konaseema-kart/internal/pricing"
	"konaseema-kart/internal/storage"

	"github.com/rs/zerolog"
)

// StorageKeyPrefix is the fixed key prefix for persisted cart snapshots.
const StorageKeyPrefix = "konaseema_cart_v1"

// Store holds one cart. It is safe for concurrent use; a read immediately
// after a mutation always observes the mutation.
type Store struct {
	mu     sync.Mutex
	lines  []model.CartLine
	open   bool
	port   storage.Port
	key    string
	logger zerolog.Logger
}

// NewStore creates a cart bound to a storage key and loads any persisted
// snapshot. Corrupt or missing snapshots load as an empty cart.
func NewStore(port storage.Port, key string, logger zerolog.Logger) *Store {
	s := &Store{
		port:   port,
		key:    key,
		logger: logger.With().Str("component", "cart").Str("cart_key", key).Logger(),
	}
	s.restore()
	return s
}

// Add merges the item into the cart: an existing line with the same id has
// its quantity incremented, otherwise a new line is appended with the pack,
// unit price and weight frozen at current resolution. Adding opens the cart.
func (s *Store) Add(item *model.CatalogItem, pack model.PackSize, qty int) error {
	if item == nil || item.ID == "" {
		return model.ErrLineNotFound
	}
	if qty <= 0 {
		return model.ErrInvalidQty
	}

	// A combo is a single unit with no pack size; its line weight is the
	// bundle's. A product ships at the selected pack, not the catalogue
	// display label.
	var weight string
	if item.Kind == model.KindCombo {
		pack = ""
		weight = item.Weight
	} else {
		if pack == "" {
			pack = pricing.DefaultPack(item)
		}
		weight = string(pack)
	}
	unitPrice := pricing.ResolveUnitPrice(item, pack)

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.lines {
		if s.lines[i].ItemID == item.ID {
			s.lines[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, model.CartLine{
			ItemID:    item.ID,
			Kind:      item.Kind,
			Name:      item.Name,
			Image:     item.Image,
			Pack:      pack,
			UnitPrice: unitPrice,
			Weight:    weight,
			Qty:       qty,
		})
	}
	s.open = true
	s.persist()

	s.logger.Debug().
		Str("item_id", item.ID).
		Int("qty", qty).
		Bool("merged", merged).
		Msg("item added to cart")

	return nil
}

// Increment raises the line's quantity by one.
func (s *Store) Increment(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == id {
			s.lines[i].Qty++
			s.persist()
			return nil
		}
	}
	return model.ErrLineNotFound
}

// Decrement lowers the line's quantity by one; at zero the line is removed
// entirely. No zero-quantity line ever persists.
func (s *Store) Decrement(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == id {
			s.lines[i].Qty--
			if s.lines[i].Qty <= 0 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			}
			s.persist()
			return nil
		}
	}
	return model.ErrLineNotFound
}

// Remove deletes the line unconditionally.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ItemID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.persist()
			return nil
		}
	}
	return model.ErrLineNotFound
}

// Clear empties the cart. Called once, after a confirmed order.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.persist()
	s.logger.Debug().Msg("cart cleared")
}

// Lines returns a copy of the cart lines in insertion order.
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count is the sum of line quantities, computed on read.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for i := range s.lines {
		count += s.lines[i].Qty
	}
	return count
}

// Subtotal is the sum of unit price times quantity, computed on read.
func (s *Store) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := 0.0
	for i := range s.lines {
		sum += s.lines[i].LineTotal()
	}
	return sum
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

// IsOpen reports the cart drawer flag.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Open flips the drawer flag on.
func (s *Store) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = true
}

// Close flips the drawer flag off.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
}

// Toggle inverts the drawer flag.
func (s *Store) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = !s.open
}

// persist snapshots the lines to the storage port. Failures are logged and
// swallowed. Callers must hold s.mu.
func (s *Store) persist() {
	if s.port == nil {
		return
	}
	data, err := json.Marshal(s.lines)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode cart snapshot")
		return
	}
	if err := s.port.Save(s.key, data); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist cart snapshot")
	}
}

// restore loads a persisted snapshot, dropping any lines that would violate
// cart invariants (empty id or non-positive quantity).
func (s *Store) restore() {
	if s.port == nil {
		return
	}
	data, ok := s.port.Load(s.key)
	if !ok {
		return
	}
	var lines []model.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		s.logger.Warn().Err(err).Msg("discarding corrupt cart snapshot")
		return
	}
	for _, l := range lines {
		if l.ItemID == "" || l.Qty <= 0 {
			continue
		}
		s.lines = append(s.lines, l)
	}
}
