package cart

import (
	"sync"

	"github.com/feastline/feastline-backend/internal/catalog"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Line is one cart row keyed by item id. Name and price are snapshots taken
// at first insertion; a repeat add never re-syncs them from the catalog.
type Line struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Rating    *float64        `json:"rating,omitempty"`
}

// Store holds the cart lines in insertion order. All reads of totals are
// recomputed from the lines; nothing derived is cached.
type Store struct {
	mu            sync.Mutex
	lines         []Line
	index         map[string]int
	taxRate       decimal.Decimal
	serviceCharge decimal.Decimal
	version       uint64
}

// NewStore builds an empty cart with the given derivation constants.
func NewStore(taxRate, serviceCharge decimal.Decimal) *Store {
	return &Store{
		index:         make(map[string]int),
		taxRate:       taxRate,
		serviceCharge: serviceCharge,
	}
}

// Add inserts a new line for the item or increments an existing one.
// Non-positive quantities are ignored.
func (s *Store) Add(item catalog.FoodItem, quantity int) {
	if quantity <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.index[item.ID]; ok {
		s.lines[idx].Quantity += quantity
		s.version++
		return
	}
	s.index[item.ID] = len(s.lines)
	s.lines = append(s.lines, Line{
		ItemID:    item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Quantity:  quantity,
		Rating:    item.Rating,
	})
	s.version++
}

// AddLine merges a pre-priced line into the cart. Reorder uses this to carry
// order-time prices instead of live catalog prices.
func (s *Store) AddLine(line Line) {
	if line.Quantity <= 0 || line.ItemID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.index[line.ItemID]; ok {
		s.lines[idx].Quantity += line.Quantity
		s.version++
		return
	}
	s.index[line.ItemID] = len(s.lines)
	s.lines = append(s.lines, line)
	s.version++
}

// Increment adds one to an existing line; unknown ids are a no-op.
func (s *Store) Increment(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx, ok := s.index[itemID]; ok {
		s.lines[idx].Quantity++
		s.version++
	}
}

// Decrement subtracts one from an existing line, removing it when the
// quantity would drop below one. Unknown ids are a no-op.
func (s *Store) Decrement(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.index[itemID]
	if !ok {
		return
	}
	if s.lines[idx].Quantity > 1 {
		s.lines[idx].Quantity--
		s.version++
		return
	}
	s.removeAtLocked(idx)
	s.version++
}

func (s *Store) removeAtLocked(idx int) {
	delete(s.index, s.lines[idx].ItemID)
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	for i := idx; i < len(s.lines); i++ {
		s.index[s.lines[i].ItemID] = i
	}
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *Store) clearLocked() {
	s.lines = nil
	s.index = make(map[string]int)
	s.version++
}

// Items returns the lines in insertion order.
func (s *Store) Items() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Count returns the sum of all line quantities.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// Totals derives the monetary summary from the current lines.
func (s *Store) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeTotals(s.lines, s.taxRate, s.serviceCharge)
}

// Version identifies the cart snapshot; it changes on every mutation.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Collect atomically returns the lines with their totals and empties the
// cart. Placing the order snapshot from the returned values and the clearing
// of the cart therefore cannot interleave with other mutations.
func (s *Store) Collect() ([]Line, Totals, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return nil, Totals{}, pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty")
	}

	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	totals := ComputeTotals(lines, s.taxRate, s.serviceCharge)
	s.clearLocked()
	return lines, totals, nil
}
