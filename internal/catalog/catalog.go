package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// FoodItem is one catalog entry. Items are supplied at process start and are
// never mutated; the cart keeps its own price/name snapshots.
type FoodItem struct {
	ID      string           `json:"id"`
	Name    string           `json:"name"`
	Price   decimal.Decimal  `json:"price"`
	Rating  *float64         `json:"rating,omitempty"`
	Dietary enums.Dietary    `json:"dietary"`
	Status  enums.ItemStatus `json:"status"`
}

// Reader exposes the immutable in-memory catalog.
type Reader struct {
	items []FoodItem
	byID  map[string]int
}

// NewReader validates the supplied items and builds the lookup index.
func NewReader(items []FoodItem) (*Reader, error) {
	byID := make(map[string]int, len(items))
	copied := make([]FoodItem, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("catalog item %d: id is required", i)
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, fmt.Errorf("catalog item %q: name is required", item.ID)
		}
		if item.Price.IsNegative() {
			return nil, fmt.Errorf("catalog item %q: price must be non-negative", item.ID)
		}
		if !item.Dietary.IsValid() {
			return nil, fmt.Errorf("catalog item %q: invalid dietary flag %q", item.ID, item.Dietary)
		}
		if item.Status == "" {
			item.Status = enums.ItemStatusNone
		}
		if !item.Status.IsValid() {
			return nil, fmt.Errorf("catalog item %q: invalid status %q", item.ID, item.Status)
		}
		if _, exists := byID[item.ID]; exists {
			return nil, fmt.Errorf("catalog item %q: duplicate id", item.ID)
		}
		byID[item.ID] = i
		copied[i] = item
	}
	return &Reader{items: copied, byID: byID}, nil
}

// LoadFile reads a JSON catalog from disk.
func LoadFile(path string) (*Reader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var items []FoodItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	return NewReader(items)
}

// List returns the catalog in its seeded order.
func (r *Reader) List() []FoodItem {
	out := make([]FoodItem, len(r.items))
	copy(out, r.items)
	return out
}

// Filter returns the items matching the optional dietary and status filters.
func (r *Reader) Filter(dietary *enums.Dietary, status *enums.ItemStatus) []FoodItem {
	out := make([]FoodItem, 0, len(r.items))
	for _, item := range r.items {
		if dietary != nil && item.Dietary != *dietary {
			continue
		}
		if status != nil && item.Status != *status {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Get returns the item with the given id.
func (r *Reader) Get(id string) (FoodItem, error) {
	idx, ok := r.byID[id]
	if !ok {
		return FoodItem{}, pkgerrors.New(pkgerrors.CodeNotFound, "food item not found")
	}
	return r.items[idx], nil
}
