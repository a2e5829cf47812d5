package address

import (
	"strings"
	"sync"

	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/google/uuid"
)

// Coords is an optional geolocation hint for an address.
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is a saved delivery address.
type Address struct {
	ID       string             `json:"id"`
	Line     string             `json:"line"`
	City     string             `json:"city"`
	PinCode  string             `json:"pin_code"`
	Landmark string             `json:"landmark,omitempty"`
	Label    enums.AddressLabel `json:"label"`
	Coords   *Coords            `json:"coords,omitempty"`
}

// Book keeps addresses in insertion order with at most one default and at
// most one selected-for-checkout entry. The default and selection pointers
// are held off to the side rather than as flags on the entries, so the
// reassignment rule has a single home.
type Book struct {
	mu         sync.Mutex
	entries    []Address
	defaultID  string
	selectedID string
}

// NewBook builds an empty address book.
func NewBook() *Book {
	return &Book{}
}

func validate(addr Address) error {
	if strings.TrimSpace(addr.Line) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address line is required")
	}
	if strings.TrimSpace(addr.City) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city is required")
	}
	if strings.TrimSpace(addr.PinCode) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "pin code is required")
	}
	if !addr.Label.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown address label").
			WithDetails(map[string]interface{}{"label": string(addr.Label)})
	}
	return nil
}

// Add assigns a fresh id and appends the address. The first address added to
// an empty book becomes the default.
func (b *Book) Add(addr Address) (Address, error) {
	if err := validate(addr); err != nil {
		return Address{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	addr.ID = uuid.NewString()
	b.entries = append(b.entries, addr)
	if b.defaultID == "" {
		b.defaultID = addr.ID
	}
	return addr, nil
}

// Update replaces the matching entry in place. Absent ids are a no-op, per
// the command contract.
func (b *Book) Update(addr Address) error {
	if err := validate(addr); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.entries {
		if b.entries[i].ID == addr.ID {
			b.entries[i] = addr
			return nil
		}
	}
	return nil
}

// Remove deletes the entry. If it was the default or the checkout selection,
// the pointer falls back to the first remaining address by insertion order,
// or to none when the book is empty.
func (b *Book) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i := range b.entries {
		if b.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	b.entries = append(b.entries[:idx], b.entries[idx+1:]...)

	fallback := ""
	if len(b.entries) > 0 {
		fallback = b.entries[0].ID
	}
	if b.defaultID == id {
		b.defaultID = fallback
	}
	if b.selectedID == id {
		b.selectedID = fallback
	}
}

// SetDefault moves the default flag. The id must exist.
func (b *Book) SetDefault(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasLocked(id) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	b.defaultID = id
	return nil
}

// Select marks the address chosen for the current checkout. An empty id
// clears the selection.
func (b *Book) Select(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if id == "" {
		b.selectedID = ""
		return nil
	}
	if !b.hasLocked(id) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
	}
	b.selectedID = id
	return nil
}

func (b *Book) hasLocked(id string) bool {
	for i := range b.entries {
		if b.entries[i].ID == id {
			return true
		}
	}
	return false
}

// List returns the addresses in insertion order.
func (b *Book) List() []Address {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Address, len(b.entries))
	copy(out, b.entries)
	return out
}

// Default returns the flagged default address, if any.
func (b *Book) Default() (Address, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.byIDLocked(b.defaultID)
}

// Selected returns the address chosen for the current checkout, if any.
func (b *Book) Selected() (Address, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.byIDLocked(b.selectedID)
}

// ResolveForDelivery picks the address a delivery checkout should use:
// the checkout selection first, then the default, then the first saved
// address. The second return is false when the book has nothing to offer.
func (b *Book) ResolveForDelivery() (Address, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if addr, ok := b.byIDLocked(b.selectedID); ok {
		return addr, true
	}
	if addr, ok := b.byIDLocked(b.defaultID); ok {
		return addr, true
	}
	if len(b.entries) > 0 {
		return b.entries[0], true
	}
	return Address{}, false
}

func (b *Book) byIDLocked(id string) (Address, bool) {
	if id == "" {
		return Address{}, false
	}
	for i := range b.entries {
		if b.entries[i].ID == id {
			return b.entries[i], true
		}
	}
	return Address{}, false
}
