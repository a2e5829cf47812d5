package payments

import (
	"strings"
	"sync"

	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/google/uuid"
)

// Card is a stored card instrument. Only the masked number is kept; the PAN
// and CVV never survive the add call.
type Card struct {
	ID           string                   `json:"id"`
	Brand        string                   `json:"brand"`
	HolderName   string                   `json:"holder_name"`
	MaskedNumber string                   `json:"masked_number"`
	Expiry       string                   `json:"expiry"`
	Verification enums.VerificationStatus `json:"verification"`
}

// UpiAccount is a stored UPI instrument.
type UpiAccount struct {
	ID           string                   `json:"id"`
	Provider     string                   `json:"provider"`
	Handle       string                   `json:"handle"`
	Verification enums.VerificationStatus `json:"verification"`
}

// Store holds the two instrument collections. They never reference each
// other; the checkout run decides which collection matters for a method.
type Store struct {
	mu    sync.Mutex
	cards []Card
	upis  []UpiAccount
}

// NewStore builds an empty instrument store.
func NewStore() *Store {
	return &Store{}
}

// AddCard validates the raw card input, then stores a masked entry with the
// caller-supplied verification status.
func (s *Store) AddCard(pan, holder, expiry, cvv, brand string, verification enums.VerificationStatus) (Card, error) {
	if err := ValidateCardInput(pan, holder, expiry, cvv); err != nil {
		return Card{}, err
	}
	if !verification.IsValid() {
		return Card{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown verification status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	card := Card{
		ID:           uuid.NewString(),
		Brand:        brand,
		HolderName:   strings.TrimSpace(holder),
		MaskedNumber: MaskPAN(pan),
		Expiry:       expiry,
		Verification: verification,
	}
	s.cards = append(s.cards, card)
	return card, nil
}

// AddUpi validates the handle and stores a UPI entry with the caller-supplied
// verification status.
func (s *Store) AddUpi(provider, handle string, verification enums.VerificationStatus) (UpiAccount, error) {
	if err := ValidateUpiInput(handle); err != nil {
		return UpiAccount{}, err
	}
	if !verification.IsValid() {
		return UpiAccount{}, pkgerrors.New(pkgerrors.CodeValidation, "unknown verification status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	upi := UpiAccount{
		ID:           uuid.NewString(),
		Provider:     provider,
		Handle:       strings.TrimSpace(handle),
		Verification: verification,
	}
	s.upis = append(s.upis, upi)
	return upi, nil
}

// UpdateCard replaces the matching card in place.
func (s *Store) UpdateCard(card Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cards {
		if s.cards[i].ID == card.ID {
			s.cards[i] = card
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "card not found")
}

// UpdateUpi replaces the matching UPI account in place.
func (s *Store) UpdateUpi(upi UpiAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.upis {
		if s.upis[i].ID == upi.ID {
			s.upis[i] = upi
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "upi account not found")
}

// RemoveCard deletes the card; absent ids are a no-op.
func (s *Store) RemoveCard(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return
		}
	}
}

// RemoveUpi deletes the UPI account; absent ids are a no-op.
func (s *Store) RemoveUpi(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.upis {
		if s.upis[i].ID == id {
			s.upis = append(s.upis[:i], s.upis[i+1:]...)
			return
		}
	}
}

// Cards returns the card instruments in insertion order.
func (s *Store) Cards() []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Card, len(s.cards))
	copy(out, s.cards)
	return out
}

// Upis returns the UPI instruments in insertion order.
func (s *Store) Upis() []UpiAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]UpiAccount, len(s.upis))
	copy(out, s.upis)
	return out
}

// HasCards reports whether at least one card instrument exists.
func (s *Store) HasCards() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cards) > 0
}

// HasUpis reports whether at least one UPI instrument exists.
func (s *Store) HasUpis() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.upis) > 0
}
