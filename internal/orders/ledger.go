package orders

import (
	"sync"
	"time"

	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is one frozen order line. UnitPrice is the price at order time and is
// never re-derived from the live catalog.
type Item struct {
	ItemID    string          `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order is an immutable snapshot of a completed checkout.
type Order struct {
	ID                 string            `json:"id"`
	Items              []Item            `json:"items"`
	Total              decimal.Decimal   `json:"total"`
	PaymentMethodLabel string            `json:"payment_method_label"`
	PlacedAt           time.Time         `json:"placed_at"`
	Status             enums.OrderStatus `json:"status"`
}

// Ledger is the prepend-ordered order history. Orders are only ever appended
// (at the front) or wholly discarded by Clear; nothing is updated in place.
type Ledger struct {
	mu     sync.Mutex
	orders []Order
	clock  func() time.Time
}

// NewLedger builds an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{clock: time.Now}
}

// Place freezes the collected cart lines into an Order and prepends it.
func (l *Ledger) Place(lines []cart.Line, totals cart.Totals, methodLabel string) Order {
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, Item{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	order := Order{
		ID:                 uuid.NewString(),
		Items:              items,
		Total:              totals.Total,
		PaymentMethodLabel: methodLabel,
		PlacedAt:           l.clock().UTC(),
		Status:             enums.OrderStatusOngoing,
	}
	l.orders = append([]Order{order}, l.orders...)
	return order
}

// List returns the history, most recent first.
func (l *Ledger) List() []Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Order, len(l.orders))
	copy(out, l.orders)
	return out
}

// Get returns one order by id.
func (l *Ledger) Get(id string) (Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, order := range l.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

// Clear discards the whole history.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orders = nil
}

// Reorder re-materializes a past order's items into the cart at their
// order-time prices. The ledger itself is not touched.
func (l *Ledger) Reorder(id string, dst *cart.Store) error {
	order, err := l.Get(id)
	if err != nil {
		return err
	}
	for _, item := range order.Items {
		dst.AddLine(cart.Line{
			ItemID:    item.ItemID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return nil
}
