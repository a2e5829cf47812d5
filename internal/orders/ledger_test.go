package orders

import (
	"testing"
	"time"

	"github.com/feastline/feastline-backend/internal/cart"
	"github.com/feastline/feastline-backend/internal/catalog"
	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

func testCart() *cart.Store {
	return cart.NewStore(decimal.RequireFromString("0.05"), decimal.NewFromInt(40))
}

func placeFromCart(t *testing.T, ledger *Ledger, store *cart.Store, label string) Order {
	t.Helper()
	lines, totals, err := store.Collect()
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	return ledger.Place(lines, totals, label)
}

func TestPlace_PrependsMostRecentFirst(t *testing.T) {
	ledger := NewLedger()
	store := testCart()

	store.Add(catalog.FoodItem{ID: "a", Name: "A", Price: decimal.NewFromInt(100)}, 1)
	first := placeFromCart(t, ledger, store, "Cash on Delivery")

	store.Add(catalog.FoodItem{ID: "b", Name: "B", Price: decimal.NewFromInt(50)}, 1)
	second := placeFromCart(t, ledger, store, "UPI")

	history := ledger.List()
	if len(history) != 2 {
		t.Fatalf("expected two orders, got %d", len(history))
	}
	if history[0].ID != second.ID || history[1].ID != first.ID {
		t.Fatal("expected most recent order first")
	}
}

func TestPlace_FreezesSnapshot(t *testing.T) {
	ledger := NewLedger()
	ledger.clock = func() time.Time {
		return time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
	}
	store := testCart()

	store.Add(catalog.FoodItem{ID: "a", Name: "Masala Dosa", Price: decimal.NewFromInt(100)}, 2)
	order := placeFromCart(t, ledger, store, "UPI")

	if order.Status != enums.OrderStatusOngoing {
		t.Fatalf("expected ongoing status, got %s", order.Status)
	}
	if !order.Total.Equal(decimal.RequireFromString("250")) {
		t.Fatalf("expected total 250, got %s", order.Total)
	}
	if order.PaymentMethodLabel != "UPI" {
		t.Fatalf("unexpected method label %q", order.PaymentMethodLabel)
	}
	if !order.PlacedAt.Equal(time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp %s", order.PlacedAt)
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", order.Items)
	}
}

func TestGet_UnknownID(t *testing.T) {
	ledger := NewLedger()
	if _, err := ledger.Get("missing"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestClear_DiscardsHistory(t *testing.T) {
	ledger := NewLedger()
	store := testCart()

	store.Add(catalog.FoodItem{ID: "a", Name: "A", Price: decimal.NewFromInt(10)}, 1)
	placeFromCart(t, ledger, store, "Cash on Delivery")

	ledger.Clear()
	if len(ledger.List()) != 0 {
		t.Fatal("expected empty history after clear")
	}
}

func TestReorder_UsesOrderTimePrices(t *testing.T) {
	ledger := NewLedger()
	store := testCart()

	// Order placed when "x" cost 10.
	store.Add(catalog.FoodItem{ID: "x", Name: "X", Price: decimal.NewFromInt(10)}, 2)
	order := placeFromCart(t, ledger, store, "Cash on Delivery")

	// The catalog price later changes; reorder must not pick it up.
	fresh := testCart()
	if err := ledger.Reorder(order.ID, fresh); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := fresh.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line, got %d", len(items))
	}
	if !items[0].UnitPrice.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("expected order-time price 10, got %s", items[0].UnitPrice)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}

	// Ledger untouched by reorder.
	if len(ledger.List()) != 1 {
		t.Fatal("expected reorder to leave the ledger unchanged")
	}
}

func TestReorder_UnknownOrder(t *testing.T) {
	ledger := NewLedger()
	if err := ledger.Reorder("missing", testCart()); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
