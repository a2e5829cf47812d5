package address

import (
	"testing"

	"github.com/feastline/feastline-backend/pkg/enums"
	pkgerrors "github.com/feastline/feastline-backend/pkg/errors"
)

func testAddress(line string) Address {
	return Address{Line: line, City: "Bengaluru", PinCode: "560001", Label: enums.AddressLabelHome}
}

func TestAdd_FirstAddressBecomesDefault(t *testing.T) {
	book := NewBook()

	added, err := book.Add(testAddress("12 MG Road"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected a generated id")
	}

	def, ok := book.Default()
	if !ok || def.ID != added.ID {
		t.Fatalf("expected first address to become default, got %+v ok=%v", def, ok)
	}
}

func TestAdd_ValidatesFields(t *testing.T) {
	book := NewBook()

	cases := []struct {
		name string
		addr Address
	}{
		{"missing line", Address{City: "Bengaluru", PinCode: "560001", Label: enums.AddressLabelHome}},
		{"missing city", Address{Line: "12 MG Road", PinCode: "560001", Label: enums.AddressLabelHome}},
		{"missing pin", Address{Line: "12 MG Road", City: "Bengaluru", Label: enums.AddressLabelHome}},
		{"bad label", Address{Line: "12 MG Road", City: "Bengaluru", PinCode: "560001", Label: "Cottage"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := book.Add(tc.addr); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdate_ReplacesInPlace(t *testing.T) {
	book := NewBook()

	a, _ := book.Add(testAddress("12 MG Road"))
	b, _ := book.Add(testAddress("4 Church Street"))

	a.Line = "14 MG Road"
	if err := book.Update(a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries := book.List()
	if entries[0].Line != "14 MG Road" {
		t.Fatalf("expected entry updated in place, got %q", entries[0].Line)
	}
	if entries[1].ID != b.ID {
		t.Fatal("expected update to preserve order")
	}
}

func TestUpdate_AbsentIDIsNoOp(t *testing.T) {
	book := NewBook()
	book.Add(testAddress("12 MG Road"))

	ghost := testAddress("1 Nowhere Lane")
	ghost.ID = "missing"
	if err := book.Update(ghost); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(book.List()) != 1 {
		t.Fatal("expected no entry appended for absent id")
	}
}

func TestRemove_DefaultReassignsToFirstRemaining(t *testing.T) {
	book := NewBook()

	a, _ := book.Add(testAddress("A"))
	b, _ := book.Add(testAddress("B"))

	book.Remove(a.ID)

	def, ok := book.Default()
	if !ok || def.ID != b.ID {
		t.Fatalf("expected default reassigned to B, got %+v ok=%v", def, ok)
	}
}

func TestRemove_LastAddressLeavesNoDefault(t *testing.T) {
	book := NewBook()

	a, _ := book.Add(testAddress("A"))
	book.Remove(a.ID)

	if _, ok := book.Default(); ok {
		t.Fatal("expected no default after removing the only address")
	}
	if _, ok := book.Selected(); ok {
		t.Fatal("expected no selection after removing the only address")
	}
}

func TestRemove_SelectedReassignsToFirstRemaining(t *testing.T) {
	book := NewBook()

	a, _ := book.Add(testAddress("A"))
	b, _ := book.Add(testAddress("B"))
	if err := book.Select(b.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	book.Remove(b.ID)

	sel, ok := book.Selected()
	if !ok || sel.ID != a.ID {
		t.Fatalf("expected selection reassigned to A, got %+v ok=%v", sel, ok)
	}
}

func TestSelect_EmptyIDClearsSelection(t *testing.T) {
	book := NewBook()

	a, _ := book.Add(testAddress("A"))
	book.Select(a.ID)
	if err := book.Select(""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := book.Selected(); ok {
		t.Fatal("expected selection cleared")
	}
}

func TestSelect_UnknownIDFails(t *testing.T) {
	book := NewBook()

	if err := book.Select("missing"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if err := book.SetDefault("missing"); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestResolveForDelivery_PrefersSelectionThenDefaultThenFirst(t *testing.T) {
	book := NewBook()

	if _, ok := book.ResolveForDelivery(); ok {
		t.Fatal("expected no resolution for empty book")
	}

	a, _ := book.Add(testAddress("A"))
	b, _ := book.Add(testAddress("B"))
	c, _ := book.Add(testAddress("C"))

	// First added is the default.
	got, ok := book.ResolveForDelivery()
	if !ok || got.ID != a.ID {
		t.Fatalf("expected default A, got %+v", got)
	}

	book.SetDefault(b.ID)
	got, _ = book.ResolveForDelivery()
	if got.ID != b.ID {
		t.Fatalf("expected default B, got %+v", got)
	}

	book.Select(c.ID)
	got, _ = book.ResolveForDelivery()
	if got.ID != c.ID {
		t.Fatalf("expected selection C to win, got %+v", got)
	}
}
