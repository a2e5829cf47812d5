package qr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLinkEncodesPayRequest(t *testing.T) {
	link, err := Link(PayRequest{
		PayeeHandle: "feastline@okbank",
		PayeeName:   "Feastline",
		Amount:      decimal.RequireFromString("262.50"),
		Note:        "order total",
	})
	if err != nil {
		t.Fatalf("link failed: %v", err)
	}
	if !strings.HasPrefix(link, "upi://pay?") {
		t.Fatalf("unexpected scheme in %q", link)
	}
	for _, fragment := range []string{"pa=feastline%40okbank", "am=262.50", "cu=INR"} {
		if !strings.Contains(link, fragment) {
			t.Fatalf("link %q missing %q", link, fragment)
		}
	}
}

func TestLinkRejectsBadInput(t *testing.T) {
	if _, err := Link(PayRequest{Amount: decimal.NewFromInt(10)}); err == nil {
		t.Fatal("expected error for missing payee")
	}
	if _, err := Link(PayRequest{PayeeHandle: "x@y", Amount: decimal.Zero}); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestEncodePNGProducesImage(t *testing.T) {
	png, err := EncodePNG(PayRequest{
		PayeeHandle: "feastline@okbank",
		Amount:      decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Fatal("expected PNG magic bytes")
	}
}
