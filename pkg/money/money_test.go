package money

import "testing"

func TestFormatKnownCurrency(t *testing.T) {
	if got := Format(19900, "GBP"); got != "£199.00" {
		t.Fatalf("expected £199.00, got %q", got)
	}
	if got := Format(24900, "USD"); got != "$249.00" {
		t.Fatalf("expected $249.00, got %q", got)
	}
}

func TestFormatUnknownCurrencyFallsBackToCode(t *testing.T) {
	if got := Format(19900, "XYZ"); got != "XYZ199.00" {
		t.Fatalf("expected XYZ199.00, got %q", got)
	}
}

func TestFormatSubPoundAmounts(t *testing.T) {
	if got := Format(5, "GBP"); got != "£0.05" {
		t.Fatalf("expected £0.05, got %q", got)
	}
	if got := Format(0, "GBP"); got != "£0.00" {
		t.Fatalf("expected £0.00, got %q", got)
	}
}

func TestPackTotal(t *testing.T) {
	if got := PackTotal(500, 20); got != 10000 {
		t.Fatalf("expected 10000, got %d", got)
	}
	if got := PackTotal(500, 0); got != 0 {
		t.Fatalf("expected 0 for empty pack, got %d", got)
	}
}
