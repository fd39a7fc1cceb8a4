package extract

import (
	"fmt"
	"testing"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		in   string
		want string // "" means absent
	}{
		{"our price is $52.50 per unit", "52.5"},
		{"we can do $ 48 with commitment", "48"},
		{"$15,000.00 total", "15000"},
		{"$1,234,567.89", "1234567.89"},
		{"price is 52.50 per unit", ""}, // unmarked number is not a price
		{"no numbers here", ""},
		{"", ""},
		{"first $50 then $40", "50"},
	}
	for _, tt := range tests {
		got := Price(tt.in)
		if tt.want == "" {
			if got != nil {
				t.Fatalf("Price(%q) = %s, want absent", tt.in, got)
			}
			continue
		}
		if got == nil || got.String() != tt.want {
			t.Fatalf("Price(%q) = %v, want %s", tt.in, got, tt.want)
		}
	}
}

func TestPriceRoundTrip(t *testing.T) {
	for _, p := range []float64{5, 42.5, 52.50, 199.99, 300, 15000} {
		text := fmt.Sprintf("I can offer $%.2f per unit if you move fast.", p)
		got := Price(text)
		if got == nil {
			t.Fatalf("price not recovered from %q", text)
		}
		if v, _ := got.Float64(); v != p {
			t.Fatalf("Price(%q) = %s, want %v", text, got, p)
		}
	}
}

func TestDelivery(t *testing.T) {
	tests := []struct {
		in   string
		want int // -1 means absent
	}{
		{"delivery in 30 days", 30},
		{"60-Day lead time won't work", -1}, // hyphenated form is not matched
		{"1 day turnaround", 1},
		{"45 DAYS", 45},
		{"we need it this week", -1},
		{"", -1},
		{"30 days or 40 days", 30},
	}
	for _, tt := range tests {
		got := Delivery(tt.in)
		if tt.want == -1 {
			if got != nil {
				t.Fatalf("Delivery(%q) = %d, want absent", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Fatalf("Delivery(%q) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVolume(t *testing.T) {
	tests := []struct {
		in   string
		want int // -1 means absent
	}{
		{"we can take 15k", 15000},
		{"15 thousand should work", 15000},
		{"an order of 2.5k units", 2500},
		{"20,000 units at that price", 20000},
		{"20000 units", 20000},
		{"our order would be 500", 500}, // bare number with context keyword
		{"we can pay 500", -1},          // bare number without context
		{"", -1},
	}
	for _, tt := range tests {
		got := Volume(tt.in)
		if tt.want == -1 {
			if got != nil {
				t.Fatalf("Volume(%q) = %d, want absent", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Fatalf("Volume(%q) = %v, want %d", tt.in, got, tt.want)
		}
	}
}

func TestVolumePriorityOrder(t *testing.T) {
	// Shorthand outranks explicit units, which outrank bare numbers.
	text := "make it 15k, say 12000 units, for order 99"
	got := Volume(text)
	if got == nil || *got != 15000 {
		t.Fatalf("Volume(%q) = %v, want 15000", text, got)
	}

	text = "say 12000 units for order 99"
	got = Volume(text)
	if got == nil || *got != 12000 {
		t.Fatalf("Volume(%q) = %v, want 12000", text, got)
	}
}

func TestTermsFromMixedMessage(t *testing.T) {
	terms := Terms("I agree to $45 per unit, 40 days, 20000 units")
	if terms.Price == nil || terms.Price.String() != "45" {
		t.Fatalf("price = %v, want 45", terms.Price)
	}
	if terms.Delivery == nil || *terms.Delivery != 40 {
		t.Fatalf("delivery = %v, want 40", terms.Delivery)
	}
	if terms.Volume == nil || *terms.Volume != 20000 {
		t.Fatalf("volume = %v, want 20000", terms.Volume)
	}
	if !terms.Complete() {
		t.Fatal("terms should be complete")
	}
}

func TestAbsenceNeverPanics(t *testing.T) {
	for _, text := range []string{"", "no numbers here", "$", "days", "units"} {
		if Price(text) != nil {
			t.Fatalf("Price(%q) should be absent", text)
		}
		if Delivery(text) != nil {
			t.Fatalf("Delivery(%q) should be absent", text)
		}
		if Volume(text) != nil {
			t.Fatalf("Volume(%q) should be absent", text)
		}
	}
}
