package calc

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) *decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func TestComputeDiscount(t *testing.T) {
	tests := []struct {
		name     string
		wasPrice *decimal.Decimal
		price    *decimal.Decimal
		want     *int
	}{
		{"twenty percent off", dec("100"), dec("80"), intPtr(20)},
		{"floors fractional percent", dec("3"), dec("2"), intPtr(33)},
		{"half off", dec("1000"), dec("500"), intPtr(50)},
		{"no list price", nil, dec("80"), nil},
		{"no sale price", dec("100"), nil, nil},
		{"both missing", nil, nil, nil},
		{"equal prices", dec("100"), dec("100"), nil},
		{"sale above list", dec("80"), dec("100"), nil},
		{"zero list price", dec("0"), dec("0"), nil},
		{"fractional prices", dec("99.99"), dec("49.99"), intPtr(50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDiscount(tt.wasPrice, tt.price)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ComputeDiscount() = %v, want %v", fmtPtr(got), fmtPtr(tt.want))
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ComputeDiscount() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		nil_ bool
	}{
		{"integer", "800", "800", false},
		{"fractional", "49.99", "49.99", false},
		{"empty", "", "", true},
		{"garbage", "cheap", "", true},
		{"negative", "-5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePrice(tt.raw)
			if tt.nil_ {
				if got != nil {
					t.Fatalf("ParsePrice(%q) = %s, want nil", tt.raw, got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ParsePrice(%q) = nil, want %s", tt.raw, tt.want)
			}
			if got.String() != tt.want {
				t.Errorf("ParsePrice(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func intPtr(v int) *int { return &v }

func fmtPtr(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
