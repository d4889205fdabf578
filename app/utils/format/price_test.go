package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"integer", "800", "KSh 800.00"},
		{"thousands separator", "12500", "KSh 12,500.00"},
		{"fractional", "49.9", "KSh 49.90"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got := Price(&d); got != tt.want {
				t.Errorf("Price(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPriceNil(t *testing.T) {
	if got := Price(nil); got != "" {
		t.Errorf("Price(nil) = %q, want empty", got)
	}
}
