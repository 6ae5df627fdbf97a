package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatUsesCommaSeparator(t *testing.T) {
	formatter := NewFormatter("€")

	cases := []struct {
		amount string
		want   string
	}{
		{"1.5", "€ 1,50"},
		{"0", "€ 0,00"},
		{"12.345", "€ 12,35"},
	}
	for _, tc := range cases {
		got := formatter.Format(decimal.RequireFromString(tc.amount))
		if got != tc.want {
			t.Fatalf("Format(%s): expected %q got %q", tc.amount, tc.want, got)
		}
	}
}

func TestFormatWithPrefix(t *testing.T) {
	formatter := NewFormatter("€")

	got := formatter.FormatWithPrefix(decimal.RequireFromString("0.35"), "+ ")
	if got != "+ € 0,35" {
		t.Fatalf("expected prefixed amount, got %q", got)
	}
}

func TestFormatWithoutSymbol(t *testing.T) {
	formatter := NewFormatter("")

	if got := formatter.Format(decimal.RequireFromString("2")); got != "2,00" {
		t.Fatalf("expected bare amount, got %q", got)
	}
}
