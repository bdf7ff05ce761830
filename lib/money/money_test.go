package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12", "12"},
		{" 12.5 ", "12.5"},
		{"$1,000.25", "1000.25"},
		{"-300.10", "-300.1"},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			got, err := Parse(test.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned unexpected error: %v", test.input, err)
			}
			if !got.Equal(decimal.RequireFromString(test.want)) {
				t.Errorf("Parse(%q) = %s, want %s", test.input, got, test.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "1.2.3", "$"} {
		if _, err := Parse(input); err == nil {
			t.Errorf("Parse(%q) returned no error", input)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		input         string
		fixed, dollar string
	}{
		{"0", "0.00", "$0.00"},
		{"1500", "1500.00", "$1500.00"},
		{"-500", "-500.00", "$-500.00"},
		{"2.005", "2.01", "$2.01"},
	}
	for _, test := range tests {
		d := decimal.RequireFromString(test.input)
		if got := Fixed(d); got != test.fixed {
			t.Errorf("Fixed(%s) = %q, want %q", test.input, got, test.fixed)
		}
		if got := Dollars(d); got != test.dollar {
			t.Errorf("Dollars(%s) = %q, want %q", test.input, got, test.dollar)
		}
	}
}

func TestGrouped(t *testing.T) {
	tests := map[string]string{
		"0":          "0.00",
		"-0.001":     "0.00",
		"999.999":    "1,000.00",
		"1234.5":     "1,234.50",
		"-2400":      "-2,400.00",
		"1234567.89": "1,234,567.89",
		"-100":       "-100.00",
	}
	for input, want := range tests {
		if got := Grouped(decimal.RequireFromString(input)); got != want {
			t.Errorf("Grouped(%s) = %q, want %q", input, got, want)
		}
	}
}
