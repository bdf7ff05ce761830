package compare

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

type person struct {
	first, last string
	balance     decimal.Decimal
}

func TestSort(t *testing.T) {
	ps := []person{
		{"Mickey", "Mouse", decimal.NewFromInt(10)},
		{"Donald", "Duck", decimal.NewFromInt(30)},
		{"minnie", "mouse", decimal.NewFromInt(20)},
		{"Daisy", "Duck", decimal.NewFromInt(30)},
	}
	names := func() []string {
		var res []string
		for _, p := range ps {
			res = append(res, p.first)
		}
		return res
	}

	Sort(ps, Combine(
		By(func(p person) string { return p.last }, Fold),
		By(func(p person) string { return p.first }, Fold),
	))
	if diff := cmp.Diff([]string{"Daisy", "Donald", "Mickey", "minnie"}, names()); diff != "" {
		t.Fatalf("Sort() by name mismatch (-want +got):\n%s", diff)
	}

	Sort(ps, Desc(By(func(p person) decimal.Decimal { return p.balance }, Decimal)))
	if diff := cmp.Diff([]string{"Daisy", "Donald", "minnie", "Mickey"}, names()); diff != "" {
		t.Fatalf("Sort() by balance mismatch (-want +got):\n%s", diff)
	}
}

func TestOrdered(t *testing.T) {
	tests := []struct {
		a, b int
		want Order
	}{
		{1, 2, Smaller},
		{2, 2, Equal},
		{3, 2, Greater},
	}
	for _, test := range tests {
		if got := Ordered(test.a, test.b); got != test.want {
			t.Errorf("Ordered(%d, %d) = %d, want %d", test.a, test.b, got, test.want)
		}
	}
}
