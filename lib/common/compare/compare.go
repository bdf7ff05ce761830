package compare

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

type Order int

const (
	Smaller Order = -1
	Equal   Order = 0
	Greater Order = 1
)

type Compare[T any] func(t1, t2 T) Order

func Ordered[T constraints.Ordered](t1, t2 T) Order {
	switch {
	case t1 < t2:
		return Smaller
	case t1 > t2:
		return Greater
	}
	return Equal
}

// Fold compares strings ignoring case.
func Fold(s1, s2 string) Order {
	return Ordered(strings.ToLower(s1), strings.ToLower(s2))
}

func Decimal(d1, d2 decimal.Decimal) Order {
	return Order(d1.Cmp(d2))
}

// By compares values by a key.
func By[T, K any](key func(T) K, cmp Compare[K]) Compare[T] {
	return func(t1, t2 T) Order {
		return cmp(key(t1), key(t2))
	}
}

func Desc[T any](cmp Compare[T]) Compare[T] {
	return func(t1, t2 T) Order {
		return cmp(t2, t1)
	}
}

func Combine[T any](cmp ...Compare[T]) Compare[T] {
	return func(t1, t2 T) Order {
		for _, c := range cmp {
			if o := c(t1, t2); o != Equal {
				return o
			}
		}
		return Equal
	}
}

// Sort sorts ts stably.
func Sort[T any](ts []T, cmp Compare[T]) {
	slices.SortStableFunc(ts, func(t1, t2 T) bool {
		return cmp(t1, t2) == Smaller
	})
}
