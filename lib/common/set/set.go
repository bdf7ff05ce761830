package set

import "github.com/sboehler/teller/lib/common/compare"

type Set[T comparable] map[T]struct{}

func New[T comparable]() Set[T] {
	return make(Set[T])
}

func (set Set[T]) Add(t T) {
	set[t] = struct{}{}
}

func (set Set[T]) Has(t T) bool {
	_, ok := set[t]
	return ok
}

func (set Set[T]) Len() int {
	return len(set)
}

// Sorted returns the elements in the order given by cmp.
func (set Set[T]) Sorted(cmp compare.Compare[T]) []T {
	res := make([]T, 0, len(set))
	for elem := range set {
		res = append(res, elem)
	}
	compare.Sort(res, cmp)
	return res
}
