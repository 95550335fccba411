// Package collection holds the small generic slice helpers the storefront
// uses for filtering, sorting and totalling product and cart lists.
//
//	bags := collection.Filter(products, isBag)
//	total := collection.Sum(items, func(it models.CartItem) float64 { return it.Price * float64(it.Qty) })
package collection

import "sort"

// Number is any type Sum can add.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Map transforms each element of s using fn.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns a new slice with the elements of s for which fn is true.
// The result is never nil.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// First returns the first element matching fn, or (zero, false).
func First[T any](s []T, fn func(T) bool) (T, bool) {
	for _, v := range s {
		if fn(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Contains reports whether any element of s satisfies fn.
func Contains[T any](s []T, fn func(T) bool) bool {
	_, ok := First(s, fn)
	return ok
}

// SortStableBy returns a sorted copy of s. Equal elements keep their order.
func SortStableBy[T any](s []T, less func(a, b T) bool) []T {
	out := make([]T, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// Reduce folds s into a single value using fn, starting with initial.
func Reduce[T, R any](s []T, initial R, fn func(carry R, item T) R) R {
	carry := initial
	for _, v := range s {
		carry = fn(carry, v)
	}
	return carry
}

// Sum adds fn(v) over s. It is 0 for an empty slice.
func Sum[T any, N Number](s []T, fn func(T) N) N {
	return Reduce(s, N(0), func(carry N, v T) N { return carry + fn(v) })
}
