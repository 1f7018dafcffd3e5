// Package sliceutil holds generic slice helpers that return new slices and
// never modify their inputs.
package sliceutil

import "slices"

// RemoveAt returns a copy of s without the element at i. An index out of
// range returns an unchanged copy.
func RemoveAt[T any](s []T, i int) []T {
	if i < 0 || i >= len(s) {
		return slices.Clone(s)
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

// Intersect returns the distinct elements of a that are also in b, in the
// order they first appear in a.
func Intersect[T comparable](a, b []T) []T {
	in := make(map[T]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}

	seen := make(map[T]struct{}, len(a))
	out := make([]T, 0)
	for _, v := range a {
		if _, ok := in[v]; !ok {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// ContainsAll reports whether every element of a is in b.
func ContainsAll[T comparable](a, b []T) bool {
	in := make(map[T]struct{}, len(b))
	for _, v := range b {
		in[v] = struct{}{}
	}
	for _, v := range a {
		if _, ok := in[v]; !ok {
			return false
		}
	}
	return true
}

// Without returns s minus every element equal to one of items.
func Without[T comparable](s []T, items ...T) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if !slices.Contains(items, v) {
			out = append(out, v)
		}
	}
	return out
}
