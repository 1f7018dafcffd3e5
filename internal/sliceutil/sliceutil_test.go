package sliceutil

import (
	"reflect"
	"testing"
)

func TestRemoveAt(t *testing.T) {
	in := []int{1, 2, 3}
	tests := []struct {
		i    int
		want []int
	}{
		{0, []int{2, 3}},
		{1, []int{1, 3}},
		{2, []int{1, 2}},
		{3, []int{1, 2, 3}},
		{-1, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		if got := RemoveAt(in, tt.i); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("RemoveAt(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
	if !reflect.DeepEqual(in, []int{1, 2, 3}) {
		t.Errorf("input modified: %v", in)
	}
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		a, b []string
		want []string
	}{
		{[]string{"a", "b", "c"}, []string{"c", "a"}, []string{"a", "c"}},
		{[]string{"a", "a", "b"}, []string{"a"}, []string{"a"}},
		{nil, []string{"a"}, []string{}},
		{[]string{"x"}, nil, []string{}},
	}
	for _, tt := range tests {
		if got := Intersect(tt.a, tt.b); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Intersect(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestContainsAll(t *testing.T) {
	tests := []struct {
		a, b []int
		want bool
	}{
		{[]int{1, 2}, []int{2, 1, 3}, true},
		{[]int{1, 1}, []int{1}, true},
		{[]int{1, 4}, []int{1, 2}, false},
		{nil, []int{1}, true},
		{[]int{1}, nil, false},
	}
	for _, tt := range tests {
		if got := ContainsAll(tt.a, tt.b); got != tt.want {
			t.Errorf("ContainsAll(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestWithout(t *testing.T) {
	in := []string{"a", "b", "a", "c"}
	if got := Without(in, "a"); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("Without(a) = %v", got)
	}
	if got := Without(in, "a", "c"); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("Without(a, c) = %v", got)
	}
	if got := Without(in); !reflect.DeepEqual(got, in) {
		t.Errorf("Without() = %v", got)
	}
}
