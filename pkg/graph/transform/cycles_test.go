package transform

import (
	"slices"
	"testing"
)

func TestFindCycle_NoCycles(t *testing.T) {
	r := build(t, spec{"a": {"b"}, "b": {"c"}, "c": nil}, nil)

	if got := FindCycle(r); got != nil {
		t.Errorf("FindCycle() = %v, want nil", got)
	}
}

func TestFindCycle_IgnoresDanglingReferences(t *testing.T) {
	r := build(t, spec{"a": {"missing"}, "b": {"a"}}, nil)

	if got := FindCycle(r); got != nil {
		t.Errorf("FindCycle() = %v, want nil", got)
	}
}

func TestFindCycle_TriangleCycle(t *testing.T) {
	r := build(t, spec{"a": {"b"}, "b": {"c"}, "c": {"a"}}, nil)

	if got := FindCycle(r); !slices.Equal(got, []string{"a", "b", "c", "a"}) {
		t.Errorf("FindCycle() = %v, want [a b c a]", got)
	}
}

func TestFindCycle_CycleBelowEntry(t *testing.T) {
	// entry -> x -> y -> x: the reported cycle starts at x, not at entry
	r := build(t, spec{"entry": {"x"}, "x": {"y"}, "y": {"x"}}, nil)

	if got := FindCycle(r); !slices.Equal(got, []string{"x", "y", "x"}) {
		t.Errorf("FindCycle() = %v, want [x y x]", got)
	}
}

func TestFindCycle_Deterministic(t *testing.T) {
	// Two separate cycles: a<->b and c<->d. Name order finds a<->b first.
	s := spec{"a": {"b"}, "b": {"a"}, "c": {"d"}, "d": {"c"}}
	for range 5 {
		r := build(t, s, []string{"d", "c", "b", "a"})
		if got := FindCycle(r); !slices.Equal(got, []string{"a", "b", "a"}) {
			t.Fatalf("FindCycle() = %v, want [a b a]", got)
		}
	}
}
