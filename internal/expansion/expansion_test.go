package expansion

import (
	"reflect"
	"testing"
)

func TestToggleTwiceRestoresMembership(t *testing.T) {
	t.Parallel()

	var s Set
	s = s.Toggle(5)

	once := s.Toggle(2)
	if !once.IsExpanded(2) {
		t.Fatal("index 2 should be expanded after one toggle")
	}
	twice := once.Toggle(2)
	if twice.IsExpanded(2) {
		t.Fatal("index 2 should be collapsed after two toggles")
	}
	if !twice.IsExpanded(5) || !once.IsExpanded(5) {
		t.Fatal("toggling 2 must not affect index 5")
	}
	if twice.Len() != 1 {
		t.Fatalf("expected one member, got %d", twice.Len())
	}
}

func TestToggleIsCopyOnWrite(t *testing.T) {
	t.Parallel()

	base := Set{}.Toggle(1)
	next := base.Toggle(3)

	if base.IsExpanded(3) {
		t.Fatal("toggle mutated the receiver")
	}
	if got := next.Indices(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("unexpected indices %v", got)
	}
	if got := base.Indices(); !reflect.DeepEqual(got, []int{1}) {
		t.Fatalf("receiver indices changed: %v", got)
	}
}

func TestZeroValue(t *testing.T) {
	t.Parallel()

	var s Set
	if s.IsExpanded(0) || s.Len() != 0 || len(s.Indices()) != 0 {
		t.Fatal("zero Set should be empty")
	}
}
