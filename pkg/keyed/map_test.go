package keyed

import (
	"slices"
	"testing"
)

func TestMapSetAndGet(t *testing.T) {
	m := NewMap[*record, int, string](recordID)
	a := &record{id: 1}

	if _, ok := m.Get(a); ok {
		t.Error("Get on empty map reported present, want missing")
	}

	m.Set(a, "alpha")
	got, ok := m.Get(&record{id: 1})
	if !ok {
		t.Fatal("Get(id 1) reported missing, want present")
	}
	if got != "alpha" {
		t.Errorf("Get(id 1) = %q, want %q", got, "alpha")
	}
}

func TestMapSetOverwritesValueKeepsElement(t *testing.T) {
	m := NewMap[*record, int, string](recordID)
	first := &record{id: 1, name: "first"}
	second := &record{id: 1, name: "second"}

	m.Set(first, "old")
	m.Set(second, "new")

	if got := m.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
	if got, _ := m.Get(first); got != "new" {
		t.Errorf("Get() = %q after overwrite, want %q", got, "new")
	}
	if keys := m.Keys(); keys[0] != first {
		t.Errorf("Keys()[0] = %v, want the first-stored element", keys[0])
	}
}

func TestMapDelete(t *testing.T) {
	m := NewMap[*record, int, int](recordID)
	for _, id := range []int{1, 2, 3} {
		m.Set(&record{id: id}, id * 10)
	}

	if !m.Delete(&record{id: 2}) {
		t.Fatal("Delete(id 2) = false, want true")
	}
	if m.Delete(&record{id: 2}) {
		t.Error("Delete(id 2) again = true, want false")
	}
	if m.Has(&record{id: 2}) {
		t.Error("Has(id 2) = true after Delete, want false")
	}

	var ids []int
	for _, r := range m.Keys() {
		ids = append(ids, r.id)
	}
	if want := []int{1, 3}; !slices.Equal(ids, want) {
		t.Errorf("Keys() after Delete = %v, want %v", ids, want)
	}
	if got, _ := m.Get(&record{id: 3}); got != 30 {
		t.Errorf("Get(id 3) = %d after unrelated Delete, want 30", got)
	}
}

func TestMapGetKey(t *testing.T) {
	m := NewMap[*record, int, string](recordID)
	m.Set(&record{id: 5}, "five")

	if got, ok := m.GetKey(5); !ok || got != "five" {
		t.Errorf("GetKey(5) = %q, %v, want %q, true", got, ok, "five")
	}
	if _, ok := m.GetKey(6); ok {
		t.Error("GetKey(6) reported present, want missing")
	}
}
