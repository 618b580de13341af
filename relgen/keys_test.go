package relgen

import "testing"

func TestKeyAllocatorIntMonotonic(t *testing.T) {
	k := NewKeyAllocator()
	col := &Column{Name: "id", Type: TypeInt}
	rng := NewRNG(1)
	var prev int64
	for i := 0; i < 10; i++ {
		v, err := k.Next("users", col, rng)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n := v.(int64)
		if n <= prev {
			t.Fatalf("expected strictly increasing counter, got %d after %d", n, prev)
		}
		prev = n
	}
}

func TestKeyAllocatorIndependentPerTableColumn(t *testing.T) {
	k := NewKeyAllocator()
	rng := NewRNG(1)
	col := &Column{Name: "id", Type: TypeInt}
	a, _ := k.Next("users", col, rng)
	b, _ := k.Next("orders", col, rng)
	if a.(int64) != 1 || b.(int64) != 1 {
		t.Fatalf("expected independent counters starting at 1, got %v and %v", a, b)
	}
}

func TestKeyAllocatorUUIDIsValidFormat(t *testing.T) {
	k := NewKeyAllocator()
	col := &Column{Name: "id", Type: TypeUUID}
	rng := NewRNG(5)
	v, err := k.Next("sessions", col, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := v.(string)
	if len(s) != 36 {
		t.Fatalf("expected a 36-character UUID string, got %q", s)
	}
}

func TestKeyAllocatorStringUsesPattern(t *testing.T) {
	k := NewKeyAllocator()
	col := &Column{Name: "code", Type: TypeVarchar, Pattern: "ORD-{d:6}"}
	rng := NewRNG(1)
	v, err := k.Next("orders", col, rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.(string) != "ORD-000001" {
		t.Fatalf("expected ORD-000001, got %q", v)
	}
}
