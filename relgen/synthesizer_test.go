package relgen

import "testing"

func TestSynthesizeUsesDefaultValue(t *testing.T) {
	s := NewSynthesizer(LocaleEnUS)
	def := "pending"
	col := &Column{Name: "status", Type: TypeVarchar, Default: &def}
	v, err := s.Synthesize(col, NewRNG(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "pending" {
		t.Fatalf("expected default value, got %v", v)
	}
}

func TestSynthesizeRecognizesEmailHint(t *testing.T) {
	s := NewSynthesizer(LocaleEnUS)
	col := &Column{Name: "contact_email", Type: TypeVarchar}
	v, err := s.Synthesize(col, NewRNG(9))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	str, ok := v.(string)
	if !ok || len(str) == 0 {
		t.Fatalf("expected a non-empty string, got %v", v)
	}
}

func TestSynthesizeDecimalRespectsScale(t *testing.T) {
	s := NewSynthesizer(LocaleEnUS)
	scale := 2
	col := &Column{Name: "amount", Type: TypeDecimal, Scale: &scale}
	v, err := s.Synthesize(col, NewRNG(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	str := v.(string)
	dot := -1
	for i, c := range str {
		if c == '.' {
			dot = i
		}
	}
	if dot == -1 || len(str)-dot-1 != 2 {
		t.Fatalf("expected exactly 2 fractional digits, got %q", str)
	}
}

func TestSynthesizeUnknownTypeErrors(t *testing.T) {
	s := NewSynthesizer(LocaleEnUS)
	col := &Column{Name: "x", Type: "NOT_A_TYPE"}
	if _, err := s.Synthesize(col, NewRNG(1)); err == nil {
		t.Fatal("expected an error for an unsupported type")
	}
}
