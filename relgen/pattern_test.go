package relgen

import (
	"strings"
	"testing"
)

func TestExpandPatternTokens(t *testing.T) {
	rng := NewRNG(1)
	out, err := ExpandPattern("#-X-A-H", rng)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parts := strings.Split(out, "-")
	if len(parts) != 4 {
		t.Fatalf("expected 4 segments, got %q", out)
	}
	if len(parts[0]) != 1 || parts[0][0] < '0' || parts[0][0] > '9' {
		t.Errorf("expected a digit, got %q", parts[0])
	}
	if len(parts[1]) != 1 || parts[1][0] < 'A' || parts[1][0] > 'Z' {
		t.Errorf("expected an uppercase letter, got %q", parts[1])
	}
}

func TestExpandPatternDigitRun(t *testing.T) {
	out, err := ExpandPattern("{d:4}", NewRNG(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 digits, got %q", out)
	}
}

func TestExpandPatternChoiceList(t *testing.T) {
	out, err := ExpandPattern("[red,green,blue]", NewRNG(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	switch out {
	case "red", "green", "blue":
	default:
		t.Fatalf("unexpected choice: %q", out)
	}
}

func TestExpandPatternEscape(t *testing.T) {
	out, err := ExpandPattern(`\#\X`, NewRNG(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "#X" {
		t.Fatalf("expected literal '#X', got %q", out)
	}
}

func TestExpandPatternUnclosedBrace(t *testing.T) {
	if _, err := ExpandPattern("{d:3", NewRNG(1)); err == nil {
		t.Fatal("expected PatternInvalid for unclosed brace")
	}
}

func TestExpandPatternTrailingEscape(t *testing.T) {
	if _, err := ExpandPattern(`abc\`, NewRNG(1)); err == nil {
		t.Fatal("expected PatternInvalid for trailing escape")
	}
}

func TestValidatePatternNeverDraws(t *testing.T) {
	if err := ValidatePattern("###-XXX-[a,b]"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidatePattern("[incomplete"); err == nil {
		t.Fatal("expected PatternInvalid for unclosed bracket")
	}
}

func TestExpandPatternSequentialPadsAndAdvances(t *testing.T) {
	out, err := ExpandPatternSequential("ORD-{d:5}", 42, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "ORD-00042" {
		t.Fatalf("expected zero-padded counter, got %q", out)
	}
}
