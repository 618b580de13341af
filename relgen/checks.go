package relgen

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// checkRule is a whitelisted, recognizable CHECK-constraint shape the
// engine can both enforce during generation and verify during validation.
// Any CHECK expression that doesn't match one of these patterns is
// reported (not enforced) rather than silently ignored.
type checkRule struct {
	Column   string
	Operator string // ">", ">=", "<", "<=", "=", "!=", "BETWEEN", "IN", "LENGTH="
	Operands []string
}

var checkPatterns = []struct {
	re *regexp.Regexp
	op string
}{
	{regexp.MustCompile(`^\s*(\w+)\s*>=\s*(-?[\d.]+)\s*$`), ">="},
	{regexp.MustCompile(`^\s*(\w+)\s*<=\s*(-?[\d.]+)\s*$`), "<="},
	{regexp.MustCompile(`^\s*(\w+)\s*>\s*(-?[\d.]+)\s*$`), ">"},
	{regexp.MustCompile(`^\s*(\w+)\s*<\s*(-?[\d.]+)\s*$`), "<"},
	{regexp.MustCompile(`^\s*(\w+)\s*!=\s*(-?[\d.]+)\s*$`), "!="},
	{regexp.MustCompile(`^\s*(\w+)\s*=\s*(-?[\d.]+)\s*$`), "="},
	{regexp.MustCompile(`(?i)^\s*(\w+)\s+BETWEEN\s+(-?[\d.]+)\s+AND\s+(-?[\d.]+)\s*$`), "BETWEEN"},
	{regexp.MustCompile(`(?i)^\s*(\w+)\s+IN\s*\(([^)]+)\)\s*$`), "IN"},
	{regexp.MustCompile(`(?i)^\s*LENGTH\s*\(\s*(\w+)\s*\)\s*=\s*(\d+)\s*$`), "LENGTH="},
}

// parseCheck attempts to recognize expr against the whitelist. ok is false
// when the expression's shape is not recognized.
func parseCheck(expr string) (rule checkRule, ok bool) {
	for _, p := range checkPatterns {
		m := p.re.FindStringSubmatch(expr)
		if m == nil {
			continue
		}
		switch p.op {
		case "IN":
			raw := strings.Split(m[2], ",")
			operands := make([]string, len(raw))
			for i, v := range raw {
				operands[i] = strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "'\""))
			}
			return checkRule{Column: m[1], Operator: "IN", Operands: operands}, true
		case "BETWEEN":
			return checkRule{Column: m[1], Operator: "BETWEEN", Operands: []string{m[2], m[3]}}, true
		default:
			return checkRule{Column: m[1], Operator: p.op, Operands: []string{m[2]}}, true
		}
	}
	return checkRule{}, false
}

// Satisfies reports whether value satisfies the rule. Numeric comparisons
// coerce value to float64; LENGTH= coerces to string length.
func (r checkRule) Satisfies(value any) bool {
	switch r.Operator {
	case "IN":
		s := fmt.Sprintf("%v", value)
		for _, o := range r.Operands {
			if o == s {
				return true
			}
		}
		return false
	case "LENGTH=":
		s := fmt.Sprintf("%v", value)
		want, _ := strconv.Atoi(r.Operands[0])
		return len(s) == want
	default:
		v, ok := toFloat(value)
		if !ok {
			return true // non-numeric value against a numeric rule: not our concern to fail
		}
		switch r.Operator {
		case ">":
			bound, _ := strconv.ParseFloat(r.Operands[0], 64)
			return v > bound
		case ">=":
			bound, _ := strconv.ParseFloat(r.Operands[0], 64)
			return v >= bound
		case "<":
			bound, _ := strconv.ParseFloat(r.Operands[0], 64)
			return v < bound
		case "<=":
			bound, _ := strconv.ParseFloat(r.Operands[0], 64)
			return v <= bound
		case "=":
			bound, _ := strconv.ParseFloat(r.Operands[0], 64)
			return v == bound
		case "!=":
			bound, _ := strconv.ParseFloat(r.Operands[0], 64)
			return v != bound
		case "BETWEEN":
			lo, _ := strconv.ParseFloat(r.Operands[0], 64)
			hi, _ := strconv.ParseFloat(r.Operands[1], 64)
			return v >= lo && v <= hi
		default:
			return true
		}
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
