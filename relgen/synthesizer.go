package relgen

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Synthesizer produces one column value at a time. It holds a locale's
// persona vocabulary but no RNG state of its own — every call takes the
// *RNG to draw from, so a Synthesizer is safe to share across goroutines.
type Synthesizer struct {
	locale     localeData
	nullChance float64 // probability a nullable column synthesizes to nil, default 0.10
}

// NewSynthesizer builds a Synthesizer for the given locale (falling back to
// en_US for anything outside the closed locale set).
func NewSynthesizer(locale Locale) *Synthesizer {
	return &Synthesizer{locale: newLocaleData(locale), nullChance: 0.10}
}

// Synthesize produces a value for col, following the dispatch order:
// default value, then (if nullable) a null-chance roll, then the column's
// Pattern if set, then a semantic name-based heuristic, then typed dispatch
// by logical type. It never
// consults a column's configured DistributionSpec — use SynthesizeDist
// for that.
func (s *Synthesizer) Synthesize(col *Column, rng *RNG) (any, error) {
	return s.synthesizeWithSpec(col, rng, nil)
}

// SynthesizeDist is Synthesize, but a non-uniform spec (weighted, range,
// or histogram) takes priority over the semantic-hint and typed-dispatch
// steps — an explicit per-column distribution is a stronger signal than a
// column-name guess.
func (s *Synthesizer) SynthesizeDist(col *Column, rng *RNG, spec *DistributionSpec) (any, error) {
	return s.synthesizeWithSpec(col, rng, spec)
}

func (s *Synthesizer) synthesizeWithSpec(col *Column, rng *RNG, spec *DistributionSpec) (any, error) {
	if col.Default != nil {
		return *col.Default, nil
	}
	if col.Nullable && rng.Bool(s.nullChance) {
		return nil, nil
	}
	if col.Pattern != "" {
		out, err := ExpandPattern(col.Pattern, rng)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
	if spec != nil {
		if v, handled, err := sampleDistributionValue(spec, rng); handled {
			return v, err
		}
	}
	if hint := classifyColumnName(col.Name); hint != hintNone {
		if v, ok := s.synthesizeSemantic(hint, rng); ok {
			return v, nil
		}
	}
	return s.synthesizeTyped(col, rng)
}

// sampleDistributionValue handles the value-choice distribution kinds
// (weighted, range, histogram) that bypass typed synthesis entirely.
// handled is false for uniform/zipf/normal/sequential, which only affect
// foreign-key index selection (see FKSampler), not column value choice.
func sampleDistributionValue(spec *DistributionSpec, rng *RNG) (value any, handled bool, err error) {
	switch spec.Kind {
	case DistWeighted, DistRange:
		if len(spec.Values) == 0 {
			return nil, false, nil
		}
		idx := 0
		if len(spec.Weights) == len(spec.Values) {
			idx = sampleWeighted(rng, spec.Weights)
		} else {
			idx = rng.Intn(len(spec.Values))
		}
		return spec.Values[idx], true, nil
	case DistHistogram:
		v, err := sampleHistogramBucket(rng, spec.BucketBounds, spec.BucketCounts)
		return v, true, err
	default:
		return nil, false, nil
	}
}

func (s *Synthesizer) synthesizeTyped(col *Column, rng *RNG) (any, error) {
	switch col.Type {
	case TypeInt, TypeInteger:
		return int32(rng.Int63n(2_000_000_000) - 1_000_000_000), nil
	case TypeBigInt:
		return rng.Int63n(1 << 62), nil
	case TypeSmallInt:
		return int16(rng.Intn(65536) - 32768), nil
	case TypeTinyInt:
		return int8(rng.Intn(256) - 128), nil
	case TypeVarchar, TypeChar, TypeText, TypeString:
		return s.randomString(col, rng), nil
	case TypeDecimal, TypeNumeric:
		return s.randomDecimal(col, rng), nil
	case TypeFloat, TypeDouble, TypeReal:
		return rng.Float64() * 100000, nil
	case TypeDate:
		return s.randomDate(rng).Format("2006-01-02"), nil
	case TypeDateTime, TypeTimestamp:
		return s.randomDate(rng).Format(time.RFC3339), nil
	case TypeTime:
		return fmt.Sprintf("%02d:%02d:%02d", rng.Intn(24), rng.Intn(60), rng.Intn(60)), nil
	case TypeBoolean, TypeBool:
		return rng.Bool(0.5), nil
	case TypeJSON, TypeJSONB:
		return fmt.Sprintf(`{"seq":%d,"label":%q}`, rng.Intn(1_000_000), randomAlnum(rng, 8)), nil
	case TypeUUID:
		id, err := uuid.NewRandomFromReader(rngReader{rng})
		if err != nil {
			return nil, err
		}
		return id.String(), nil
	case TypeBlob, TypeBinary:
		raw := make([]byte, 16)
		for i := range raw {
			raw[i] = byte(rng.Intn(256))
		}
		return base64.StdEncoding.EncodeToString(raw), nil
	default:
		return nil, errSchemaInvalid("", col.Name, "unsupported type for synthesis: "+string(col.Type))
	}
}

// stringLengthBucket maps a column's declared length to a generation
// length: the declared length capped at 64, or 12 when none is declared.
func stringLengthBucket(col *Column) int {
	if col.Length != nil && *col.Length > 0 {
		if *col.Length > 64 {
			return 64
		}
		return *col.Length
	}
	return 12
}

const alnumAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomAlnum(rng *RNG, n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = alnumAlphabet[rng.Intn(len(alnumAlphabet))]
	}
	return string(buf)
}

func (s *Synthesizer) randomString(col *Column, rng *RNG) string {
	n := stringLengthBucket(col)
	return randomAlnum(rng, n)
}

// randomDecimal produces an arbitrary-precision DECIMAL(precision,scale)
// value via shopspring/decimal rather than formatting a float64, so a
// DECIMAL(18,4) column never rounds through binary floating point.
func (s *Synthesizer) randomDecimal(col *Column, rng *RNG) string {
	scale := 2
	if col.Scale != nil {
		scale = *col.Scale
	}
	precision := 10
	if col.Precision != nil {
		precision = *col.Precision
	}
	intDigits := precision - scale
	if intDigits < 1 {
		intDigits = 1
	}
	maxInt := pow10(intDigits)
	whole := rng.Int63n(maxInt)
	frac := rng.Int63n(pow10(scale))
	d := decimal.New(whole, 0).Add(decimal.New(frac, int32(-scale)))
	return d.StringFixed(int32(scale))
}

// dateRangeAnchor fixes the window randomDate draws from. A wall-clock
// anchor (time.Now) would make two runs with the same seed diverge once
// they cross a day boundary, so the window is pinned instead.
var dateRangeAnchor = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func (s *Synthesizer) randomDate(rng *RNG) time.Time {
	const spanDays = 20 * 365
	days := rng.Intn(spanDays)
	return dateRangeAnchor.AddDate(0, 0, days)
}

// rngReader adapts *RNG to io.Reader so uuid.NewRandomFromReader draws its
// entropy from the run's own deterministic stream instead of the global
// crypto/rand source, keeping UUID primary keys reproducible under a fixed
// seed.
type rngReader struct{ rng *RNG }

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.Intn(256))
	}
	return len(p), nil
}
