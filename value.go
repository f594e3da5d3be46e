package sqwrap

import (
	"math"
	"strconv"
	"strings"

	"github.com/orsinium-labs/enum"

	"github.com/sqwrap/sqwrap/internal/capi"
)

// ValueKind represents the fundamental storage class of a Value.
type ValueKind enum.Member[string]

var (
	KindNull    = ValueKind{Value: "null"}
	KindInteger = ValueKind{Value: "integer"}
	KindReal    = ValueKind{Value: "real"}
	KindText    = ValueKind{Value: "text"}
	KindBlob    = ValueKind{Value: "blob"}
	ValueKinds  = enum.New(KindNull, KindInteger, KindReal, KindText, KindBlob)
)

// Value is a self-contained snapshot of one column datum, duplicated out
// of the engine at fetch time. It carries no reference to the Statement or
// Row that produced it and stays valid after both are gone.
//
// The accessors never fail; a type mismatch falls back to the engine's
// coercion rules (text "12abc" reads as the integer 12, non-numeric text
// as 0, reals truncate toward zero, numbers render as their canonical
// decimal text).
type Value struct {
	kind    ValueKind
	integer int64
	real    float64
	bytes   []byte
	ptr     any
}

// newValue builds a Value from an engine datum snapshot.
func newValue(d capi.Datum) Value {
	switch d.Kind {
	case capi.DatumInteger:
		return Value{kind: KindInteger, integer: d.Int}
	case capi.DatumFloat:
		return Value{kind: KindReal, real: d.Float}
	case capi.DatumText:
		return Value{kind: KindText, bytes: d.Bytes}
	case capi.DatumBlob:
		return Value{kind: KindBlob, bytes: d.Bytes}
	default:
		return Value{kind: KindNull, ptr: capi.PointerHandleValue(d.Handle)}
	}
}

// Kind returns the storage class of the snapshot. The zero Value reports
// KindNull.
func (v Value) Kind() ValueKind {
	if v.kind == (ValueKind{}) {
		return KindNull
	}
	return v.kind
}

// IsNull reports whether the snapshot holds SQL NULL.
func (v Value) IsNull() bool {
	return v.Kind() == KindNull
}

// Int returns the value as a signed 32-bit integer, truncating the 64-bit
// interpretation.
func (v Value) Int() int32 {
	return int32(v.Int64())
}

// Int64 returns the value as a signed 64-bit integer.
func (v Value) Int64() int64 {
	switch v.kind {
	case KindInteger:
		return v.integer
	case KindReal:
		return realToInt64(v.real)
	case KindText, KindBlob:
		return textToInt64(string(v.bytes))
	default:
		return 0
	}
}

// Float returns the value as a 64-bit floating point number.
func (v Value) Float() float64 {
	switch v.kind {
	case KindInteger:
		return float64(v.integer)
	case KindReal:
		return v.real
	case KindText, KindBlob:
		return textToFloat(string(v.bytes))
	default:
		return 0
	}
}

// Pointer returns the Go payload previously attached through pointer
// binding, or nil if the value was not produced by such a binding.
func (v Value) Pointer() any {
	return v.ptr
}

// Text returns the value as a string. Numbers render in their canonical
// decimal form; whole reals keep a trailing ".0" the way the engine
// renders them.
func (v Value) Text() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindReal:
		return formatReal(v.real)
	case KindText, KindBlob:
		return string(v.bytes)
	default:
		return ""
	}
}

// Blob returns a view over the raw bytes backing this value. For text the
// view covers the UTF-8 bytes; for numbers it covers the canonical text
// rendering. The view must not be mutated.
func (v Value) Blob() Blob {
	switch v.kind {
	case KindText, KindBlob:
		return Blob(v.bytes)
	case KindInteger, KindReal:
		return Blob(v.Text())
	default:
		return nil
	}
}

// Size returns the byte length of the value's current representation.
func (v Value) Size() int {
	return len(v.Blob())
}

// Clone returns an independent copy of the snapshot. The byte payload is
// duplicated so mutating one copy's Blob view cannot leak into the other.
func (v Value) Clone() Value {
	out := v
	if v.bytes != nil {
		out.bytes = append([]byte(nil), v.bytes...)
	}
	return out
}

// realToInt64 truncates toward zero, clamping at the int64 range the way
// the engine does.
func realToInt64(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return int64(f)
}

// textToInt64 parses the leading numeric prefix of s, returning 0 when no
// digits lead the text.
func textToInt64(s string) int64 {
	i := skipSpace(s)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == digits {
		return 0
	}
	if i < len(s) && (s[i] == '.' || s[i] == 'e' || s[i] == 'E') {
		return realToInt64(textToFloat(s))
	}
	v, err := strconv.ParseInt(s[start:i], 10, 64)
	if err != nil {
		// Out of int64 range; fall back to the real interpretation, which
		// clamps.
		return realToInt64(textToFloat(s))
	}
	return v
}

// textToFloat parses the leading floating-point prefix of s, returning 0
// when no digits lead the text.
func textToFloat(s string) float64 {
	prefix := floatPrefix(s)
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0
	}
	return v
}

// floatPrefix returns the longest leading substring of s (after optional
// whitespace) that reads as a decimal floating-point literal.
func floatPrefix(s string) string {
	i := skipSpace(s)
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	intDigits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		intDigits++
	}
	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		j := i + 1
		for j < len(s) && isDigit(s[j]) {
			j++
			fracDigits++
		}
		i = j
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			expDigits++
		}
		if expDigits > 0 {
			i = j
		}
	}
	return s[start:i]
}

// formatReal renders a float the way the engine's text coercion does:
// shortest decimal form, with ".0" appended to whole finite numbers.
func formatReal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}
	return s
}

func skipSpace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r' || s[i] == '\f' || s[i] == '\v') {
		i++
	}
	return i
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
