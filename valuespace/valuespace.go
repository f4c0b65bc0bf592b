package valuespace

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/google/uuid"
)

// Kind tags the supported value-space domains.
type Kind int

const (
	// KindInt is the native-integer-ordered domain.
	KindInt Kind = iota
	// KindDatetime is ordered by absolute instant.
	KindDatetime
	// KindUUID is the 128-bit, uniformly-distributed UUID-v4 domain.
	KindUUID
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindDatetime:
		return "datetime"
	case KindUUID:
		return "uuid"
	default:
		return fmt.Sprintf("valuespace.Kind(%d)", int(k))
	}
}

// Value is a single point in one of the supported value spaces. It is
// implemented by exactly [IntValue], [DatetimeValue], and [UUIDValue];
// mixing implementations across a single operation is a programming error:
// [Interpolate] returns [ErrMixedDomain], and the typed Less methods panic
// with it.
type Value interface {
	// Kind reports which domain this value belongs to.
	Kind() Kind
	// Less reports whether this value sorts strictly before other in the
	// domain's natural order. Both values must share a Kind.
	Less(other Value) bool
	// CanonicalText renders the value in its canonical textual form.
	CanonicalText() string
}

// IntValue is a point in the native-integer-ordered domain.
type IntValue int64

func (v IntValue) Kind() Kind { return KindInt }

func (v IntValue) Less(other Value) bool {
	o, ok := other.(IntValue)
	if !ok {
		panic(ErrMixedDomain)
	}
	return v < o
}

func (v IntValue) CanonicalText() string {
	return strconv.FormatInt(int64(v), 10)
}

// DatetimeValue is a point ordered by absolute instant.
type DatetimeValue time.Time

func (v DatetimeValue) Kind() Kind { return KindDatetime }

func (v DatetimeValue) Less(other Value) bool {
	o, ok := other.(DatetimeValue)
	if !ok {
		panic(ErrMixedDomain)
	}
	return time.Time(v).Before(time.Time(o))
}

func (v DatetimeValue) CanonicalText() string {
	var buf bytes.Buffer
	graphql.MarshalTime(time.Time(v)).MarshalGQL(&buf)
	return unquote(buf.String())
}

// UUIDValue is a point in the 128-bit, uniformly-distributed UUID-v4 domain.
type UUIDValue uuid.UUID

func (v UUIDValue) Kind() Kind { return KindUUID }

func (v UUIDValue) Less(other Value) bool {
	o, ok := other.(UUIDValue)
	if !ok {
		panic(ErrMixedDomain)
	}
	return bytesLess(v[:], o[:])
}

func (v UUIDValue) CanonicalText() string {
	var buf bytes.Buffer
	graphql.MarshalUUID(uuid.UUID(v)).MarshalGQL(&buf)
	return unquote(buf.String())
}

func bytesLess(a, b []byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// unquote strips the surrounding double quotes gqlgen's scalar marshalers
// emit when writing a GraphQL string literal.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// Less reports whether a sorts strictly before b. Both must share a Kind.
func Less(a, b Value) bool {
	return a.Less(b)
}

// CanonicalText renders v in its canonical textual form.
func CanonicalText(v Value) string {
	return v.CanonicalText()
}

// FromCanonicalText parses text as a value of the given kind.
func FromCanonicalText(kind Kind, text string) (Value, error) {
	switch kind {
	case KindInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("valuespace: parse int %q: %w", text, err)
		}
		return IntValue(n), nil
	case KindDatetime:
		t, err := graphql.UnmarshalTime(text)
		if err != nil {
			return nil, fmt.Errorf("valuespace: parse datetime %q: %w", text, err)
		}
		return DatetimeValue(t), nil
	case KindUUID:
		u, err := graphql.UnmarshalUUID(text)
		if err != nil {
			return nil, fmt.Errorf("valuespace: parse uuid %q: %w", text, err)
		}
		return UUIDValue(u), nil
	default:
		return nil, fmt.Errorf("valuespace: unsupported kind %v", kind)
	}
}

// FromAny converts a native Go value bound to a parameter (an int, int64,
// time.Time, uuid.UUID, or a string already in canonical text form) into a
// Value of the given kind.
func FromAny(kind Kind, v any) (Value, error) {
	switch val := v.(type) {
	case string:
		return FromCanonicalText(kind, val)
	case int:
		if kind != KindInt {
			return nil, fmt.Errorf("valuespace: int value incompatible with kind %v", kind)
		}
		return IntValue(val), nil
	case int64:
		if kind != KindInt {
			return nil, fmt.Errorf("valuespace: int64 value incompatible with kind %v", kind)
		}
		return IntValue(val), nil
	case time.Time:
		if kind != KindDatetime {
			return nil, fmt.Errorf("valuespace: time.Time value incompatible with kind %v", kind)
		}
		return DatetimeValue(val), nil
	case uuid.UUID:
		if kind != KindUUID {
			return nil, fmt.Errorf("valuespace: uuid.UUID value incompatible with kind %v", kind)
		}
		return UUIDValue(val), nil
	default:
		return nil, fmt.Errorf("valuespace: unsupported parameter value type %T", v)
	}
}

// Interpolate returns the value a fraction of the way from lo to hi
// (fraction in [0,1]), using each domain's natural arithmetic. lo and hi
// must share a Kind, or ErrMixedDomain is returned.
func Interpolate(lo, hi Value, fraction float64) (Value, error) {
	switch loVal := lo.(type) {
	case IntValue:
		hiVal, ok := hi.(IntValue)
		if !ok {
			return nil, ErrMixedDomain
		}
		delta := float64(hiVal - loVal)
		return IntValue(int64(loVal) + roundToInt64(delta*fraction)), nil
	case DatetimeValue:
		hiVal, ok := hi.(DatetimeValue)
		if !ok {
			return nil, ErrMixedDomain
		}
		loMicros := time.Time(loVal).UnixMicro()
		hiMicros := time.Time(hiVal).UnixMicro()
		delta := float64(hiMicros - loMicros)
		micros := loMicros + roundToInt64(delta*fraction)
		return DatetimeValue(time.UnixMicro(micros).UTC()), nil
	case UUIDValue:
		hiVal, ok := hi.(UUIDValue)
		if !ok {
			return nil, ErrMixedDomain
		}
		return interpolateUUID(loVal, hiVal, fraction), nil
	default:
		return nil, fmt.Errorf("valuespace: unsupported value type %T", lo)
	}
}

func roundToInt64(f float64) int64 {
	if f >= 0 {
		return int64(f + 0.5)
	}
	return -int64(-f + 0.5)
}

// interpolateUUID performs exact 128-bit arithmetic: lo + round((hi-lo)*t).
// It scales the float64 fraction through a fixed-point big.Int ratio; for
// the exact rational fractions (i/N) the quantile engine needs, callers
// should prefer [InterpolateUUIDFraction], which is exact by construction.
func interpolateUUID(lo, hi UUIDValue, fraction float64) UUIDValue {
	loInt := new(big.Int).SetBytes(lo[:])
	hiInt := new(big.Int).SetBytes(hi[:])

	delta := new(big.Int).Sub(hiInt, loInt)

	const scale = 1 << 53
	numerator := new(big.Int).Mul(delta, big.NewInt(int64(fraction*scale)))
	numerator.Add(numerator, big.NewInt(scale/2))
	offset := new(big.Int).Div(numerator, big.NewInt(scale))

	result := new(big.Int).Add(loInt, offset)

	var out [16]byte
	result.FillBytes(out[:])
	return UUIDValue(out)
}

// InterpolateUUIDFraction returns lo + floor((hi-lo+1) * numerator /
// denominator), computed with exact big.Int arithmetic over the inclusive
// lattice [lo, hi]. This is what the quantile engine uses to synthesize the
// analytic UUID-v4 quantile boundaries: for the full space and an exact i/N
// split it reproduces the canonical boundaries bit for bit,
// which a float64-based interpolation cannot guarantee.
func InterpolateUUIDFraction(lo, hi UUIDValue, numerator, denominator int64) UUIDValue {
	loInt := new(big.Int).SetBytes(lo[:])
	hiInt := new(big.Int).SetBytes(hi[:])

	span := new(big.Int).Sub(hiInt, loInt)
	span.Add(span, big.NewInt(1))

	offset := new(big.Int).Mul(span, big.NewInt(numerator))
	offset.Div(offset, big.NewInt(denominator))

	result := new(big.Int).Add(loInt, offset)

	var out [16]byte
	result.FillBytes(out[:])
	return UUIDValue(out)
}

// FullUUIDSpace returns the bounds of the entire 128-bit UUID value space,
// [0, 2^128).
func FullUUIDSpace() (lo, hi UUIDValue) {
	var loArr, hiArr [16]byte
	for i := range hiArr {
		hiArr[i] = 0xff
	}
	return UUIDValue(loArr), UUIDValue(hiArr)
}

// ErrMixedDomain is returned (or, from the typed Less methods, panicked with)
// when an operation is asked to compare or interpolate values that do not
// share a Kind. The arithmetic module is closed over the types declared for
// a field; mixing domains is a programming error.
var ErrMixedDomain = fmt.Errorf("valuespace: mixed value-space domains")
