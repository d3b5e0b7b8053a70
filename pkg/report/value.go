package report

// Kind discriminates the members of the Value sum type.
type Kind int

const (
	KindMissing Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
)

// Value is a variant-typed setting value read from one of the
// configuration sources. A value never outlives the probe that
// produced it; probes render it with source-specific rules.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// MissingValue returns the absent member of the sum.
func MissingValue() Value { return Value{kind: KindMissing} }

// BoolValue wraps a boolean.
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }

// IntValue wraps an integer.
func IntValue(v int64) Value { return Value{kind: KindInt, i: v} }

// FloatValue wraps a floating-point number.
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }

// StringValue wraps a string.
func StringValue(v string) Value { return Value{kind: KindString, s: v} }

// Kind returns the discriminator.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean member. Valid only for KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer member. Valid only for KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the floating-point member. Valid only for KindFloat.
func (v Value) Float() float64 { return v.f }

// String returns the string member. Valid only for KindString.
func (v Value) String() string { return v.s }
