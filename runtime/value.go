package bruntime

import "strconv"

type ValueKind int

const (
	NumberKind ValueKind = iota
	BoolKind
	StringKind
)

// Value is an evaluator result: a number, a boolean or a string. Variables
// themselves are stored as text; a Value only exists between evaluating an
// expression and rendering it back into the variable table or a condition.
type Value struct {
	kind ValueKind
	n    float64
	b    bool
	s    string
}

func Num(v float64) Value {
	return Value{kind: NumberKind, n: v}
}

func Bool(v bool) Value {
	return Value{kind: BoolKind, b: v}
}

func Str(v string) Value {
	return Value{kind: StringKind, s: v}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

func (v Value) Float64() float64 {
	switch v.kind {
	case NumberKind:
		return v.n
	case BoolKind:
		if v.b {
			return 1
		}
		return 0
	default:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return 0
		}
		return f
	}
}

func (v Value) String() string {
	switch v.kind {
	case NumberKind:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	case BoolKind:
		return strconv.FormatBool(v.b)
	default:
		return v.s
	}
}

func (v Value) Truthy() bool {
	switch v.kind {
	case NumberKind:
		return v.n != 0
	case BoolKind:
		return v.b
	default:
		return v.s != ""
	}
}

func (v Value) isNumeric() bool {
	return v.kind == NumberKind || v.kind == BoolKind
}
