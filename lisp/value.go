package lisp

import (
	"fmt"
	"strings"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	KindInteger ValueKind = iota
	KindBoolean
	KindSymbol
	KindPair
	KindBuiltin
	KindClosure
	KindLambdaTemplate
)

// BuiltinFunc is a native procedure. It receives the raw, unevaluated
// operand sequence of the call together with the call's scope; special
// forms rely on operands being unevaluated, and ordinary procedures
// evaluate them explicitly before use (§4.4).
type BuiltinFunc func(args []*Value, scope *Scope) *Value

// Value is the tagged sum described in §3: Integer, Boolean, Symbol,
// Pair, BuiltIn, Closure, and LambdaTemplate all live in one struct, the
// way the teacher's Expr folds car/cdr/atom into a single type. Nil (the
// empty marker) is the Go nil *Value; it is not itself a Value of any
// kind below.
type Value struct {
	Kind ValueKind

	Int int64
	Bit bool
	Sym string

	car, cdr *Value

	builtinName string
	builtin     BuiltinFunc

	params []string
	body   []*Value
	env    *Scope
}

func NewInteger(n int64) *Value {
	return &Value{Kind: KindInteger, Int: n}
}

var (
	valueTrue  = &Value{Kind: KindBoolean, Bit: true}
	valueFalse = &Value{Kind: KindBoolean, Bit: false}
)

// NewBoolean returns the (shared) Boolean value for b.
func NewBoolean(b bool) *Value {
	if b {
		return valueTrue
	}
	return valueFalse
}

func NewSymbol(name string) *Value {
	return &Value{Kind: KindSymbol, Sym: name}
}

// Cons builds a Pair cell. Either argument may be nil.
func Cons(car, cdr *Value) *Value {
	return &Value{Kind: KindPair, car: car, cdr: cdr}
}

func newBuiltin(name string, fn BuiltinFunc) *Value {
	return &Value{Kind: KindBuiltin, builtinName: name, builtin: fn}
}

func newLambdaTemplate(params []string, body []*Value, env *Scope) *Value {
	return &Value{Kind: KindLambdaTemplate, params: params, body: body, env: env}
}

func newClosure(params []string, body []*Value, env *Scope) *Value {
	return &Value{Kind: KindClosure, params: params, body: body, env: env}
}

// Car returns the car field of v, or nil if v is not a Pair. Car and Cdr
// are package functions rather than methods, as in the teacher, so that
// chains like (cadr x) read as Car(Cdr(x)), not x.Cdr().Car().
func Car(v *Value) *Value {
	if v == nil || v.Kind != KindPair {
		return nil
	}
	return v.car
}

// Cdr returns the cdr field of v, or nil if v is not a Pair.
func Cdr(v *Value) *Value {
	if v == nil || v.Kind != KindPair {
		return nil
	}
	return v.cdr
}

// SetCar mutates v's car in place. Callers must ensure v is a Pair.
func SetCar(v, car *Value) {
	v.car = car
}

// SetCdr mutates v's cdr in place. Callers must ensure v is a Pair.
func SetCdr(v, cdr *Value) {
	v.cdr = cdr
}

// IsPair reports whether v is a Pair cell.
func IsPair(v *Value) bool {
	return v != nil && v.Kind == KindPair
}

// IsSymbol reports whether v is a Symbol.
func IsSymbol(v *Value) bool {
	return v != nil && v.Kind == KindSymbol
}

// IsCallable reports whether v may be invoked as a procedure.
func IsCallable(v *Value) bool {
	return v != nil && (v.Kind == KindBuiltin || v.Kind == KindClosure)
}

// IsTruthy implements §3's truthiness rule: #f is the only falsy value.
func IsTruthy(v *Value) bool {
	return !(v != nil && v.Kind == KindBoolean && !v.Bit)
}

// IsProperList reports whether v is nil or a Pair whose cdr is, in turn,
// a proper list.
func IsProperList(v *Value) bool {
	for {
		if v == nil {
			return true
		}
		if v.Kind != KindPair {
			return false
		}
		v = v.cdr
	}
}

// Length reports the number of elements in the top level of a list,
// stopping at the first non-Pair cdr (an improper tail does not count).
func Length(v *Value) int {
	n := 0
	for IsPair(v) {
		n++
		v = v.cdr
	}
	return n
}

// Eq implements structural identity for atoms: symbols compare by name,
// integers and booleans by value; everything else compares by pointer.
func Eq(a, b *Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInteger:
		return a.Int == b.Int
	case KindBoolean:
		return a.Bit == b.Bit
	case KindSymbol:
		return a.Sym == b.Sym
	default:
		return a == b
	}
}

// Serialize renders v per §4.5: integers as decimal, booleans as #t/#f,
// symbols by name, nil as (), pairs parenthesized (with dotted notation
// for improper tails), and procedures as the empty string.
func Serialize(v *Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("()")
		return
	}
	switch v.Kind {
	case KindInteger:
		fmt.Fprintf(b, "%d", v.Int)
	case KindBoolean:
		if v.Bit {
			b.WriteString("#t")
		} else {
			b.WriteString("#f")
		}
	case KindSymbol:
		b.WriteString(v.Sym)
	case KindPair:
		writePair(b, v)
	case KindBuiltin, KindClosure, KindLambdaTemplate:
		// not printable
	}
}

func writePair(b *strings.Builder, v *Value) {
	if v.car == nil && v.cdr == nil {
		b.WriteString("(())")
		return
	}
	b.WriteByte('(')
	cur := v
	first := true
	for {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		writeValue(b, cur.car)
		if cur.cdr == nil {
			break
		}
		if cur.cdr.Kind != KindPair {
			b.WriteString(" . ")
			writeValue(b, cur.cdr)
			break
		}
		cur = cur.cdr
	}
	b.WriteByte(')')
}
