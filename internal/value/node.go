// Package value holds the literal-value tree produced by the value parser.
//
// A tree is built once by a parse call and never mutated afterwards; every
// Node is owned by exactly one container.
package value

import "sort"

// Kind identifies the concrete Node variant.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Node is one of Object, Array, Int, Float, String, Bool, Null.
type Node interface {
	Kind() Kind
	node()
}

type (
	// Object maps keys to values; a repeated key keeps the last value.
	// Iteration order carries no meaning, use Keys for a stable order.
	Object map[string]Node
	// Array is an ordered sequence of values.
	Array  []Node
	Int    int64
	Float  float64
	String string
	Bool   bool
	// Null is the null literal.
	Null struct{}
)

func (Object) Kind() Kind { return KindObject }
func (Array) Kind() Kind  { return KindArray }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }
func (Bool) Kind() Kind   { return KindBool }
func (Null) Kind() Kind   { return KindNull }

func (Object) node() {}
func (Array) node()  {}
func (Int) node()    {}
func (Float) node()  {}
func (String) node() {}
func (Bool) node()   {}
func (Null) node()   {}

// Keys returns the object keys in ascending order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Depth returns the container nesting depth of n: 0 for scalars,
// 1 for a flat array or object.
func Depth(n Node) int {
	best := 0
	switch v := n.(type) {
	case Object:
		for _, child := range v {
			best = max(best, Depth(child))
		}
		return best + 1
	case Array:
		for _, child := range v {
			best = max(best, Depth(child))
		}
		return best + 1
	}
	return 0
}
