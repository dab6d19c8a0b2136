// Package document provides the untyped document tree and the hand-written
// parser for level definition files.
package document

// Kind identifies which arm of the Value union is populated.
type Kind int

// Value kinds.
const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	ObjectKind
	ArrayKind
)

// String returns the lower-case name of k.
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	default:
		return "unknown"
	}
}

// Value is one node of a parsed document. Exactly one arm is meaningful,
// selected by Kind. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	obj  *Object
	arr  []Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool wraps b.
func Bool(b bool) Value { return Value{kind: BoolKind, b: b} }

// Number wraps n.
func Number(n float64) Value { return Value{kind: NumberKind, n: n} }

// String wraps s.
func String(s string) Value { return Value{kind: StringKind, s: s} }

// ObjectValue wraps o. A nil o is replaced by an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: ObjectKind, obj: o}
}

// Array wraps items. A nil slice is replaced by an empty one.
func Array(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ArrayKind, arr: items}
}

// Kind reports the populated arm.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null Value.
func (v Value) IsNull() bool { return v.kind == NullKind }

// AsBool returns the boolean arm.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == BoolKind }

// AsNumber returns the numeric arm.
func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == NumberKind }

// AsString returns the string arm.
func (v Value) AsString() (string, bool) { return v.s, v.kind == StringKind }

// AsObject returns the object arm.
func (v Value) AsObject() (*Object, bool) { return v.obj, v.kind == ObjectKind }

// AsArray returns the array arm.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == ArrayKind }

// Object is an ordered string-keyed mapping. Keys keep the position of their
// first insertion; setting an existing key replaces its value in place.
type Object struct {
	keys   []string
	values []Value
	index  map[string]int
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set stores v under key.
//
// Postcondition: Get(key) returns v; Keys() order is unchanged if key existed.
func (o *Object) Set(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.values[i] = v
		return
	}
	o.index[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return Value{}, false
	}
	return o.values[i], true
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Len returns the number of keys.
func (o *Object) Len() int { return len(o.keys) }
