package flow

import (
	"fmt"
	"image/color"
	"reflect"
)

type ValueKind int

const (
	KindNil ValueKind = iota
	KindNumber
	KindString
	KindBool
	KindColor
	KindAny
)

// Value is the tagged union stored in a node's property bag.
type Value struct {
	kind ValueKind
	num  float64
	str  string
	b    bool
	col  color.RGBA
	any  any
}

func Number(f float64) Value { return Value{kind: KindNumber, num: f} }
func String(s string) Value { return Value{kind: KindString, str: s} }
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }
func Color(c color.RGBA) Value { return Value{kind: KindColor, col: c} }
func Any(v any) Value { return Value{kind: KindAny, any: v} }

func (v Value) Kind() ValueKind { return v.kind }

func (v Value) IsNil() bool { return v.kind == KindNil }

func (v Value) AsNumber() (float64, bool) { return v.num, v.kind == KindNumber }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsColor() (color.RGBA, bool) { return v.col, v.kind == KindColor }

func (v Value) AsAny() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindColor:
		return v.col
	}
	return v.any
}

// Equal compares by kind and primitive value. Wrapped values compare with
// ==, and values of non-comparable types never compare equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNil:
		return true
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindBool:
		return v.b == o.b
	case KindColor:
		return v.col == o.col
	}
	if v.any == nil || o.any == nil {
		return v.any == nil && o.any == nil
	}
	if !reflect.TypeOf(v.any).Comparable() || !reflect.TypeOf(o.any).Comparable() {
		return false
	}
	return v.any == o.any
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "<nil>"
	case KindString:
		return v.str
	case KindColor:
		return fmt.Sprintf("#%02x%02x%02x", v.col.R, v.col.G, v.col.B)
	}
	return fmt.Sprint(v.AsAny())
}
