package engine

import (
	"fmt"
	"math"

	"github.com/wippyai/tachyon-bridge/signature"
)

// Value is the result of a remote call or one argument to it.
// Exactly one variant is active, selected by Kind; accessors for any other
// variant return the zero value. Array-typed results are carried as Object.
type Value struct {
	bits uint64
	ref  Ref
	kind signature.Kind
}

func Void() Value { return Value{kind: signature.Void} }

func Boolean(b bool) Value {
	v := Value{kind: signature.Boolean}
	if b {
		v.bits = 1
	}
	return v
}

func Byte(b int8) Value     { return Value{kind: signature.Byte, bits: uint64(int64(b))} }
func Char(c uint16) Value   { return Value{kind: signature.Char, bits: uint64(c)} }
func Short(s int16) Value   { return Value{kind: signature.Short, bits: uint64(int64(s))} }
func Int(i int32) Value     { return Value{kind: signature.Int, bits: uint64(int64(i))} }
func Long(l int64) Value    { return Value{kind: signature.Long, bits: uint64(l)} }
func Float(f float32) Value { return Value{kind: signature.Float, bits: uint64(math.Float32bits(f))} }
func Double(d float64) Value {
	return Value{kind: signature.Double, bits: math.Float64bits(d)}
}
func Object(r Ref) Value { return Value{kind: signature.Object, ref: r} }

// Kind returns the active variant.
func (v Value) Kind() signature.Kind { return v.kind }

func (v Value) Bool() bool {
	return v.kind == signature.Boolean && v.bits != 0
}

func (v Value) Byte() int8 {
	if v.kind != signature.Byte {
		return 0
	}
	return int8(v.bits)
}

func (v Value) Char() uint16 {
	if v.kind != signature.Char {
		return 0
	}
	return uint16(v.bits)
}

func (v Value) Short() int16 {
	if v.kind != signature.Short {
		return 0
	}
	return int16(v.bits)
}

func (v Value) Int() int32 {
	if v.kind != signature.Int {
		return 0
	}
	return int32(v.bits)
}

func (v Value) Long() int64 {
	if v.kind != signature.Long {
		return 0
	}
	return int64(v.bits)
}

func (v Value) Float() float32 {
	if v.kind != signature.Float {
		return 0
	}
	return math.Float32frombits(uint32(v.bits))
}

func (v Value) Double() float64 {
	if v.kind != signature.Double {
		return 0
	}
	return math.Float64frombits(v.bits)
}

// Ref returns the object reference, or null for non-object values.
func (v Value) Ref() Ref {
	if v.kind != signature.Object {
		return 0
	}
	return v.ref
}

// Integer returns any integral variant widened to int64.
func (v Value) Integer() (int64, bool) {
	switch v.kind {
	case signature.Byte, signature.Short, signature.Int, signature.Long:
		return int64(v.bits), true
	case signature.Char:
		return int64(uint16(v.bits)), true
	}
	return 0, false
}

func (v Value) String() string {
	switch v.kind {
	case signature.Void:
		return "void"
	case signature.Boolean:
		return fmt.Sprintf("boolean(%t)", v.Bool())
	case signature.Float:
		return fmt.Sprintf("float(%g)", v.Float())
	case signature.Double:
		return fmt.Sprintf("double(%g)", v.Double())
	case signature.Object:
		return fmt.Sprintf("object(%s)", v.ref)
	}
	n, _ := v.Integer()
	return fmt.Sprintf("%s(%d)", v.kind, n)
}
