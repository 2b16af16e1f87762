package engine

import (
	"math"
	"testing"

	"github.com/wippyai/tachyon-bridge/resource"
	"github.com/wippyai/tachyon-bridge/signature"
)

func TestValue_Accessors(t *testing.T) {
	tests := []struct {
		v    Value
		kind signature.Kind
		str  string
	}{
		{Void(), signature.Void, "void"},
		{Boolean(true), signature.Boolean, "boolean(true)"},
		{Byte(-3), signature.Byte, "byte(-3)"},
		{Char(65), signature.Char, "char(65)"},
		{Short(-300), signature.Short, "short(-300)"},
		{Int(math.MinInt32), signature.Int, "int(-2147483648)"},
		{Long(math.MaxInt64), signature.Long, "long(9223372036854775807)"},
		{Float(1.5), signature.Float, "float(1.5)"},
		{Double(-0.25), signature.Double, "double(-0.25)"},
		{Object(0), signature.Object, "object(null)"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if tt.v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", tt.v.Kind(), tt.kind)
			}
			if tt.v.String() != tt.str {
				t.Errorf("String() = %q, want %q", tt.v.String(), tt.str)
			}
		})
	}
}

func TestValue_InactiveVariantsAreZero(t *testing.T) {
	v := Int(42)
	if v.Long() != 0 || v.Bool() || v.Double() != 0 || !v.Ref().IsNull() {
		t.Error("inactive accessors should return zero values")
	}
	if v.Int() != 42 {
		t.Errorf("Int() = %d", v.Int())
	}

	if Boolean(false).Bool() {
		t.Error("Boolean(false).Bool() should be false")
	}
	if Byte(-1).Byte() != -1 || Short(-1).Short() != -1 {
		t.Error("signed narrow values should round trip")
	}
	if Float(3.25).Float() != 3.25 {
		t.Error("Float round trip")
	}
}

func TestValue_Integer(t *testing.T) {
	if n, ok := Byte(-5).Integer(); !ok || n != -5 {
		t.Errorf("Byte(-5).Integer() = %d, %v", n, ok)
	}
	if n, ok := Char(0xFFFF).Integer(); !ok || n != 0xFFFF {
		t.Errorf("Char.Integer() = %d, %v", n, ok)
	}
	if _, ok := Double(1).Integer(); ok {
		t.Error("Double should not be integral")
	}
}

func TestRef_Kinds(t *testing.T) {
	var null Ref
	if null.Kind() != RefNull || !null.IsNull() || null.String() != "null" {
		t.Errorf("null ref: %v %v %q", null.Kind(), null.IsNull(), null.String())
	}

	table := resource.NewTable()
	h := table.Insert(0, "x")

	l := localRef(h)
	g := globalRef(h)
	if l.Kind() != RefLocal || g.Kind() != RefGlobal {
		t.Errorf("kinds: %v %v", l.Kind(), g.Kind())
	}
	if l.handle() != h || g.handle() != h {
		t.Error("handle should survive tagging")
	}
	if l == g {
		t.Error("local and global refs for the same handle must differ")
	}
}
