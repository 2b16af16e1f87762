package bridge

import (
	"fmt"
	"math"
	"strconv"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
	"github.com/wippyai/tachyon-bridge/signature"
)

// Referencer is implemented by values that stand for a remote object,
// such as facades. Ref fails once the object has been closed.
type Referencer interface {
	Ref() (engine.Ref, error)
}

// Enum is implemented by Go enums with a remote counterpart.
// RemoteEnum returns the enum class and constant name, or an
// invalid_enum error for values without one.
type Enum interface {
	RemoteEnum() (class, name string, err error)
}

const objectClass = "java/lang/Object"

type argKind uint8

const (
	argValue argKind = iota
	argString
	argBytes
	argEnum
)

// arg is one argument after validation. Values that need a remote
// allocation are kept in Go form until the call frame is open.
type arg struct {
	v         engine.Value
	s         string
	b         []byte
	enumClass string
	enumName  string
	kind      argKind
}

func argPath(m *Method, i int) []string {
	return []string{m.String(), "arg" + strconv.Itoa(i)}
}

// prepare validates and converts every argument without touching the
// runtime, so bad input fails before any remote call.
func prepare(m *Method, args []any) ([]arg, error) {
	params := m.Sig.Params
	if len(args) != len(params) {
		return nil, errors.New(errors.PhaseEncode, errors.KindInvalidInput).
			Path(m.String()).
			Detail("takes %d arguments, got %d", len(params), len(args)).
			Build()
	}
	out := make([]arg, len(args))
	for i, a := range args {
		p, err := prepareOne(m, i, params[i], a)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func prepareOne(m *Method, i int, t signature.Type, a any) (arg, error) {
	mismatch := func() error {
		return errors.TypeMismatch(errors.PhaseEncode, argPath(m, i), fmt.Sprintf("%T", a), t.String())
	}

	if v, ok := a.(engine.Value); ok {
		want := t.Kind
		if want == signature.Array {
			want = signature.Object
		}
		if v.Kind() != want {
			return arg{}, mismatch()
		}
		return arg{v: v}, nil
	}

	switch t.Kind {
	case signature.Boolean:
		b, ok := a.(bool)
		if !ok {
			return arg{}, mismatch()
		}
		return arg{v: engine.Boolean(b)}, nil

	case signature.Byte, signature.Char, signature.Short, signature.Int, signature.Long:
		n, ok, overflow := integer(a)
		if b, isBool := a.(bool); isBool && (t.Kind == signature.Int || t.Kind == signature.Long) {
			n, ok = 0, true
			if b {
				n = 1
			}
		}
		if !ok {
			return arg{}, mismatch()
		}
		if overflow || !fits(n, t.Kind) {
			return arg{}, errors.Overflow(errors.PhaseEncode, argPath(m, i), a, t.String())
		}
		return arg{v: narrow(n, t.Kind)}, nil

	case signature.Float, signature.Double:
		f, ok := float(a)
		if !ok {
			return arg{}, mismatch()
		}
		if t.Kind == signature.Double {
			return arg{v: engine.Double(f)}, nil
		}
		if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
			return arg{}, errors.Overflow(errors.PhaseEncode, argPath(m, i), a, t.String())
		}
		return arg{v: engine.Float(float32(f))}, nil

	case signature.Object, signature.Array:
		return prepareRef(t, a, mismatch)
	}
	return arg{}, mismatch()
}

func prepareRef(t signature.Type, a any, mismatch func() error) (arg, error) {
	switch x := a.(type) {
	case nil:
		return arg{v: engine.Object(0)}, nil
	case engine.Ref:
		return arg{v: engine.Object(x)}, nil
	case string:
		if t.Is(signature.StringClass) || t.Is(objectClass) {
			return arg{s: x, kind: argString}, nil
		}
	case []byte:
		if t.IsByteArray() || t.Is(objectClass) {
			return arg{b: x, kind: argBytes}, nil
		}
	case Enum:
		class, name, err := x.RemoteEnum()
		if err != nil {
			return arg{}, err
		}
		if t.Is(class) || t.Is(objectClass) {
			return arg{enumClass: class, enumName: name, kind: argEnum}, nil
		}
	case Referencer:
		r, err := x.Ref()
		if err != nil {
			return arg{}, err
		}
		return arg{v: engine.Object(r)}, nil
	}
	return arg{}, mismatch()
}

// materialise performs the allocations an argument needs. Refs it creates
// belong to the caller's open frame.
func (a arg) materialise(env engine.Env) (engine.Value, error) {
	switch a.kind {
	case argString:
		r, err := NewString(env, a.s)
		if err != nil {
			return engine.Void(), err
		}
		return engine.Object(r), nil
	case argBytes:
		r, err := NewByteArrayFrom(env, a.b)
		if err != nil {
			return engine.Void(), err
		}
		return engine.Object(r), nil
	case argEnum:
		cls := env.FindClass(a.enumClass)
		if th := CheckAndClear(env); th != nil {
			return engine.Void(), th
		}
		r := env.GetStaticObjectField(cls, a.enumName, "L"+a.enumClass+";")
		if th := CheckAndClear(env); th != nil {
			return engine.Void(), th
		}
		return engine.Object(r), nil
	}
	return a.v, nil
}

// integer widens any Go integer to int64. overflow is set for uint64
// values above math.MaxInt64.
func integer(a any) (n int64, ok, overflow bool) {
	switch x := a.(type) {
	case int:
		return int64(x), true, false
	case int8:
		return int64(x), true, false
	case int16:
		return int64(x), true, false
	case int32:
		return int64(x), true, false
	case int64:
		return x, true, false
	case uint:
		return int64(x), true, uint64(x) > math.MaxInt64
	case uint8:
		return int64(x), true, false
	case uint16:
		return int64(x), true, false
	case uint32:
		return int64(x), true, false
	case uint64:
		return int64(x), true, x > math.MaxInt64
	}
	return 0, false, false
}

func float(a any) (float64, bool) {
	switch x := a.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	if n, ok, overflow := integer(a); ok && !overflow {
		return float64(n), true
	}
	return 0, false
}

func fits(n int64, k signature.Kind) bool {
	switch k {
	case signature.Byte:
		return n >= math.MinInt8 && n <= math.MaxInt8
	case signature.Char:
		return n >= 0 && n <= math.MaxUint16
	case signature.Short:
		return n >= math.MinInt16 && n <= math.MaxInt16
	case signature.Int:
		return n >= math.MinInt32 && n <= math.MaxInt32
	}
	return true
}

func narrow(n int64, k signature.Kind) engine.Value {
	switch k {
	case signature.Byte:
		return engine.Byte(int8(n))
	case signature.Char:
		return engine.Char(uint16(n))
	case signature.Short:
		return engine.Short(int16(n))
	case signature.Int:
		return engine.Int(int32(n))
	}
	return engine.Long(n)
}
