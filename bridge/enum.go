package bridge

import (
	"fmt"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

var enumName = MustVirtual("java/lang/Enum", "name", "()Ljava/lang/String;")

// EnumTable maps a Go enum onto the constants of a remote enum class by
// name. The table is fixed at construction.
type EnumTable[T comparable] struct {
	names  map[T]string
	values map[string]T
	class  string
}

// NewEnumTable builds a table for class. It panics on duplicate names, as
// tables are package-level literals.
func NewEnumTable[T comparable](class string, names map[T]string) *EnumTable[T] {
	t := &EnumTable[T]{
		class:  class,
		names:  make(map[T]string, len(names)),
		values: make(map[string]T, len(names)),
	}
	for v, n := range names {
		if _, dup := t.values[n]; dup {
			panic(fmt.Sprintf("bridge: duplicate constant %s in enum table %s", n, class))
		}
		t.names[v] = n
		t.values[n] = v
	}
	return t
}

// Class returns the remote enum class.
func (t *EnumTable[T]) Class() string { return t.class }

// Name returns the remote constant name of v.
func (t *EnumTable[T]) Name(v T) (string, bool) {
	n, ok := t.names[v]
	return n, ok
}

// Lookup returns the value for a remote constant name.
func (t *EnumTable[T]) Lookup(name string) (T, bool) {
	v, ok := t.values[name]
	return v, ok
}

// Remote implements the body of Enum.RemoteEnum for values of T.
func (t *EnumTable[T]) Remote(v T) (class, name string, err error) {
	n, ok := t.names[v]
	if !ok {
		return "", "", errors.InvalidEnum(errors.PhaseEncode, nil, v, t.class)
	}
	return t.class, n, nil
}

// Encode returns a local ref to the remote constant for v. Values without
// a constant fail with invalid_enum before any remote call.
func (t *EnumTable[T]) Encode(env engine.Env, v T) (engine.Ref, error) {
	n, ok := t.names[v]
	if !ok {
		return 0, errors.InvalidEnum(errors.PhaseEncode, nil, v, t.class)
	}

	env.PushLocalFrame()
	cls := env.FindClass(t.class)
	if err := fault(env, "find "+t.class); err != nil {
		env.PopLocalFrame(0)
		return 0, err
	}
	r := env.GetStaticObjectField(cls, n, "L"+t.class+";")
	if err := fault(env, "constant "+t.class+"."+n); err != nil {
		env.PopLocalFrame(0)
		return 0, err
	}
	return env.PopLocalFrame(r), nil
}

// Decode reads the constant name of a remote enum value and maps it back.
func (t *EnumTable[T]) Decode(env engine.Env, r engine.Ref) (T, error) {
	var zero T
	if r.IsNull() {
		return zero, errors.NilPointer(errors.PhaseDecode, nil, t.class)
	}
	v, err := Call(env, r, enumName)
	if err != nil {
		return zero, err
	}
	n, err := TakeString(env, v.Ref())
	if err != nil {
		return zero, err
	}
	out, ok := t.values[n]
	if !ok {
		return zero, errors.InvalidEnum(errors.PhaseDecode, nil, n, t.class)
	}
	return out, nil
}
