package bridge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

func TestMethod_Descriptors(t *testing.T) {
	m, err := Virtual("test/Box", "get", "()Ljava/lang/String;")
	require.NoError(t, err)
	assert.Equal(t, "test/Box.get()Ljava/lang/String;", m.String())
	assert.False(t, m.Static)
	assert.False(t, m.IsConstructor())

	_, err = Virtual("test/Box", "get", "()Ljava/lang/String")
	requireKind(t, err, errors.KindInvalidData)

	_, err = Constructor("test/Box", "()I")
	requireKind(t, err, errors.KindInvalidData)

	_, err = Static("", "of", "()V")
	requireKind(t, err, errors.KindInvalidInput)

	assert.Panics(t, func() { MustStatic("test/Box", "of", "(") })
}

func TestInvoke_ConstructAndCall(t *testing.T) {
	_, env := newTestEngine(t, nil)
	box := newBox(t, env, "hello")

	v, err := Call(env, box, boxGet)
	require.NoError(t, err)
	s, err := TakeString(env, v.Ref())
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = Call(env, box, boxSet, "world")
	require.NoError(t, err)

	v, err = Call(env, box, boxGet)
	require.NoError(t, err)
	s, err = TakeString(env, v.Ref())
	require.NoError(t, err)
	assert.Equal(t, "world", s)
}

func TestInvoke_Static(t *testing.T) {
	_, env := newTestEngine(t, nil)

	v, err := Call(env, 0, boxOf, "made")
	require.NoError(t, err)
	assert.Equal(t, "test/Box", env.ClassName(v.Ref()))
}

func TestInvoke_Primitives(t *testing.T) {
	_, env := newTestEngine(t, nil)
	box := newBox(t, env, "")

	v, err := Call(env, box, boxSum, int8(1), int16(2), true, int64(1)<<40)
	require.NoError(t, err)
	assert.Equal(t, int64(1)<<40+4, v.Long())

	v, err = Call(env, box, boxSum, 1, uint8(2), uint32(3), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(10), v.Long())

	v, err = Call(env, box, boxHalf, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.5, v.Double())

	v, err = Call(env, box, boxNot, false)
	require.NoError(t, err)
	assert.True(t, v.Bool())

	v, err = Call(env, box, boxNot, engine.Boolean(true))
	require.NoError(t, err)
	assert.False(t, v.Bool())
}

func TestInvoke_ArgumentErrors(t *testing.T) {
	eng, env := newTestEngine(t, nil)
	box := newBox(t, env, "")
	before := eng.Stats()

	tests := []struct {
		name string
		m    *Method
		args []any
		kind errors.Kind
	}{
		{"arity", boxSum, []any{1, 2, 3}, errors.KindInvalidInput},
		{"byte overflow", boxSum, []any{300, 0, 0, 0}, errors.KindOverflow},
		{"short overflow", boxSum, []any{0, 1 << 20, 0, 0}, errors.KindOverflow},
		{"int overflow", boxSum, []any{0, 0, int64(math.MaxInt32) + 1, 0}, errors.KindOverflow},
		{"uint64 overflow", boxSum, []any{0, 0, 0, uint64(math.MaxUint64)}, errors.KindOverflow},
		{"bool for byte", boxSum, []any{true, 0, 0, 0}, errors.KindTypeMismatch},
		{"string for int", boxSum, []any{0, 0, "3", 0}, errors.KindTypeMismatch},
		{"int for string", boxSet, []any{3}, errors.KindTypeMismatch},
		{"string for bytes", boxLen, []any{"abc"}, errors.KindTypeMismatch},
		{"bad utf8", boxSet, []any{"\xff\xfe"}, errors.KindInvalidUTF8},
		{"value kind", boxNot, []any{engine.Int(1)}, errors.KindTypeMismatch},
		{"unknown enum", boxMode, []any{modeBogus}, errors.KindInvalidEnum},
		{"float for bool", boxNot, []any{1.0}, errors.KindTypeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Invoke(env, box, tt.m, tt.args...)
			requireKind(t, err, tt.kind)
			assert.False(t, env.ExceptionCheck())
		})
	}

	assert.Equal(t, before, eng.Stats(), "failed argument checks must not leak refs")
}

func TestInvoke_NilTarget(t *testing.T) {
	_, env := newTestEngine(t, nil)

	_, err := Invoke(env, 0, boxGet)
	requireKind(t, err, errors.KindNilPointer)

	_, err = Invoke(nil, 0, boxGet)
	requireKind(t, err, errors.KindNotAttached)

	_, err = Invoke(env, 0, nil)
	requireKind(t, err, errors.KindNilPointer)
}

func TestInvoke_ReleasesTransientRefs(t *testing.T) {
	eng, env := newTestEngine(t, nil)
	box := newBox(t, env, "")
	before := eng.Stats()

	for i := 0; i < 100; i++ {
		_, err := Call(env, box, boxSet, "some string argument")
		require.NoError(t, err)
		v, err := Call(env, box, boxLen, []byte("payload"))
		require.NoError(t, err)
		require.Equal(t, int32(7), v.Int())
		// the String result is the caller's; TakeString releases it
		m, err := Call(env, box, boxMode, modeFast)
		require.NoError(t, err)
		name, err := TakeString(env, m.Ref())
		require.NoError(t, err)
		require.Equal(t, "FAST", name)
	}

	assert.Equal(t, before, eng.Stats())

	// only the object result survives
	v, err := Call(env, box, boxEcho, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, before.LocalRefs+1, eng.Stats().LocalRefs)

	buf := make([]byte, 3)
	require.NoError(t, CopyOut(env, v.Ref(), 0, buf))
	assert.Equal(t, []byte{1, 2, 3}, buf)
	env.DeleteLocalRef(v.Ref())
}

func TestInvoke_ManyCallsStayUnderLocalLimit(t *testing.T) {
	_, env := newTestEngine(t, &engine.Config{MaxLocalRefs: 8})
	box := newBox(t, env, "")

	for i := 0; i < 1000; i++ {
		_, err := Call(env, box, boxSet, "x")
		require.NoError(t, err, "iteration %d", i)
	}
}

func TestInvoke_NullArguments(t *testing.T) {
	_, env := newTestEngine(t, nil)
	box := newBox(t, env, "")

	v, err := Call(env, box, boxLen, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(-1), v.Int())
}

func TestInvoke_ReturnsThrowable(t *testing.T) {
	eng, env := newTestEngine(t, nil)
	box := newBox(t, env, "")

	_, err := Invoke(env, box, boxFail)
	require.Error(t, err)
	th, ok := err.(*Throwable)
	require.True(t, ok, "expected *Throwable, got %T", err)
	assert.False(t, env.ExceptionCheck(), "pending state must be cleared")

	assert.Equal(t, "java/io/IOException", th.Class())
	assert.Equal(t, "java.io.IOException: boom", th.Message())
	assert.Equal(t, "remote fault: java.io.IOException: boom", th.Error())
	assert.Equal(t, 1, eng.Stats().GlobalRefs)

	assert.True(t, th.Release())
	assert.False(t, th.Release())
	assert.Equal(t, 0, eng.Stats().GlobalRefs)
	assert.True(t, th.Ref().IsNull())
}

func TestInvoke_LookupFaults(t *testing.T) {
	_, env := newTestEngine(t, nil)
	box := newBox(t, env, "")

	missing := MustVirtual("test/Box", "missing", "()V")
	_, err := Call(env, box, missing)
	requireKind(t, err, errors.KindRemoteFault)

	var e *errors.Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "java/lang/NoSuchMethodError", e.RemoteType)

	noClass := MustStatic("test/Nope", "x", "()V")
	_, err = Call(env, 0, noClass)
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "java/lang/NoClassDefFoundError", e.RemoteType)
}
