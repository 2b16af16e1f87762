package bridge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

const testClasses = `
defineEnum("test/Mode", ["FAST", "SLOW"]);

defineClass("test/Weird", {
	extends: "java/lang/RuntimeException",
	methods: {
		"toString()Ljava/lang/String;": function () { throw new Error("no toString for you"); }
	}
});

defineClass("test/Box", {
	init: {
		"()V": function () { this.s = ""; },
		"(Ljava/lang/String;)V": function (s) { this.s = s; }
	},
	methods: {
		"get()Ljava/lang/String;": function () { return this.s; },
		"set(Ljava/lang/String;)V": function (s) { this.s = s; },
		"len([B)I": function (b) { return b === null ? -1 : b.length; },
		"echo([B)[B": function (b) { return b; },
		"mode(Ltest/Mode;)Ljava/lang/String;": function (m) { return m.__name; },
		"current()Ltest/Mode;": function () { return __classes["test/Mode"].staticFields.SLOW; },
		"sum(BSIJ)J": function (a, b, c, d) { return a + b + c + d; },
		"half(D)D": function (d) { return d / 2; },
		"not(Z)Z": function (z) { return !z; },
		"same(Ltest/Box;)Z": function (o) { return this === o; },
		"fail()V": function () { raise("java/io/IOException", "boom"); },
		"oom()V": function () { raise("java/lang/OutOfMemoryError", "heap"); },
		"oomWith(Ljava/lang/String;)V": function (m) { raise("java/lang/OutOfMemoryError", m); },
		"foreign()V": function () { throw new TypeError("bad things"); },
		"weird()V": function () { throw newInstance("test/Weird", "()V"); }
	},
	statics: {
		"of(Ljava/lang/String;)Ltest/Box;": function (s) {
			return newInstance("test/Box", "(Ljava/lang/String;)V", s);
		}
	}
});
`

var (
	boxNew     = MustConstructor("test/Box", "(Ljava/lang/String;)V")
	boxOf      = MustStatic("test/Box", "of", "(Ljava/lang/String;)Ltest/Box;")
	boxGet     = MustVirtual("test/Box", "get", "()Ljava/lang/String;")
	boxSet     = MustVirtual("test/Box", "set", "(Ljava/lang/String;)V")
	boxLen     = MustVirtual("test/Box", "len", "([B)I")
	boxEcho    = MustVirtual("test/Box", "echo", "([B)[B")
	boxMode    = MustVirtual("test/Box", "mode", "(Ltest/Mode;)Ljava/lang/String;")
	boxCurrent = MustVirtual("test/Box", "current", "()Ltest/Mode;")
	boxSum     = MustVirtual("test/Box", "sum", "(BSIJ)J")
	boxHalf    = MustVirtual("test/Box", "half", "(D)D")
	boxNot     = MustVirtual("test/Box", "not", "(Z)Z")
	boxSame    = MustVirtual("test/Box", "same", "(Ltest/Box;)Z")
	boxFail    = MustVirtual("test/Box", "fail", "()V")
	boxOOM     = MustVirtual("test/Box", "oom", "()V")
	boxOOMWith = MustVirtual("test/Box", "oomWith", "(Ljava/lang/String;)V")
	boxForeign = MustVirtual("test/Box", "foreign", "()V")
	boxWeird   = MustVirtual("test/Box", "weird", "()V")
)

type mode int

const (
	modeFast mode = iota
	modeSlow
	modeBogus
)

var modes = NewEnumTable("test/Mode", map[mode]string{
	modeFast: "FAST",
	modeSlow: "SLOW",
})

func (m mode) RemoteEnum() (string, string, error) { return modes.Remote(m) }

func newTestEngine(t *testing.T, cfg *engine.Config) (*engine.GojaEngine, engine.Env) {
	t.Helper()
	ctx := context.Background()

	eng, err := engine.NewGojaEngineWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close(ctx) })
	require.NoError(t, eng.LoadScript("bridge_test.js", testClasses))

	env, err := eng.Attach()
	require.NoError(t, err)
	return eng, env
}

func newBox(t *testing.T, env engine.Env, s string) engine.Ref {
	t.Helper()
	v, err := Call(env, 0, boxNew, s)
	require.NoError(t, err)
	require.False(t, v.Ref().IsNull())
	return v.Ref()
}

func requireKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, errors.KindOf(err), "error: %v", err)
}
