package tachyon

import (
	"strconv"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// adopt wraps the object result of a call for owner. A null result is
// reported as not_found for what/key. The caller holds the lock of env.
func adopt[T any](owner *T, name string, env engine.Env, v engine.Value, err error, what, key string) (bridge.Object, error) {
	if err != nil {
		return bridge.Object{}, err
	}
	if v.Ref().IsNull() {
		return bridge.Object{}, errors.NotFound(errors.PhaseFacade, what, key)
	}
	return bridge.Wrap(owner, name, env, v.Ref())
}

// callObject calls m on o and pins the object result for owner, all under
// the lock of o's Env.
func callObject[T any](owner *T, name string, o *bridge.Object, what, key string, m *bridge.Method, args ...any) (bridge.Object, error) {
	var out bridge.Object
	err := o.Do(func(env engine.Env, ref engine.Ref) error {
		v, err := bridge.Call(env, ref, m, args...)
		out, err = adopt(owner, name, env, v, err, what, key)
		return err
	})
	return out, err
}

// callStatic is callObject for a static method or constructor.
func callStatic[T any](owner *T, name string, env engine.Env, what, key string, m *bridge.Method, args ...any) (bridge.Object, error) {
	var out bridge.Object
	err := bridge.Exclusive(env, func() error {
		v, err := bridge.Call(env, 0, m, args...)
		out, err = adopt(owner, name, env, v, err, what, key)
		return err
	})
	return out, err
}

func callBool(o *bridge.Object, m *bridge.Method, args ...any) (bool, error) {
	v, err := o.Call(m, args...)
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func callString(o *bridge.Object, m *bridge.Method) (string, error) {
	var s string
	err := o.Do(func(env engine.Env, ref engine.Ref) error {
		v, err := bridge.Call(env, ref, m)
		if err != nil {
			return err
		}
		s, err = bridge.TakeString(env, v.Ref())
		return err
	})
	return s, err
}

// closeRemote calls the remote close method once and releases the
// reference. The reference is released even when the remote call fails.
func closeRemote(o *bridge.Object, m *bridge.Method) error {
	if !o.Live() {
		return nil
	}
	_, err := o.Call(m)
	_ = o.Close()
	return err
}

// checkRange validates buf[off:off+n] before any remote call.
func checkRange(op string, buf []byte, off, n int) error {
	if off < 0 || off > len(buf) {
		return errors.OutOfBounds(errors.PhaseFacade, []string{op, "off"}, off, len(buf))
	}
	if n < 0 || n > len(buf)-off {
		return errors.OutOfBounds(errors.PhaseFacade, []string{op, "len"}, off+n, len(buf))
	}
	return nil
}

// scratch allocates a remote byte array of n bytes inside a new local
// frame. The caller holds the Env lock and must pop the frame.
func scratch(env engine.Env, n int) (engine.Ref, error) {
	env.PushLocalFrame()
	arr := env.NewByteArray(n)
	if arr.IsNull() {
		if th := bridge.CheckAndClear(env); th != nil {
			th.Release()
		}
		env.PopLocalFrame(0)
		return 0, errors.AllocationFailed(errors.PhaseFacade, "byte array of "+strconv.Itoa(n)+" bytes")
	}
	return arr, nil
}
