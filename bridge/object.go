package bridge

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// Object is the base of every facade: one pinned remote object plus the
// facade's name for error messages. The zero Object is closed.
//
// A facade that is garbage collected without Close releases its reference
// from a cleanup and logs a leak warning.
type Object struct {
	pin     *Pinned
	cleanup runtime.Cleanup
	name    string
}

type leak struct {
	pin  *Pinned
	name string
}

func releaseLeak(l leak) {
	if l.pin.Release() {
		Logger().Warn("remote reference leaked; released by garbage collector",
			zap.String("facade", l.name))
	}
}

func track[T any](owner *T, name string, pin *Pinned) Object {
	return Object{
		pin:     pin,
		name:    name,
		cleanup: runtime.AddCleanup(owner, releaseLeak, leak{pin: pin, name: name}),
	}
}

// Wrap pins local for the facade owner. The local ref is consumed. The
// caller holds the lock of env.
func Wrap[T any](owner *T, name string, env engine.Env, local engine.Ref) (Object, error) {
	pin, err := Pin(env, local)
	if err != nil {
		return Object{name: name}, err
	}
	return track(owner, name, pin), nil
}

// Share pins the object behind src a second time for owner, giving it a
// reference with its own lifetime.
func Share[T any](owner *T, name string, src *Object) (Object, error) {
	var pin *Pinned
	err := src.Do(func(env engine.Env, ref engine.Ref) error {
		var err error
		pin, err = Pin(env, ref)
		return err
	})
	if err != nil {
		return Object{name: name}, err
	}
	return track(owner, name, pin), nil
}

// Name returns the facade name.
func (o *Object) Name() string { return o.name }

// Live reports whether the object has not been closed.
func (o *Object) Live() bool {
	return o.pin != nil && !o.pin.Released()
}

// Ref returns the pinned reference, or use_after_close.
func (o *Object) Ref() (engine.Ref, error) {
	if o.pin == nil {
		return 0, errors.UseAfterClose(o.name)
	}
	ref, err := o.pin.Ref()
	if err != nil {
		return 0, errors.UseAfterClose(o.name)
	}
	return ref, nil
}

// Env returns the Env the object was created on.
func (o *Object) Env() engine.Env {
	if o.pin == nil {
		return nil
	}
	return o.pin.env
}

// Do runs fn with the pinned reference while holding the lock of the
// object's Env. Locals created by fn must not outlive it.
func (o *Object) Do(fn func(env engine.Env, ref engine.Ref) error) error {
	ref, err := o.Ref()
	if err != nil {
		return err
	}
	env := o.pin.env
	env.Lock()
	defer env.Unlock()
	return fn(env, ref)
}

// Call invokes m on the object, translating remote faults. An object
// result is a local ref handed over after the Env lock is released; use
// Do when the result is consumed by further Env operations.
func (o *Object) Call(m *Method, args ...any) (engine.Value, error) {
	v := engine.Void()
	err := o.Do(func(env engine.Env, ref engine.Ref) error {
		var err error
		v, err = Call(env, ref, m, args...)
		return err
	})
	return v, err
}

// Close releases the reference. It is idempotent.
func (o *Object) Close() error {
	if o.pin == nil {
		return nil
	}
	if o.pin.Release() {
		o.cleanup.Stop()
	}
	return nil
}
