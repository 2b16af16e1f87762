package bridge

import (
	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
	"github.com/wippyai/tachyon-bridge/signature"
)

// Invoke calls m on target with args.
//
// Static methods and constructors ignore target. The returned error is a
// *errors.Error for local failures (bad arguments, allocation) or a
// *Throwable for a fault raised by the runtime; the caller owns and must
// Release the Throwable. An object result is a local ref owned by the
// caller. Every other ref created for the call is released before Invoke
// returns. The caller must have exclusive use of env; see Exclusive.
func Invoke(env engine.Env, target engine.Ref, m *Method, args ...any) (engine.Value, error) {
	if env == nil {
		return engine.Void(), errors.NotAttached("no runtime handle", nil)
	}
	if m == nil {
		return engine.Void(), errors.NilPointer(errors.PhaseInvoke, nil, "method")
	}
	zero := m.zero()
	if !m.Static && !m.IsConstructor() && target.IsNull() {
		return zero, errors.NilPointer(errors.PhaseInvoke, []string{m.String()}, "target")
	}
	plan, err := prepare(m, args)
	if err != nil {
		return zero, err
	}

	env.PushLocalFrame()
	res, err := invokeInFrame(env, target, m, plan)
	if err != nil {
		env.PopLocalFrame(0)
		return zero, err
	}
	if res.Kind() == signature.Object {
		return engine.Object(env.PopLocalFrame(res.Ref())), nil
	}
	env.PopLocalFrame(0)
	return res, nil
}

func invokeInFrame(env engine.Env, target engine.Ref, m *Method, plan []arg) (engine.Value, error) {
	vals := make([]engine.Value, len(plan))
	for i, a := range plan {
		v, err := a.materialise(env)
		if err != nil {
			return engine.Void(), err
		}
		vals[i] = v
	}

	cls := env.FindClass(m.Class)
	if th := CheckAndClear(env); th != nil {
		return engine.Void(), th
	}

	var id *engine.MethodID
	switch {
	case m.IsConstructor():
		id = env.GetConstructorID(cls, m.desc)
	case m.Static:
		id = env.GetStaticMethodID(cls, m.Name, m.desc)
	default:
		id = env.GetMethodID(cls, m.Name, m.desc)
	}
	if th := CheckAndClear(env); th != nil {
		return engine.Void(), th
	}

	var res engine.Value
	switch {
	case m.IsConstructor():
		res = engine.Object(env.NewObject(cls, id, vals...))
	case m.Static:
		res = env.CallStaticMethod(cls, id, vals...)
	default:
		res = env.CallMethod(target, id, vals...)
	}
	if th := CheckAndClear(env); th != nil {
		return engine.Void(), th
	}
	return res, nil
}

// Exclusive runs fn while holding the lock of env. Sequences that span
// several Env operations, such as a call followed by pinning its result,
// run inside it when the Env may be shared.
func Exclusive(env engine.Env, fn func() error) error {
	if env == nil {
		return errors.NotAttached("no runtime handle", nil)
	}
	env.Lock()
	defer env.Unlock()
	return fn()
}

// Call is Invoke with remote faults translated into remote_fault errors
// (allocation for java/lang/OutOfMemoryError). The Throwable is released.
func Call(env engine.Env, target engine.Ref, m *Method, args ...any) (engine.Value, error) {
	v, err := Invoke(env, target, m, args...)
	var th *Throwable
	if !errors.As(err, &th) {
		return v, err
	}
	defer th.Release()

	fault := th.Fault(m.String())
	Logger().Debug("remote fault",
		zap.String("method", m.String()),
		zap.String("class", th.Class()),
		zap.String("message", fault.Detail))
	return v, fault
}
