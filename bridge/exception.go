package bridge

import (
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// OutOfMemoryError is the class the runtime raises for allocation failures.
const OutOfMemoryError = "java/lang/OutOfMemoryError"

var toString = MustVirtual(objectClass, "toString", "()Ljava/lang/String;")

// Throwable is a captured remote fault. It holds its own pinned reference,
// independent of any facade, and must be released exactly once.
type Throwable struct {
	env      engine.Env
	class    string
	msg      string
	ref      engine.Ref
	msgOnce  sync.Once
	released atomic.Bool
}

// CheckAndClear captures the pending throwable of env, if any, and clears
// the pending state. It returns nil when nothing is pending.
func CheckAndClear(env engine.Env) *Throwable {
	if !env.ExceptionCheck() {
		return nil
	}
	local := env.ExceptionOccurred()
	env.ExceptionClear()

	th := &Throwable{env: env}
	if local.IsNull() {
		th.msgOnce.Do(func() { th.msg = "pending fault could not be captured" })
		return th
	}

	th.class = env.ClassName(local)
	th.ref = env.NewGlobalRef(local)
	if env.ExceptionCheck() || th.ref.IsNull() {
		env.ExceptionClear()
		desc := env.Describe(local)
		th.msgOnce.Do(func() { th.msg = desc })
		release(env, th.ref)
		th.ref = 0
	}
	release(env, local)
	return th
}

// release deletes a ref of either kind.
func release(env engine.Env, r engine.Ref) {
	switch r.Kind() {
	case engine.RefLocal:
		env.DeleteLocalRef(r)
	case engine.RefGlobal:
		env.DeleteGlobalRef(r)
	}
}

func (t *Throwable) Error() string {
	return "remote fault: " + t.Message()
}

// Class returns the binary class name of the fault, or "<unknown>".
func (t *Throwable) Class() string {
	if t.class == "" {
		return "<unknown>"
	}
	return t.class
}

// Ref returns the pinned reference, or null once released.
func (t *Throwable) Ref() engine.Ref {
	if t.released.Load() {
		return 0
	}
	return t.ref
}

// Message renders the fault with its own toString. If that fails the
// nested fault is discarded and the runtime's description is used instead.
// The result is cached. Message never panics.
func (t *Throwable) Message() string {
	t.msgOnce.Do(func() { t.msg = t.translate() })
	return t.msg
}

func (t *Throwable) translate() (msg string) {
	ref := t.Ref()
	if ref.IsNull() {
		return fmt.Sprintf("<released %s>", t.Class())
	}
	defer func() {
		if r := recover(); r != nil {
			t.env.ExceptionClear()
			msg = fmt.Sprintf("%s (translation panicked: %v)", t.Class(), r)
		}
	}()

	v, err := Invoke(t.env, ref, toString)
	if err == nil {
		s, err := TakeString(t.env, v.Ref())
		if err == nil && s != "" {
			return s
		}
	}
	var nested *Throwable
	if errors.As(err, &nested) {
		nested.Release()
	}
	t.env.ExceptionClear()
	return t.env.Describe(ref)
}

// Release drops the pinned reference. It reports whether this call did so.
func (t *Throwable) Release() bool {
	if !t.released.CompareAndSwap(false, true) {
		return false
	}
	if !t.ref.IsNull() {
		t.env.DeleteGlobalRef(t.ref)
	}
	return true
}

// Fault converts the throwable into a local error for operation op.
func (t *Throwable) Fault(op string) *errors.Error {
	msg := t.Message()
	if t.class == OutOfMemoryError {
		return errors.New(errors.PhaseInvoke, errors.KindAllocation).
			Path(op).
			RemoteType(t.class).
			Detail("%s", msg).
			Build()
	}
	return errors.RemoteFault(op, t.Class(), msg)
}

// PrintException logs th at error level. A nil logger uses Logger().
func PrintException(l *zap.Logger, th *Throwable) {
	if th == nil {
		return
	}
	if l == nil {
		l = Logger()
	}
	l.Error("remote exception",
		zap.String("env", th.env.ID()),
		zap.String("class", th.Class()),
		zap.String("message", th.Message()))
}

// fault captures and translates any pending throwable for op.
func fault(env engine.Env, op string) error {
	th := CheckAndClear(env)
	if th == nil {
		return nil
	}
	defer th.Release()
	return th.Fault(op)
}
