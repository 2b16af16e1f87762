package bridge

import (
	"sync/atomic"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// Pinned is a global reference with an explicit, exactly-once release.
type Pinned struct {
	env      engine.Env
	ref      engine.Ref
	released atomic.Bool
}

// Pin promotes ref to a global reference. A local ref is deleted on every
// path, including failure; a global ref is left untouched and pinned again.
func Pin(env engine.Env, ref engine.Ref) (*Pinned, error) {
	if env == nil {
		return nil, errors.NotAttached("no runtime handle", nil)
	}
	if ref.IsNull() {
		return nil, errors.NilPointer(errors.PhaseInvoke, nil, "object reference")
	}

	g := env.NewGlobalRef(ref)
	if ref.Kind() == engine.RefLocal {
		env.DeleteLocalRef(ref)
	}
	if g.IsNull() {
		if th := CheckAndClear(env); th != nil {
			th.Release()
		}
		return nil, errors.AllocationFailed(errors.PhaseInvoke, "global reference")
	}
	return &Pinned{env: env, ref: g}, nil
}

// Ref returns the global reference, or use_after_close once released.
func (p *Pinned) Ref() (engine.Ref, error) {
	if p.released.Load() {
		return 0, errors.UseAfterClose("reference")
	}
	return p.ref, nil
}

// Env returns the Env the reference was pinned on.
func (p *Pinned) Env() engine.Env { return p.env }

// Released reports whether Release has run.
func (p *Pinned) Released() bool { return p.released.Load() }

// Release deletes the global reference. Only the first call does so, and
// only that call returns true.
func (p *Pinned) Release() bool {
	if !p.released.CompareAndSwap(false, true) {
		return false
	}
	p.env.DeleteGlobalRef(p.ref)
	return true
}
