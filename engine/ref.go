package engine

import (
	"fmt"

	"github.com/wippyai/tachyon-bridge/resource"
)

// RefKind tells which table a Ref lives in.
type RefKind uint8

const (
	// RefNull is the null reference.
	RefNull RefKind = iota
	// RefLocal is a transient reference owned by one Env. It stays valid
	// until deleted or until the local frame it was created in is popped.
	RefLocal
	// RefGlobal is a pinned reference valid on every Env of the engine
	// until explicitly deleted.
	RefGlobal
)

func (k RefKind) String() string {
	switch k {
	case RefNull:
		return "null"
	case RefLocal:
		return "local"
	case RefGlobal:
		return "global"
	}
	return "unknown"
}

// Ref is an opaque reference to an object inside the runtime.
// The zero Ref is null.
type Ref uint64

const globalBit = 1 << 63

func localRef(h resource.Handle) Ref  { return Ref(h) }
func globalRef(h resource.Handle) Ref { return Ref(uint64(h) | globalBit) }

// Kind returns the reference kind.
func (r Ref) Kind() RefKind {
	switch {
	case r == 0:
		return RefNull
	case r&globalBit != 0:
		return RefGlobal
	default:
		return RefLocal
	}
}

// IsNull reports whether r is the null reference.
func (r Ref) IsNull() bool { return r == 0 }

func (r Ref) handle() resource.Handle {
	return resource.Handle(uint64(r) &^ globalBit)
}

func (r Ref) String() string {
	if r == 0 {
		return "null"
	}
	return fmt.Sprintf("%s:%#x", r.Kind(), uint64(r.handle()))
}
