package engine

import (
	"context"
	"sync"

	"github.com/wippyai/tachyon-bridge/signature"
)

// Runtime is an embedded object runtime that callers attach to.
type Runtime interface {
	// Attach returns a new Env bound to the runtime.
	Attach() (Env, error)

	// Close tears the runtime down. Envs obtained earlier become unusable.
	Close(ctx context.Context) error
}

// MethodID identifies a resolved method, static method or constructor.
// It is valid for the lifetime of the runtime.
type MethodID struct {
	Sig    *signature.Method
	Class  string
	Name   string
	Desc   string
	Static bool
}

// Key returns the name+descriptor key methods are registered under.
func (m *MethodID) Key() string { return m.Name + m.Desc }

// IsConstructor reports whether m names a constructor.
func (m *MethodID) IsConstructor() bool { return m.Name == ConstructorName }

func (m *MethodID) String() string {
	return m.Class + "." + m.Name + m.Desc
}

// ConstructorName is the method name constructors are looked up by.
const ConstructorName = "<init>"

// Env is a per-caller handle to a Runtime.
//
// Failing operations do not return Go errors. They leave a pending throwable
// on the Env and return a zero value; callers check ExceptionCheck after
// every call that can fail. Allocation failures return a null Ref with a
// pending java/lang/OutOfMemoryError.
//
// Local frames and the pending throwable belong to the Env, not to a
// goroutine. Goroutines sharing an Env hold its Lock from the first call of
// a sequence until its last exception check. Env methods never take the
// lock themselves. DeleteGlobalRef and DeleteLocalRef may be called from
// any goroutine without it.
type Env interface {
	sync.Locker

	// ID identifies the Env in logs.
	ID() string

	FindClass(name string) Ref
	GetMethodID(class Ref, name, desc string) *MethodID
	GetStaticMethodID(class Ref, name, desc string) *MethodID
	GetConstructorID(class Ref, desc string) *MethodID

	CallMethod(obj Ref, m *MethodID, args ...Value) Value
	CallStaticMethod(class Ref, m *MethodID, args ...Value) Value
	NewObject(class Ref, m *MethodID, args ...Value) Ref

	GetObjectField(obj Ref, name, desc string) Ref
	GetStaticObjectField(class Ref, name, desc string) Ref

	// ClassName returns the binary class name of the referenced object.
	ClassName(obj Ref) string

	ExceptionCheck() bool
	// ExceptionOccurred returns a new ref to the pending throwable, or null.
	// The ref is local unless the local table is full, in which case it is
	// global. It does not clear the pending state.
	ExceptionOccurred() Ref
	ExceptionClear()
	// Describe renders any object without running its methods.
	Describe(obj Ref) string

	NewStringUTF(s string) Ref
	GetStringUTF(str Ref) string

	NewByteArray(n int) Ref
	ArrayLength(arr Ref) int
	GetByteArrayRegion(arr Ref, start int, dst []byte)
	SetByteArrayRegion(arr Ref, start int, src []byte)

	NewGlobalRef(obj Ref) Ref
	DeleteGlobalRef(ref Ref)
	DeleteLocalRef(ref Ref)
	IsSameObject(a, b Ref) bool

	// PushLocalFrame opens a frame; local refs created afterwards are
	// released together by PopLocalFrame.
	PushLocalFrame()
	// PopLocalFrame releases the current frame and returns result as a
	// new local ref in the enclosing frame.
	PopLocalFrame(result Ref) Ref
}
