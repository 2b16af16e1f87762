package bridge

import (
	"fmt"
	"unicode/utf8"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// allocFailed converts a failed allocation into an allocation error,
// discarding the pending OutOfMemoryError.
func allocFailed(env engine.Env, what string) error {
	if th := CheckAndClear(env); th != nil {
		msg := th.Message()
		th.Release()
		if th.class != OutOfMemoryError {
			return errors.RemoteFault("allocate "+what, th.Class(), msg)
		}
	}
	return errors.AllocationFailed(errors.PhaseEncode, what)
}

// NewString creates a remote string. The result is a local ref owned by
// the caller.
func NewString(env engine.Env, s string) (engine.Ref, error) {
	if !utf8.ValidString(s) {
		return 0, errors.InvalidUTF8(errors.PhaseEncode, nil, []byte(s))
	}
	r := env.NewStringUTF(s)
	if r.IsNull() {
		return 0, allocFailed(env, fmt.Sprintf("string of %d bytes", len(s)))
	}
	return r, nil
}

// TakeString decodes a remote string and deletes the local ref.
// A null ref decodes to "".
func TakeString(env engine.Env, r engine.Ref) (string, error) {
	if r.IsNull() {
		return "", nil
	}
	s := env.GetStringUTF(r)
	if r.Kind() == engine.RefLocal {
		env.DeleteLocalRef(r)
	}
	if err := fault(env, "decode string"); err != nil {
		return "", err
	}
	if !utf8.ValidString(s) {
		return "", errors.InvalidUTF8(errors.PhaseDecode, nil, []byte(s))
	}
	return s, nil
}

// NewByteArrayFrom creates a remote byte array holding a copy of b.
// The result is a local ref owned by the caller.
func NewByteArrayFrom(env engine.Env, b []byte) (engine.Ref, error) {
	r := env.NewByteArray(len(b))
	if r.IsNull() {
		return 0, allocFailed(env, fmt.Sprintf("byte array of %d bytes", len(b)))
	}
	if len(b) > 0 {
		env.SetByteArrayRegion(r, 0, b)
		if err := fault(env, "fill byte array"); err != nil {
			env.DeleteLocalRef(r)
			return 0, err
		}
	}
	return r, nil
}

// ArrayLength returns the length of a remote byte array.
func ArrayLength(env engine.Env, arr engine.Ref) (int, error) {
	n := env.ArrayLength(arr)
	if err := fault(env, "array length"); err != nil {
		return 0, err
	}
	return n, nil
}

// CopyOut copies len(dst) bytes starting at start out of a remote array.
func CopyOut(env engine.Env, arr engine.Ref, start int, dst []byte) error {
	if start < 0 {
		return errors.OutOfBounds(errors.PhaseDecode, nil, start, len(dst))
	}
	if len(dst) == 0 {
		return nil
	}
	env.GetByteArrayRegion(arr, start, dst)
	return fault(env, "copy out of byte array")
}

// CopyIn copies src into a remote array starting at start.
func CopyIn(env engine.Env, arr engine.Ref, start int, src []byte) error {
	if start < 0 {
		return errors.OutOfBounds(errors.PhaseEncode, nil, start, len(src))
	}
	if len(src) == 0 {
		return nil
	}
	env.SetByteArrayRegion(arr, start, src)
	return fault(env, "copy into byte array")
}
