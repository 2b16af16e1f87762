package tachyon

import (
	"context"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// BlockBuffer is one cached block of a file, read with
// File.ReadByteBuffer.
type BlockBuffer struct {
	obj bridge.Object
}

// Data returns the block contents as a ByteBuffer with its own lifetime.
func (b *BlockBuffer) Data() (*ByteBuffer, error) {
	bb := &ByteBuffer{}
	err := b.obj.Do(func(env engine.Env, ref engine.Ref) error {
		r := env.GetObjectField(ref, fieldBlockData, fieldBlockDataSig)
		if th := bridge.CheckAndClear(env); th != nil {
			defer th.Release()
			return th.Fault(classBlockBuffer + "." + fieldBlockData)
		}
		if r.IsNull() {
			return errors.NotFound(errors.PhaseFacade, "block data", fieldBlockData)
		}
		var err error
		bb.obj, err = bridge.Wrap(bb, "ByteBuffer", env, r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return bb, nil
}

// Close closes the block on the remote side and releases it.
func (b *BlockBuffer) Close() error { return closeRemote(&b.obj, blockBufferClose) }

// ByteBuffer is a remote heap byte buffer.
type ByteBuffer struct {
	obj bridge.Object
}

// Allocate creates a zeroed buffer of capacity bytes.
func Allocate(ctx context.Context, capacity int) (*ByteBuffer, error) {
	if capacity < 0 {
		return nil, errors.OutOfBounds(errors.PhaseFacade, []string{"Allocate"}, capacity, 0)
	}
	env, err := bridge.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	bb := &ByteBuffer{}
	bb.obj, err = callStatic(bb, "ByteBuffer", env, "buffer", classByteBuffer, bufferAllocate, capacity)
	if err != nil {
		return nil, err
	}
	return bb, nil
}

// Capacity returns the buffer capacity.
func (b *ByteBuffer) Capacity() (int, error) {
	v, err := b.obj.Call(bufferCapacity)
	if err != nil {
		return 0, err
	}
	return int(v.Int()), nil
}

// Bytes returns a copy of the whole backing array.
func (b *ByteBuffer) Bytes() ([]byte, error) {
	var out []byte
	err := b.obj.Do(func(env engine.Env, ref engine.Ref) error {
		v, err := bridge.Call(env, ref, bufferArray)
		if err != nil {
			return err
		}
		arr := v.Ref()
		if arr.IsNull() {
			return errors.NotFound(errors.PhaseFacade, "backing array", classByteBuffer)
		}
		defer env.DeleteLocalRef(arr)

		n, err := bridge.ArrayLength(env, arr)
		if err != nil {
			return err
		}
		out = make([]byte, n)
		return bridge.CopyOut(env, arr, 0, out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Ref implements bridge.Referencer.
func (b *ByteBuffer) Ref() (engine.Ref, error) { return b.obj.Ref() }

// Close releases the buffer.
func (b *ByteBuffer) Close() error { return b.obj.Close() }
