package tachyon

import (
	"io"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// chunkSize bounds the remote array used by a single read or write.
const chunkSize = 1 << 20

var (
	_ io.Reader     = (*InStream)(nil)
	_ io.ByteReader = (*InStream)(nil)
	_ io.Seeker     = (*InStream)(nil)
	_ io.Closer     = (*InStream)(nil)
	_ io.Writer     = (*OutStream)(nil)
	_ io.ByteWriter = (*OutStream)(nil)
	_ io.Closer     = (*OutStream)(nil)
)

// InStream reads a complete file. The position is tracked locally so
// Seek can resolve io.SeekCurrent and io.SeekEnd.
type InStream struct {
	obj     bridge.Object
	variant string
	size    int64
	pos     int64
}

// Variant returns the remote stream class, such as "LocalBlockInStream".
func (s *InStream) Variant() string { return s.variant }

// ReadByte reads one byte, returning io.EOF at the end of the file.
func (s *InStream) ReadByte() (byte, error) {
	v, err := s.obj.Call(inRead)
	if err != nil {
		return 0, err
	}
	b := v.Int()
	if b < 0 {
		return 0, io.EOF
	}
	s.pos++
	return byte(b), nil
}

// Read implements io.Reader.
func (s *InStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		if _, err := s.obj.Ref(); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if len(p) > chunkSize {
		p = p[:chunkSize]
	}
	return s.readInto(p)
}

// ReadRange reads at most maxLen bytes into buf[off:]. Bytes outside
// buf[off:off+n] are left untouched. It returns io.EOF at the end of the
// file.
func (s *InStream) ReadRange(buf []byte, off, maxLen int) (int, error) {
	if err := checkRange("ReadRange", buf, off, maxLen); err != nil {
		return 0, err
	}
	if maxLen == 0 {
		return 0, nil
	}
	return s.readInto(buf[off : off+maxLen])
}

func (s *InStream) readInto(dst []byte) (int, error) {
	n := 0
	err := s.obj.Do(func(env engine.Env, ref engine.Ref) error {
		arr, err := scratch(env, len(dst))
		if err != nil {
			return err
		}
		defer env.PopLocalFrame(0)

		v, err := bridge.Call(env, ref, inReadRange, arr, 0, len(dst))
		if err != nil {
			return err
		}
		got := int(v.Int())
		if got < 0 {
			return io.EOF
		}
		if got > len(dst) {
			return errors.InvalidData(errors.PhaseDecode, []string{inReadRange.String()},
				"read returned more bytes than requested")
		}
		if err := bridge.CopyOut(env, arr, 0, dst[:got]); err != nil {
			return err
		}
		n = got
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.pos += int64(n)
	return n, nil
}

// Seek implements io.Seeker. Seeking past the end of the file fails.
func (s *InStream) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = s.pos + offset
	case io.SeekEnd:
		abs = s.size + offset
	default:
		return 0, errors.InvalidInput(errors.PhaseFacade, "invalid whence")
	}
	if abs < 0 {
		return 0, errors.OutOfBounds(errors.PhaseFacade, []string{"Seek"}, int(abs), int(s.size))
	}
	if _, err := s.obj.Call(inSeek, abs); err != nil {
		return 0, err
	}
	s.pos = abs
	return abs, nil
}

// Skip advances up to n bytes and returns how many were skipped.
func (s *InStream) Skip(n int64) (int64, error) {
	v, err := s.obj.Call(inSkip, n)
	if err != nil {
		return 0, err
	}
	s.pos += v.Long()
	return v.Long(), nil
}

// Close closes the stream. It is idempotent.
func (s *InStream) Close() error { return closeRemote(&s.obj, inClose) }

// OutStream writes an incomplete file. Data is committed on Close and
// discarded by Cancel.
type OutStream struct {
	obj       bridge.Object
	variant   string
	cancelled bool
}

// Variant returns the remote stream class, such as "FileOutStream".
func (s *OutStream) Variant() string { return s.variant }

// WriteByte writes one byte.
func (s *OutStream) WriteByte(c byte) error {
	_, err := s.obj.Call(outWrite, int32(c))
	return err
}

// Write implements io.Writer.
func (s *OutStream) Write(p []byte) (int, error) {
	if _, err := s.obj.Ref(); err != nil {
		return 0, err
	}
	written := 0
	for len(p) > 0 {
		n := min(len(p), chunkSize)
		if _, err := s.obj.Call(outWriteRange, p[:n], 0, n); err != nil {
			return written, err
		}
		written += n
		p = p[n:]
	}
	return written, nil
}

// WriteRange writes buf[off:off+maxLen].
func (s *OutStream) WriteRange(buf []byte, off, maxLen int) error {
	if err := checkRange("WriteRange", buf, off, maxLen); err != nil {
		return err
	}
	_, err := s.Write(buf[off : off+maxLen])
	return err
}

// Flush flushes buffered data to the remote stream.
func (s *OutStream) Flush() error {
	_, err := s.obj.Call(outFlush)
	return err
}

// Cancel abandons the write. The stream is closed afterwards and the file
// stays incomplete.
func (s *OutStream) Cancel() error {
	if _, err := s.obj.Ref(); err != nil {
		return err
	}
	_, err := s.obj.Call(outCancel)
	s.cancelled = true
	_ = s.obj.Close()
	return err
}

// Cancelled reports whether Cancel was called.
func (s *OutStream) Cancelled() bool { return s.cancelled }

// Close commits the written data. It is idempotent and a no-op after
// Cancel.
func (s *OutStream) Close() error { return closeRemote(&s.obj, outClose) }
