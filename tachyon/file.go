package tachyon

import (
	"strconv"
	"strings"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// File is a handle to one file or directory of a Client.
type File struct {
	obj bridge.Object
}

// Length returns the committed length in bytes.
func (f *File) Length() (int64, error) {
	v, err := f.obj.Call(fileLength)
	if err != nil {
		return 0, err
	}
	return v.Long(), nil
}

// Path returns the absolute path of the file.
func (f *File) Path() (string, error) { return callString(&f.obj, filePath) }

func (f *File) IsFile() (bool, error)      { return callBool(&f.obj, fileIsFile) }
func (f *File) IsDirectory() (bool, error) { return callBool(&f.obj, fileIsDirectory) }
func (f *File) IsInMemory() (bool, error)  { return callBool(&f.obj, fileIsInMemory) }
func (f *File) IsComplete() (bool, error)  { return callBool(&f.obj, fileIsComplete) }
func (f *File) NeedPin() (bool, error)     { return callBool(&f.obj, fileNeedPin) }

// Recache loads a complete file back into memory.
func (f *File) Recache() (bool, error) { return callBool(&f.obj, fileRecache) }

// ReadByteBuffer returns the in-memory contents of block. A block that is
// not cached in memory is not_found.
func (f *File) ReadByteBuffer(block int) (*BlockBuffer, error) {
	if block < 0 {
		return nil, errors.OutOfBounds(errors.PhaseFacade, []string{"ReadByteBuffer"}, block, 0)
	}
	b := &BlockBuffer{}
	obj, err := callObject(b, "BlockBuffer", &f.obj, "cached block", strconv.Itoa(block), fileReadByteBuffer, block)
	if err != nil {
		return nil, err
	}
	b.obj = obj
	return b, nil
}

// InStream opens the file for reading. The file must be complete.
func (f *File) InStream(rt ReadType) (*InStream, error) {
	if _, _, err := rt.RemoteEnum(); err != nil {
		return nil, err
	}
	size, err := f.Length()
	if err != nil {
		return nil, err
	}
	s := &InStream{size: size}
	obj, err := callObject(s, "InStream", &f.obj, "input stream", rt.String(), fileInStream, rt)
	if err != nil {
		return nil, err
	}
	s.obj = obj
	s.variant = variant(&s.obj)
	return s, nil
}

// OutStream opens an incomplete file for writing. Data becomes visible
// when the stream is closed.
func (f *File) OutStream(wt WriteType) (*OutStream, error) {
	if _, _, err := wt.RemoteEnum(); err != nil {
		return nil, err
	}
	s := &OutStream{}
	obj, err := callObject(s, "OutStream", &f.obj, "output stream", wt.String(), fileOutStream, wt)
	if err != nil {
		return nil, err
	}
	s.obj = obj
	s.variant = variant(&s.obj)
	return s, nil
}

// Ref implements bridge.Referencer.
func (f *File) Ref() (engine.Ref, error) { return f.obj.Ref() }

// Close releases the file handle.
func (f *File) Close() error { return f.obj.Close() }

// variant returns the short remote class name of o, e.g.
// "LocalBlockInStream".
func variant(o *bridge.Object) string {
	var name string
	_ = o.Do(func(env engine.Env, ref engine.Ref) error {
		name = env.ClassName(ref)
		return nil
	})
	return name[strings.LastIndexByte(name, '/')+1:]
}
