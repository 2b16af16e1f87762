package tachyon

import (
	"strconv"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/errors"
)

// ReadType selects the caching behavior of an InStream.
type ReadType int

const (
	// NoCache reads without caching the file in memory.
	NoCache ReadType = iota
	// Cache caches the file in memory once it has been read to the end.
	Cache
	// CachePromote caches the file in memory when the stream is opened.
	CachePromote
)

// WriteType selects where an OutStream persists data.
type WriteType int

const (
	AsyncThrough WriteType = iota
	CacheThrough
	MustCache
	Through
	TryCache
)

var readTypes = bridge.NewEnumTable(classReadType, map[ReadType]string{
	NoCache:      "NO_CACHE",
	Cache:        "CACHE",
	CachePromote: "CACHE_PROMOTE",
})

var writeTypes = bridge.NewEnumTable(classWriteType, map[WriteType]string{
	AsyncThrough: "ASYNC_THROUGH",
	CacheThrough: "CACHE_THROUGH",
	MustCache:    "MUST_CACHE",
	Through:      "THROUGH",
	TryCache:     "TRY_CACHE",
})

// RemoteEnum implements bridge.Enum.
func (t ReadType) RemoteEnum() (class, name string, err error) {
	return readTypes.Remote(t)
}

// String returns the remote constant name.
func (t ReadType) String() string {
	if n, ok := readTypes.Name(t); ok {
		return n
	}
	return "ReadType(" + strconv.Itoa(int(t)) + ")"
}

// ParseReadType returns the ReadType for a remote constant name.
func ParseReadType(name string) (ReadType, error) {
	if t, ok := readTypes.Lookup(name); ok {
		return t, nil
	}
	return 0, errors.InvalidEnum(errors.PhaseDecode, nil, name, classReadType)
}

// RemoteEnum implements bridge.Enum.
func (t WriteType) RemoteEnum() (class, name string, err error) {
	return writeTypes.Remote(t)
}

// String returns the remote constant name.
func (t WriteType) String() string {
	if n, ok := writeTypes.Name(t); ok {
		return n
	}
	return "WriteType(" + strconv.Itoa(int(t)) + ")"
}

// ParseWriteType returns the WriteType for a remote constant name.
func ParseWriteType(name string) (WriteType, error) {
	if t, ok := writeTypes.Lookup(name); ok {
		return t, nil
	}
	return 0, errors.InvalidEnum(errors.PhaseDecode, nil, name, classWriteType)
}
