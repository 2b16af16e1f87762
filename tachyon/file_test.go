package tachyon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/tachyon-bridge/errors"
	"github.com/wippyai/tachyon-bridge/memtachyon"
)

func TestFile_Metadata(t *testing.T) {
	c, _ := newTestClient(t)
	f := putFile(t, c, "/f", []byte("hello"), MustCache)

	n, err := f.Length()
	require.NoError(t, err)
	assert.EqualValues(t, 5, n)

	for name, check := range map[string]func() (bool, error){
		"IsFile":     f.IsFile,
		"IsComplete": f.IsComplete,
		"IsInMemory": f.IsInMemory,
		"NeedPin":    f.NeedPin,
	} {
		ok, err := check()
		require.NoError(t, err, name)
		assert.True(t, ok, name)
	}
	isDir, err := f.IsDirectory()
	require.NoError(t, err)
	assert.False(t, isDir)
}

func TestFile_Recache(t *testing.T) {
	c, _ := newTestClient(t)
	f := putFile(t, c, "/f", []byte("abc"), Through)

	inMem, err := f.IsInMemory()
	require.NoError(t, err)
	assert.False(t, inMem)

	_, err = f.ReadByteBuffer(0)
	requireKind(t, err, errors.KindNotFound)

	ok, err := f.Recache()
	require.NoError(t, err)
	assert.True(t, ok)
	inMem, err = f.IsInMemory()
	require.NoError(t, err)
	assert.True(t, inMem)
}

func TestFile_ReadByteBuffer(t *testing.T) {
	ctx, eng := newTestContext(t, &memtachyon.Options{BlockSizeBytes: 4})
	c, err := Connect(ctx, testMaster)
	require.NoError(t, err)
	defer c.Close()
	f := putFile(t, c, "/f", []byte("abcdefghij"), CacheThrough)
	before := eng.Stats().GlobalRefs

	blk, err := f.ReadByteBuffer(2)
	require.NoError(t, err)
	data, err := blk.Data()
	require.NoError(t, err)

	capacity, err := data.Capacity()
	require.NoError(t, err)
	assert.Equal(t, 2, capacity)
	b, err := data.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("ij"), b)

	require.NoError(t, blk.Close())
	require.NoError(t, blk.Close())
	_, err = blk.Data()
	requireKind(t, err, errors.KindUseAfterClose)

	// The buffer outlives the block it came from.
	b, err = data.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("ij"), b)
	require.NoError(t, data.Close())
	assert.Equal(t, before, eng.Stats().GlobalRefs)

	_, err = f.ReadByteBuffer(-1)
	requireKind(t, err, errors.KindOutOfBounds)
	_, err = f.ReadByteBuffer(3)
	requireFault(t, err, "java/io/IOException")
}

func TestFile_Streams(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.CreateFile("/f")
	require.NoError(t, err)
	f, err := c.GetFile("/f")
	require.NoError(t, err)
	defer f.Close()

	_, err = f.InStream(NoCache)
	requireFault(t, err, "java/io/IOException")
	_, err = f.InStream(ReadType(42))
	requireKind(t, err, errors.KindInvalidEnum)
	_, err = f.OutStream(WriteType(-1))
	requireKind(t, err, errors.KindInvalidEnum)

	out, err := f.OutStream(TryCache)
	require.NoError(t, err)
	assert.Equal(t, "FileOutStream", out.Variant())
	require.NoError(t, out.Close())

	in, err := f.InStream(NoCache)
	require.NoError(t, err)
	defer in.Close()
	assert.Equal(t, "EmptyBlockInStream", in.Variant())

	dir, err := c.GetFile("/")
	require.NoError(t, err)
	defer dir.Close()
	_, err = dir.OutStream(Through)
	requireFault(t, err, "java/io/IOException")
}

func TestFile_Closed(t *testing.T) {
	c, _ := newTestClient(t)
	f := putFile(t, c, "/f", []byte("x"), Through)
	require.NoError(t, f.Close())

	_, err := f.Length()
	requireKind(t, err, errors.KindUseAfterClose)
	_, err = f.Path()
	requireKind(t, err, errors.KindUseAfterClose)
	_, err = f.InStream(NoCache)
	requireKind(t, err, errors.KindUseAfterClose)
}

func TestAllocate(t *testing.T) {
	ctx, _ := newTestContext(t, nil)

	b, err := Allocate(ctx, 16)
	require.NoError(t, err)
	defer b.Close()
	n, err := b.Capacity()
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	data, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, make([]byte, 16), data)

	_, err = Allocate(ctx, -1)
	requireKind(t, err, errors.KindOutOfBounds)
}
