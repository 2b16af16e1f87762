package tachyon

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/tachyon-bridge/errors"
	"github.com/wippyai/tachyon-bridge/memtachyon"
)

func TestConnect(t *testing.T) {
	ctx, _ := newTestContext(t, &memtachyon.Options{Masters: []string{"m:1"}})

	_, err := Connect(ctx, "tachyon://other:1")
	requireFault(t, err, "java/io/IOException")

	// the failed connect leaves no pending fault behind on the handle
	c, err := Connect(ctx, "tachyon://m:1")
	require.NoError(t, err)
	assert.Equal(t, "tachyon://m:1", c.MasterURI())

	id, err := c.CreateFile("/after-failure")
	require.NoError(t, err)
	got, err := c.GetFileID("/after-failure")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	require.NoError(t, c.Close())
}

func TestConnect_NoRuntime(t *testing.T) {
	_, err := Connect(context.Background(), testMaster)
	requireKind(t, err, errors.KindNotAttached)
}

func TestClient_Files(t *testing.T) {
	c, _ := newTestClient(t)

	id, err := c.CreateFile("/dir/a")
	require.NoError(t, err)
	assert.Equal(t, 2, id)

	got, err := c.GetFileID("/dir/a")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = c.GetFileID("/nope")
	requireKind(t, err, errors.KindNotFound)
	_, err = c.GetFile("/nope")
	requireKind(t, err, errors.KindNotFound)
	_, err = c.GetFileByID(99)
	requireKind(t, err, errors.KindNotFound)

	f, err := c.GetFileByID(id)
	require.NoError(t, err)
	defer f.Close()
	path, err := f.Path()
	require.NoError(t, err)
	assert.Equal(t, "/dir/a", path)

	f2, err := c.GetFileByIDCached(id, true)
	require.NoError(t, err)
	defer f2.Close()
	isFile, err := f2.IsFile()
	require.NoError(t, err)
	assert.True(t, isFile)

	_, err = c.CreateFile("/dir/a")
	requireFault(t, err, "java/io/IOException")
}

func TestClient_Directories(t *testing.T) {
	c, _ := newTestClient(t)

	ok, err := c.Mkdir("/a/b")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.Mkdir("/a/b")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.Mkdirs("/x/y", false)
	requireFault(t, err, "java/io/FileNotFoundException")
	ok, err = c.Mkdirs("/x/y", true)
	require.NoError(t, err)
	assert.True(t, ok)

	d, err := c.GetFile("/a")
	require.NoError(t, err)
	defer d.Close()
	isDir, err := d.IsDirectory()
	require.NoError(t, err)
	assert.True(t, isDir)
}

func TestClient_Delete(t *testing.T) {
	c, _ := newTestClient(t)
	id, err := c.CreateFile("/d/f")
	require.NoError(t, err)

	_, err = c.DeletePath("/d", false)
	requireFault(t, err, "java/io/IOException")

	ok, err := c.DeleteFile(id, false)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.DeleteFile(id, false)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.DeletePath("/d", false)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_Copy(t *testing.T) {
	c, eng := newTestClient(t)
	before := eng.Stats().GlobalRefs

	cp, err := c.Copy()
	require.NoError(t, err)
	assert.Equal(t, before+1, eng.Stats().GlobalRefs)
	assert.Equal(t, c.MasterURI(), cp.MasterURI())

	require.NoError(t, cp.Close())
	_, err = c.CreateFile("/still-usable")
	require.NoError(t, err)
	assert.Equal(t, before, eng.Stats().GlobalRefs)
}

func TestClient_Closed(t *testing.T) {
	ctx, eng := newTestContext(t, nil)
	before := eng.Stats().GlobalRefs

	c, err := Connect(ctx, testMaster)
	require.NoError(t, err)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	assert.Equal(t, before, eng.Stats().GlobalRefs)

	_, err = c.GetFile("/")
	requireKind(t, err, errors.KindUseAfterClose)
	_, err = c.Mkdir("/a")
	requireKind(t, err, errors.KindUseAfterClose)
	_, err = c.Copy()
	requireKind(t, err, errors.KindUseAfterClose)
}

func TestClient_BadArgumentsStayLocal(t *testing.T) {
	c, eng := newTestClient(t)
	before := eng.Stats()

	_, err := c.GetFileByID(1 << 40)
	requireKind(t, err, errors.KindOverflow)
	_, err = c.CreateFile("bad\xff")
	requireKind(t, err, errors.KindInvalidUTF8)

	after := eng.Stats()
	assert.Equal(t, before.LocalRefs, after.LocalRefs)
	assert.Equal(t, before.GlobalRefs, after.GlobalRefs)
}

// sharedWork runs a connect, create, write, read cycle on a context that
// other goroutines use at the same time.
func sharedWork(ctx context.Context, worker int) error {
	c, err := Connect(ctx, testMaster)
	if err != nil {
		return err
	}
	defer c.Close()

	for j := range 10 {
		path := fmt.Sprintf("/w%d/f%d", worker, j)
		if _, err := c.CreateFile(path); err != nil {
			return err
		}
		f, err := c.GetFile(path)
		if err != nil {
			return err
		}
		got, err := f.Path()
		if err != nil {
			f.Close()
			return err
		}
		if got != path {
			f.Close()
			return fmt.Errorf("Path() = %q, want %q", got, path)
		}

		data := []byte(path)
		out, err := f.OutStream(TryCache)
		if err == nil {
			_, err = out.Write(data)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
		}
		if err != nil {
			f.Close()
			return err
		}
		in, err := f.InStream(NoCache)
		if err != nil {
			f.Close()
			return err
		}
		read, err := io.ReadAll(in)
		in.Close()
		f.Close()
		if err != nil {
			return err
		}
		if string(read) != path {
			return fmt.Errorf("read %q from %s", read, path)
		}
	}
	return nil
}

func TestClient_SharedContext(t *testing.T) {
	ctx, eng := newTestContext(t, nil)
	before := eng.Stats()

	const workers = 8
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sharedWork(ctx, i); err != nil {
				errs <- fmt.Errorf("worker %d: %w", i, err)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}

	after := eng.Stats()
	assert.Equal(t, before.LocalRefs, after.LocalRefs)
	assert.Equal(t, before.GlobalRefs, after.GlobalRefs)
}
