package tachyon

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// Client is a connection to one Tachyon master.
type Client struct {
	obj    bridge.Object
	master string
}

// Connect opens a client for masterURI, for example
// "tachyon://localhost:19998". The runtime handle comes from ctx.
func Connect(ctx context.Context, masterURI string) (*Client, error) {
	env, err := bridge.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	c := &Client{master: masterURI}
	c.obj, err = callStatic(c, "Client", env, "master", masterURI, fsGet, masterURI)
	if err != nil {
		return nil, err
	}
	Logger().Debug("client connected", zap.String("master", masterURI), zap.String("env", env.ID()))
	return c, nil
}

// MasterURI returns the URI the client was connected with.
func (c *Client) MasterURI() string { return c.master }

// Copy returns a second client on the same connection. The copy has its
// own lifetime; closing either leaves the other usable.
func (c *Client) Copy() (*Client, error) {
	cp := &Client{master: c.master}
	obj, err := bridge.Share(cp, "Client", &c.obj)
	if err != nil {
		return nil, err
	}
	cp.obj = obj
	return cp, nil
}

func (c *Client) file(what, key string, m *bridge.Method, args ...any) (*File, error) {
	f := &File{}
	obj, err := callObject(f, "File", &c.obj, what, key, m, args...)
	if err != nil {
		return nil, err
	}
	f.obj = obj
	return f, nil
}

// GetFile returns the file or directory at path, or not_found.
func (c *Client) GetFile(path string) (*File, error) {
	return c.file("file", path, fsGetFile, path)
}

// GetFileByID returns the file with the given id, or not_found.
func (c *Client) GetFileByID(id int) (*File, error) {
	return c.file("file id", strconv.Itoa(id), fsGetFileByID, id)
}

// GetFileByIDCached is GetFileByID with control over cached metadata.
func (c *Client) GetFileByIDCached(id int, useCachedMetadata bool) (*File, error) {
	return c.file("file id", strconv.Itoa(id), fsGetFileUC, id, useCachedMetadata)
}

// GetFileID returns the id of path, or not_found.
func (c *Client) GetFileID(path string) (int, error) {
	v, err := c.obj.Call(fsGetFileID, path)
	if err != nil {
		return 0, err
	}
	if v.Int() < 0 {
		return 0, errors.NotFound(errors.PhaseFacade, "file", path)
	}
	return int(v.Int()), nil
}

// CreateFile creates an empty, incomplete file and returns its id.
// Missing parent directories are created.
func (c *Client) CreateFile(path string) (int, error) {
	v, err := c.obj.Call(fsCreateFile, path)
	if err != nil {
		return 0, err
	}
	return int(v.Int()), nil
}

// Mkdir creates path and any missing parents. It reports false when the
// directory already exists.
func (c *Client) Mkdir(path string) (bool, error) {
	return callBool(&c.obj, fsMkdir, path)
}

// Mkdirs creates path. Without recursive, the parent must exist.
func (c *Client) Mkdirs(path string, recursive bool) (bool, error) {
	return callBool(&c.obj, fsMkdirs, path, recursive)
}

// DeletePath removes path. A non-empty directory needs recursive.
// It reports false when nothing was there.
func (c *Client) DeletePath(path string, recursive bool) (bool, error) {
	return callBool(&c.obj, fsDeletePath, path, recursive)
}

// DeleteFile removes the file with the given id.
func (c *Client) DeleteFile(id int, recursive bool) (bool, error) {
	return callBool(&c.obj, fsDeleteID, id, recursive)
}

// Ref implements bridge.Referencer.
func (c *Client) Ref() (engine.Ref, error) { return c.obj.Ref() }

// Close releases the client. The connection stays open for copies.
func (c *Client) Close() error { return c.obj.Close() }
