package tachyon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
	"github.com/wippyai/tachyon-bridge/memtachyon"
)

const testMaster = "tachyon://localhost:19998"

// newTestContext returns a context bound to a fresh in-process cluster.
func newTestContext(t *testing.T, opts *memtachyon.Options) (context.Context, *engine.GojaEngine) {
	t.Helper()
	ctx := context.Background()

	eng, err := memtachyon.NewEngine(ctx, nil, opts)
	require.NoError(t, err)
	t.Cleanup(func() { eng.Close(ctx) })

	ctx, _, err = bridge.NewProvider(eng).Attach(ctx)
	require.NoError(t, err)
	return ctx, eng
}

func newTestClient(t *testing.T) (*Client, *engine.GojaEngine) {
	t.Helper()
	ctx, eng := newTestContext(t, nil)
	c, err := Connect(ctx, testMaster)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, eng
}

// putFile creates path holding data, committed with wt.
func putFile(t *testing.T, c *Client, path string, data []byte, wt WriteType) *File {
	t.Helper()
	_, err := c.CreateFile(path)
	require.NoError(t, err)
	f, err := c.GetFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	out, err := f.OutStream(wt)
	require.NoError(t, err)
	n, err := out.Write(data)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.NoError(t, out.Close())
	return f
}

func requireKind(t *testing.T, err error, kind errors.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, errors.KindOf(err), "error: %v", err)
}

func requireFault(t *testing.T, err error, class string) {
	t.Helper()
	var be *errors.Error
	require.ErrorAs(t, err, &be)
	require.Equal(t, errors.KindRemoteFault, be.Kind, "error: %v", err)
	require.Equal(t, class, be.RemoteType, "error: %v", err)
}
