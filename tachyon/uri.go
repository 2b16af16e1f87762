package tachyon

import (
	"context"

	"go.uber.org/zap"

	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// URI is a remote tachyon URI.
type URI struct {
	obj bridge.Object
}

func newURI(env engine.Env, m *bridge.Method, key string, args ...any) (*URI, error) {
	u := &URI{}
	obj, err := callStatic(u, "URI", env, "uri", key, m, args...)
	if err != nil {
		return nil, err
	}
	u.obj = obj
	return u, nil
}

// NewURI parses a path or a full URI such as
// "tachyon://localhost:19998/a/b".
func NewURI(ctx context.Context, path string) (*URI, error) {
	env, err := bridge.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return newURI(env, uriNew, path, path)
}

// NewURIFromParts builds a URI from its components. Empty scheme or
// authority leave the part unset.
func NewURIFromParts(ctx context.Context, scheme, authority, path string) (*URI, error) {
	env, err := bridge.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return newURI(env, uriNewParts, path, scheme, authority, path)
}

// JoinURI resolves child against parent. The result takes the scheme and
// authority of parent.
func JoinURI(parent, child *URI) (*URI, error) {
	if parent == nil || child == nil {
		return nil, errors.NilPointer(errors.PhaseFacade, []string{"JoinURI"}, "uri")
	}
	if _, err := parent.obj.Ref(); err != nil {
		return nil, err
	}
	return newURI(parent.obj.Env(), uriNewJoin, "join", &parent.obj, &child.obj)
}

// String returns the textual form of the URI, or "" when it cannot be
// read.
func (u *URI) String() string {
	s, err := callString(&u.obj, uriToString)
	if err != nil {
		Logger().Debug("uri string", zap.Error(err))
		return ""
	}
	return s
}

// Path returns the path component.
func (u *URI) Path() (string, error) { return callString(&u.obj, uriPath) }

// Ref implements bridge.Referencer.
func (u *URI) Ref() (engine.Ref, error) { return u.obj.Ref() }

// Close releases the URI.
func (u *URI) Close() error { return u.obj.Close() }
