package tachyon

import (
	"github.com/wippyai/tachyon-bridge/bridge"
	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
)

// DefaultKVBlockBytes is the block size of a KV store created with a
// non-positive block size.
const DefaultKVBlockBytes = 8 << 20

// KV is a key-value store kept in a Tachyon namespace. Each store holds
// its own copy of the Client it was created from.
type KV struct {
	obj    bridge.Object
	client *Client
	store  string
}

// NewKV opens the store named store, or the default store when the name
// is empty. Entries larger than blockBytes are rejected by Set.
func NewKV(client *Client, rt ReadType, wt WriteType, blockBytes int64, store string) (*KV, error) {
	if client == nil {
		return nil, errors.NilPointer(errors.PhaseFacade, []string{"NewKV"}, "client")
	}
	if blockBytes <= 0 {
		blockBytes = DefaultKVBlockBytes
	}
	cp, err := client.Copy()
	if err != nil {
		return nil, err
	}

	var name any
	if store != "" {
		name = store
	}
	kv := &KV{client: cp, store: store}
	kv.obj, err = callStatic(kv, "KV", cp.obj.Env(), "kv store", store, kvNew, &cp.obj, rt, wt, blockBytes, name)
	if err != nil {
		_ = cp.Close()
		return nil, err
	}
	return kv, nil
}

// Init prepares the store for use and reports whether it is usable.
func (kv *KV) Init() (bool, error) { return callBool(&kv.obj, kvInit) }

// Get copies the value of key into buf and returns the full value length,
// which may exceed len(buf). A missing key is not_found.
func (kv *KV) Get(key, buf []byte) (int, error) {
	n := 0
	err := kv.obj.Do(func(env engine.Env, ref engine.Ref) error {
		arr, err := scratch(env, len(buf))
		if err != nil {
			return err
		}
		defer env.PopLocalFrame(0)

		v, err := bridge.Call(env, ref, kvGet, key, arr)
		if err != nil {
			return err
		}
		n = int(v.Int())
		if n < 0 {
			return errors.NotFound(errors.PhaseFacade, "key", string(key))
		}
		return bridge.CopyOut(env, arr, 0, buf[:min(n, len(buf))])
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Set stores value under key, replacing any previous value.
func (kv *KV) Set(key, value []byte) error {
	_, err := kv.obj.Call(kvSet, key, value)
	return err
}

// Client returns the store's own client.
func (kv *KV) Client() *Client { return kv.client }

// Close releases the store and its client.
func (kv *KV) Close() error {
	err := kv.obj.Close()
	if kv.client != nil {
		if cerr := kv.client.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
