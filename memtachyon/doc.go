// Package memtachyon installs an in-process Tachyon cluster into a goja
// engine.
//
// The classes follow the remote client API (tachyon/client/TachyonFS,
// TachyonFile, the stream hierarchy, ReadType/WriteType, TachyonURI and
// TachyonKV), so the tachyon facades run unchanged against it:
//
//	eng, err := memtachyon.NewEngine(ctx, nil, &memtachyon.Options{
//	    Masters: []string{"localhost:19998"},
//	})
//	bridge.SetDefault(bridge.NewProvider(eng))
//
// Each master is a separate namespace. Connecting to an authority that is
// not listed fails with java/io/IOException.
package memtachyon
