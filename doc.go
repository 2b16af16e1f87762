// Package tachyonbridge provides Go access to the Tachyon distributed file
// system client, whose object model lives inside an embedded runtime.
//
// Go code never touches runtime objects directly. Every call goes through a
// small proxy layer that resolves methods by name and type signature,
// converts values at the boundary, turns runtime exceptions into Go errors,
// and manages the lifetime of object references.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	tachyonbridge/       Root package (documentation only)
//	├── signature/       Method and field type descriptor parsing
//	├── engine/          Embedded runtime contracts and the goja backend
//	├── resource/        Reference tables for pinned objects
//	├── bridge/          Handle provider, invoker, exception channel, pinning, marshaling
//	├── errors/          Structured error types for debugging
//	├── memtachyon/      In-process Tachyon cluster for the goja backend
//	├── tachyon/         Client, File, streams, buffers, URI and KV facades
//	└── cmd/tfs/         Command line client with an interactive mode
//
// # Quick Start
//
// Start a runtime, attach a handle to the context and connect:
//
//	eng, err := memtachyon.NewEngine(ctx, nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close(ctx)
//
//	ctx, _, err = bridge.NewProvider(eng).Attach(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := tachyon.Connect(ctx, "tachyon://localhost:19998")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	id, err := client.CreateFile("/data/hello.txt")
//
// # Errors
//
// Runtime exceptions surface as *errors.Error with Kind remote_fault and
// RemoteType set to the binary class name of the exception, for example
// "java/io/IOException". Use errors.KindOf to branch on the kind.
//
// # Thread Safety
//
// Facades share the runtime handle of the context they were created from.
// Each facade operation holds that handle's lock from its first remote
// call to its last exception check, so goroutines sharing a context do not
// see each other's frames or faults. Streams keep a local position and
// belong to one goroutine at a time. The goja backend serializes calls
// across handles.
//
// # Lifetimes
//
// Every facade pins its remote object until Close. Close is idempotent and
// any call after it fails with use_after_close. Facades that are never
// closed are released when collected, with a warning logged.
package tachyonbridge
