// Package bridge is the typed layer between Go callers and an embedded
// object runtime.
//
// It provides:
//
//	Provider       - hands out runtime handles (engine.Env) per caller
//	Method/Invoke  - signature-checked calls with scoped reference release
//	Throwable      - captured remote faults and their translation
//	Pinned/Object  - pinned references with exactly-once release
//	marshaling     - strings, byte arrays and enums by constant name
//
// # Calling
//
// Methods are declared once and invoked with Go values:
//
//	var getFile = bridge.MustVirtual("tachyon/client/TachyonFS",
//	    "getFile", "(Ljava/lang/String;)Ltachyon/client/TachyonFile;")
//
//	v, err := bridge.Call(env, fs, getFile, "/data/a")
//
// Arguments are checked against the descriptor before any remote call:
// wrong arity, wrong Go types and out-of-range integers fail locally.
// Strings, byte slices and enums are allocated remotely inside a local
// frame that is popped before Invoke returns, so only an object result
// survives as a local ref owned by the caller.
//
// # Concurrency
//
// Invoke and Call expect exclusive use of the Env they are given. Object
// methods take the Env lock themselves, and Do runs a longer sequence,
// such as a call followed by decoding its result, under that lock.
// Exclusive does the same for sequences that start from a bare Env.
//
// # Faults
//
// Invoke returns a *Throwable for faults raised by the runtime. Call
// translates it into an errors.Error of kind remote_fault (allocation for
// java/lang/OutOfMemoryError) and releases it.
//
// # Lifetimes
//
// Facades embed Object, which owns one pinned reference. Close releases
// it exactly once; every later use fails with use_after_close. A facade
// dropped without Close is released by a garbage collection cleanup.
package bridge
