// Package tachyon provides Go facades over the Tachyon client object model.
//
// Every facade holds one pinned remote object. Close releases it and is
// idempotent; any other method on a closed facade fails with
// errors.KindUseAfterClose. Facades created from one context may be used
// from several goroutines; each operation holds the runtime handle for its
// whole duration. A stream tracks its position locally and is read or
// written by one goroutine at a time.
//
//	ctx, env, err := provider.Attach(ctx)
//	client, err := tachyon.Connect(ctx, "tachyon://localhost:19998")
//	defer client.Close()
//
//	id, err := client.CreateFile("/logs/today")
//	file, err := client.GetFileByID(id)
//	out, err := file.OutStream(tachyon.CacheThrough)
//	out.Write(data)
//	out.Close()
//
// Lookups that yield nothing (a missing path, an uncached block, a
// missing key) fail with errors.KindNotFound, so a facade is never
// returned in an unusable state. Faults raised by the remote side surface
// as errors.KindRemoteFault carrying the remote class and message.
//
// InStream implements io.Reader, io.ByteReader and io.Seeker; OutStream
// implements io.Writer and io.ByteWriter.
package tachyon
