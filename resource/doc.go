// Package resource provides the handle tables behind remote object
// references.
//
// The engine keeps one table per attached Env for local references and one
// engine-wide table for global references:
//
//	table := resource.NewTableWithLimit(1024)
//
//	h := table.Insert(depth, value) // 0 when full or closed
//	v, ok := table.Get(h)
//	v, ok = table.Remove(h)
//
// # Generations
//
// Handles carry the generation of their slot. Once an entry is removed its
// handle never resolves again, even after the slot is reused, so a stale
// reference reads as invalid instead of aliasing a newer object.
//
// # Tags
//
// Every entry carries a caller-chosen tag. The engine tags local refs with
// the frame depth they were created in and pops a frame with
//
//	table.RemoveTagged(depth)
//
// # Observers
//
// Observers see every create and drop, outside the table lock. The engine
// uses them to count live refs:
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("ref %d %s", e.Handle, e.Type)
//	}))
package resource
