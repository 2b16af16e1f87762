// Package errors provides structured error types for the tachyon bridge.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: operation path, Go/remote type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindTypeMismatch).
//		Path("tachyon/client/TachyonFS", "getFile").
//		GoType("string").
//		RemoteType("I").
//		Detail("cannot pass string as int").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UseAfterClose("InStream")
//	err := errors.RemoteFault(op, "java/io/IOException", msg)
//
// The sentinels ErrNotAttached, ErrAllocation, ErrRemoteFault, ErrInvalidEnum,
// ErrUseAfterClose and ErrNotFound match any error of their kind:
//
//	if errors.Is(err, bridgeerrors.ErrUseAfterClose) { ... }
package errors
