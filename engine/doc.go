// Package engine provides the embedded object runtime the bridge talks to.
//
// The runtime hosts a class-based object model: classes have binary names
// such as "tachyon/client/TachyonFS", methods are identified by name plus
// descriptor ("getFile(Ljava/lang/String;)Ltachyon/client/TachyonFile;"),
// and failures are thrown objects of the java/lang/Throwable hierarchy.
//
// # Contracts
//
//	Runtime  - something callers attach to (Attach, Close)
//	Env      - a per-caller handle; every runtime operation goes through it
//	Ref      - a tagged reference: null, local (transient) or global (pinned)
//	Value    - a tagged union holding one call argument or result
//	MethodID - a resolved method, valid for the lifetime of the runtime
//
// Env operations never return Go errors. A failing operation leaves a
// pending throwable on the Env and returns a zero value:
//
//	obj := env.NewObject(cls, ctor, engine.Int(5))
//	if env.ExceptionCheck() {
//	    th := env.ExceptionOccurred()
//	    env.ExceptionClear()
//	    ...
//	}
//
// # Goja Backend
//
// GojaEngine implements Runtime on a goja JavaScript VM. A prelude script
// defines the base classes (java/lang/Object, String, Enum, the Throwable
// hierarchy and java/nio/ByteBuffer) and the helpers class scripts use:
//
//	defineClass(name, {extends, init, methods, statics, staticFields})
//	defineEnum(name, constants)
//	newInstance(name, ctorDescriptor, args...)
//	raise(throwableClass, message)
//
// Further classes are loaded with LoadScript. Instance calls dispatch on
// the receiver's class chain, so a method resolved against a base class
// runs the subclass override. Byte arrays are Uint8Arrays and strings are
// script strings.
//
// # References
//
// Local refs live in a per-Env table whose frames are released together by
// PopLocalFrame. Global refs live in one engine-wide table. Both tables are
// bounded or closable, and exhaustion is reported as
// java/lang/OutOfMemoryError.
//
// # Thread Safety
//
// Entry into the VM is serialised by the engine. An Env carries local frames
// and a pending throwable, so goroutines sharing one hold its Lock across
// each call sequence. DeleteGlobalRef and DeleteLocalRef need no lock.
package engine
