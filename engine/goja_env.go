package engine

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/dop251/goja"

	"github.com/wippyai/tachyon-bridge/resource"
	"github.com/wippyai/tachyon-bridge/signature"
)

// GojaEnv is the Env of a GojaEngine.
type GojaEnv struct {
	eng     *GojaEngine
	locals  *resource.Table
	pending goja.Value
	id      string
	seq     sync.Mutex
	depth   uint32
}

var _ Env = (*GojaEnv)(nil)

func (env *GojaEnv) ID() string { return env.id }

// Lock reserves the Env for one call sequence. It is separate from the
// engine lock, which every Env method takes for its own duration.
func (env *GojaEnv) Lock() { env.seq.Lock() }

func (env *GojaEnv) Unlock() { env.seq.Unlock() }

func (env *GojaEnv) lock() func() {
	env.eng.mu.Lock()
	return env.eng.mu.Unlock
}

func (env *GojaEnv) throw(class, format string, args ...any) {
	env.pending = env.eng.newThrowable(class, fmt.Sprintf(format, args...))
}

func (env *GojaEnv) outOfMemory(what string) Ref {
	env.throw("java/lang/OutOfMemoryError", "%s", what)
	return 0
}

// newLocal stores v in the current frame. Nullish values yield null.
func (env *GojaEnv) newLocal(v goja.Value) Ref {
	if isNullish(v) {
		return 0
	}
	if env.eng.closed.Load() {
		return env.outOfMemory("engine closed")
	}
	h := env.locals.Insert(env.depth, v)
	if h == 0 {
		return env.outOfMemory(fmt.Sprintf("local reference table overflow (max %d)", env.eng.cfg.MaxLocalRefs))
	}
	return localRef(h)
}

func (env *GojaEnv) resolve(r Ref) (goja.Value, bool) {
	var (
		v  any
		ok bool
	)
	switch r.Kind() {
	case RefNull:
		return goja.Null(), true
	case RefLocal:
		v, ok = env.locals.Get(r.handle())
	case RefGlobal:
		v, ok = env.eng.globals.Get(r.handle())
	}
	if !ok {
		return nil, false
	}
	gv, ok := v.(goja.Value)
	return gv, ok
}

// object resolves r to a non-null value, raising NullPointerException
// otherwise.
func (env *GojaEnv) object(r Ref, what string) (goja.Value, bool) {
	v, ok := env.resolve(r)
	if !ok {
		env.throw("java/lang/NullPointerException", "invalid %s reference %s", what, r)
		return nil, false
	}
	if isNullish(v) {
		env.throw("java/lang/NullPointerException", "%s is null", what)
		return nil, false
	}
	return v, true
}

func (env *GojaEnv) class(r Ref) (*goja.Object, bool) {
	v, ok := env.object(r, "class")
	if !ok {
		return nil, false
	}
	cls, isObj := v.(*goja.Object)
	if !isObj || !truthy(cls.Get("__isClass")) {
		env.throw("java/lang/ClassCastException", "%s is not a class", env.eng.describe(v))
		return nil, false
	}
	return cls, true
}

func (env *GojaEnv) FindClass(name string) Ref {
	defer env.lock()()

	v := env.eng.helpers.classes.Get(name)
	if isNullish(v) {
		env.throw("java/lang/NoClassDefFoundError", "%s", name)
		return 0
	}
	return env.newLocal(v)
}

func (env *GojaEnv) methodID(class Ref, name, desc string, static bool) *MethodID {
	cls, ok := env.class(class)
	if !ok {
		return nil
	}
	className := cls.Get("name").String()

	sig, err := signature.Parse(desc)
	if err != nil {
		env.throw("java/lang/NoSuchMethodError", "%s.%s%s: %v", className, name, desc, err)
		return nil
	}

	m := &MethodID{Sig: sig, Class: className, Name: name, Desc: desc, Static: static}
	var found bool
	switch {
	case name == ConstructorName:
		ctors, _ := cls.Get("ctors").(*goja.Object)
		found = ctors != nil && !isNullish(ctors.Get(desc))
	case static:
		_, found = env.eng.lookup(cls, "statics", m.Key())
	default:
		_, found = env.eng.lookup(cls, "methods", m.Key())
	}
	if !found {
		env.throw("java/lang/NoSuchMethodError", "%s", m)
		return nil
	}
	return m
}

func (env *GojaEnv) GetMethodID(class Ref, name, desc string) *MethodID {
	defer env.lock()()
	return env.methodID(class, name, desc, false)
}

func (env *GojaEnv) GetStaticMethodID(class Ref, name, desc string) *MethodID {
	defer env.lock()()
	return env.methodID(class, name, desc, true)
}

func (env *GojaEnv) GetConstructorID(class Ref, desc string) *MethodID {
	defer env.lock()()
	return env.methodID(class, ConstructorName, desc, false)
}

func zeroOf(t signature.Type) Value {
	if t.Kind.IsReference() {
		return Object(0)
	}
	return Value{kind: t.Kind}
}

// enter checks the preconditions shared by every call.
func (env *GojaEnv) enter(m *MethodID) bool {
	if env.eng.closed.Load() {
		env.throw("java/lang/IllegalStateException", "engine closed")
		return false
	}
	if m == nil {
		env.throw("java/lang/NullPointerException", "method id is null")
		return false
	}
	return true
}

func (env *GojaEnv) CallMethod(obj Ref, m *MethodID, args ...Value) Value {
	defer env.lock()()

	if !env.enter(m) {
		return Void()
	}
	ret := m.Sig.Return
	recv, ok := env.object(obj, "receiver")
	if !ok {
		return zeroOf(ret)
	}
	fn, ok := env.eng.lookup(env.eng.classOf(recv), "methods", m.Key())
	if !ok {
		env.throw("java/lang/NoSuchMethodError", "%s on %s", m, env.eng.describe(recv))
		return zeroOf(ret)
	}
	jsArgs, ok := env.toJSArgs(m, args)
	if !ok {
		return zeroOf(ret)
	}
	res, thrown := env.eng.run(fn, recv, jsArgs)
	if thrown != nil {
		env.pending = thrown
		return zeroOf(ret)
	}
	return env.fromJS(ret, res)
}

func (env *GojaEnv) CallStaticMethod(class Ref, m *MethodID, args ...Value) Value {
	defer env.lock()()

	if !env.enter(m) {
		return Void()
	}
	ret := m.Sig.Return
	cls, ok := env.class(class)
	if !ok {
		return zeroOf(ret)
	}
	fn, ok := env.eng.lookup(cls, "statics", m.Key())
	if !ok {
		env.throw("java/lang/NoSuchMethodError", "%s", m)
		return zeroOf(ret)
	}
	jsArgs, ok := env.toJSArgs(m, args)
	if !ok {
		return zeroOf(ret)
	}
	res, thrown := env.eng.run(fn, goja.Undefined(), jsArgs)
	if thrown != nil {
		env.pending = thrown
		return zeroOf(ret)
	}
	return env.fromJS(ret, res)
}

func (env *GojaEnv) NewObject(class Ref, m *MethodID, args ...Value) Ref {
	defer env.lock()()

	if !env.enter(m) {
		return 0
	}
	if !m.IsConstructor() {
		env.throw("java/lang/IllegalArgumentException", "%s is not a constructor", m)
		return 0
	}
	cls, ok := env.class(class)
	if !ok {
		return 0
	}
	jsArgs, ok := env.toJSArgs(m, args)
	if !ok {
		return 0
	}
	all := append([]goja.Value{cls.Get("name"), env.eng.vm.ToValue(m.Desc)}, jsArgs...)
	res, thrown := env.eng.run(env.eng.helpers.newInstance, goja.Undefined(), all)
	if thrown != nil {
		env.pending = thrown
		return 0
	}
	return env.newLocal(res)
}

func (env *GojaEnv) GetObjectField(obj Ref, name, desc string) Ref {
	defer env.lock()()

	v, ok := env.object(obj, "object")
	if !ok {
		return 0
	}
	o, isObj := v.(*goja.Object)
	var f goja.Value
	if isObj {
		f = o.Get(name)
	}
	if f == nil || goja.IsUndefined(f) {
		env.throw("java/lang/NoSuchFieldError", "%s %s", name, desc)
		return 0
	}
	return env.newLocal(f)
}

func (env *GojaEnv) GetStaticObjectField(class Ref, name, desc string) Ref {
	defer env.lock()()

	cls, ok := env.class(class)
	if !ok {
		return 0
	}
	fields, _ := cls.Get("staticFields").(*goja.Object)
	var f goja.Value
	if fields != nil {
		f = fields.Get(name)
	}
	if f == nil || goja.IsUndefined(f) {
		env.throw("java/lang/NoSuchFieldError", "%s.%s %s", cls.Get("name"), name, desc)
		return 0
	}
	return env.newLocal(f)
}

func (env *GojaEnv) ClassName(obj Ref) string {
	defer env.lock()()

	v, ok := env.resolve(obj)
	if !ok || isNullish(v) {
		return ""
	}
	if cls := env.eng.classOf(v); cls != nil {
		return cls.Get("name").String()
	}
	if o, isObj := v.(*goja.Object); isObj {
		return "js/" + o.ClassName()
	}
	return "js/value"
}

func (env *GojaEnv) ExceptionCheck() bool {
	return env.pending != nil
}

func (env *GojaEnv) ExceptionOccurred() Ref {
	if env.pending == nil {
		return 0
	}
	defer env.lock()()

	if h := env.locals.Insert(env.depth, env.pending); h != 0 {
		return localRef(h)
	}
	// The local table is full: hand out a global ref instead so the
	// throwable is never lost. Callers release it by kind.
	if h := env.eng.globals.Insert(0, env.pending); h != 0 {
		return globalRef(h)
	}
	return 0
}

func (env *GojaEnv) ExceptionClear() {
	env.pending = nil
}

func (env *GojaEnv) Describe(obj Ref) string {
	defer env.lock()()

	v, ok := env.resolve(obj)
	if !ok {
		return "<invalid reference>"
	}
	return env.eng.describe(v)
}

func (env *GojaEnv) NewStringUTF(s string) Ref {
	defer env.lock()()

	if len(s) > env.eng.cfg.MaxArrayLength {
		return env.outOfMemory(fmt.Sprintf("string of %d bytes exceeds limit %d", len(s), env.eng.cfg.MaxArrayLength))
	}
	return env.newLocal(env.eng.vm.ToValue(s))
}

func (env *GojaEnv) GetStringUTF(str Ref) string {
	defer env.lock()()

	v, ok := env.object(str, "string")
	if !ok {
		return ""
	}
	s, isStr := v.Export().(string)
	if !isStr {
		env.throw("java/lang/ClassCastException", "%s is not a java.lang.String", env.eng.describe(v))
		return ""
	}
	return s
}

func (env *GojaEnv) NewByteArray(n int) Ref {
	defer env.lock()()

	if n < 0 {
		env.throw("java/lang/NegativeArraySizeException", "%d", n)
		return 0
	}
	if n > env.eng.cfg.MaxArrayLength {
		return env.outOfMemory(fmt.Sprintf("array of %d bytes exceeds limit %d", n, env.eng.cfg.MaxArrayLength))
	}
	arr, err := env.eng.helpers.byteArray(goja.Undefined(), env.eng.vm.ToValue(n))
	if err != nil {
		return env.outOfMemory(err.Error())
	}
	return env.newLocal(arr)
}

func (env *GojaEnv) byteArray(arr Ref) (*goja.Object, bool) {
	v, ok := env.object(arr, "array")
	if !ok {
		return nil, false
	}
	o, isObj := v.(*goja.Object)
	if !isObj || !env.eng.isByteArray(v) {
		env.throw("java/lang/ClassCastException", "%s is not a byte[]", env.eng.describe(v))
		return nil, false
	}
	return o, true
}

func (env *GojaEnv) ArrayLength(arr Ref) int {
	defer env.lock()()

	o, ok := env.byteArray(arr)
	if !ok {
		return 0
	}
	return int(o.Get("length").ToInteger())
}

// arrayBytes returns the backing store of a Uint8Array, or nil when the
// runtime does not expose it.
func arrayBytes(o *goja.Object) []byte {
	b := o.Get("buffer")
	if b == nil {
		return nil
	}
	buf, ok := b.Export().(goja.ArrayBuffer)
	if !ok {
		return nil
	}
	off := int(o.Get("byteOffset").ToInteger())
	n := int(o.Get("length").ToInteger())
	data := buf.Bytes()
	if off < 0 || off+n > len(data) {
		return nil
	}
	return data[off : off+n]
}

func (env *GojaEnv) region(arr Ref, start, n int) (*goja.Object, bool) {
	o, ok := env.byteArray(arr)
	if !ok {
		return nil, false
	}
	length := int(o.Get("length").ToInteger())
	if start < 0 || n < 0 || start > length || n > length-start {
		env.throw("java/lang/ArrayIndexOutOfBoundsException",
			"Array region %d..%d out of bounds for length %d", start, start+n, length)
		return nil, false
	}
	return o, true
}

func (env *GojaEnv) GetByteArrayRegion(arr Ref, start int, dst []byte) {
	defer env.lock()()

	o, ok := env.region(arr, start, len(dst))
	if !ok {
		return
	}
	if b := arrayBytes(o); b != nil {
		copy(dst, b[start:])
		return
	}
	for i := range dst {
		dst[i] = byte(o.Get(strconv.Itoa(start + i)).ToInteger())
	}
}

func (env *GojaEnv) SetByteArrayRegion(arr Ref, start int, src []byte) {
	defer env.lock()()

	o, ok := env.region(arr, start, len(src))
	if !ok {
		return
	}
	if b := arrayBytes(o); b != nil {
		copy(b[start:], src)
		return
	}
	for i, c := range src {
		_ = o.Set(strconv.Itoa(start+i), int(c))
	}
}

func (env *GojaEnv) NewGlobalRef(obj Ref) Ref {
	defer env.lock()()

	v, ok := env.resolve(obj)
	if !ok {
		env.throw("java/lang/NullPointerException", "invalid reference %s", obj)
		return 0
	}
	if isNullish(v) {
		return 0
	}
	if env.eng.closed.Load() {
		return env.outOfMemory("engine closed")
	}
	h := env.eng.globals.Insert(0, v)
	if h == 0 {
		return env.outOfMemory("global reference table full")
	}
	return globalRef(h)
}

func (env *GojaEnv) DeleteGlobalRef(ref Ref) {
	if ref.Kind() != RefGlobal {
		return
	}
	env.eng.globals.Remove(ref.handle())
}

func (env *GojaEnv) DeleteLocalRef(ref Ref) {
	if ref.Kind() != RefLocal {
		return
	}
	env.locals.Remove(ref.handle())
}

func (env *GojaEnv) IsSameObject(a, b Ref) bool {
	defer env.lock()()

	va, okA := env.resolve(a)
	vb, okB := env.resolve(b)
	if !okA || !okB {
		return false
	}
	if isNullish(va) || isNullish(vb) {
		return isNullish(va) && isNullish(vb)
	}
	return va.SameAs(vb)
}

func (env *GojaEnv) PushLocalFrame() {
	env.depth++
}

func (env *GojaEnv) PopLocalFrame(result Ref) Ref {
	if env.depth == 0 {
		return result
	}
	defer env.lock()()

	v, ok := env.resolve(result)
	env.locals.RemoveTagged(env.depth)
	env.depth--
	if !ok || isNullish(v) {
		return 0
	}
	return env.newLocal(v)
}

func (env *GojaEnv) toJSArgs(m *MethodID, args []Value) ([]goja.Value, bool) {
	params := m.Sig.Params
	if len(args) != len(params) {
		env.throw("java/lang/IllegalArgumentException",
			"%s: wrong number of arguments: %d, expected %d", m, len(args), len(params))
		return nil, false
	}
	out := make([]goja.Value, len(args))
	for i, a := range args {
		p := params[i]
		want := p.Kind
		if want == signature.Array {
			want = signature.Object
		}
		if a.Kind() != want {
			env.throw("java/lang/IllegalArgumentException",
				"%s: argument %d is %s, expected %s", m, i, a.Kind(), p)
			return nil, false
		}
		switch p.Kind {
		case signature.Boolean:
			out[i] = env.eng.vm.ToValue(a.Bool())
		case signature.Float:
			out[i] = env.eng.vm.ToValue(float64(a.Float()))
		case signature.Double:
			out[i] = env.eng.vm.ToValue(a.Double())
		case signature.Object, signature.Array:
			v, ok := env.resolve(a.Ref())
			if !ok {
				env.throw("java/lang/NullPointerException", "%s: argument %d: invalid reference %s", m, i, a.Ref())
				return nil, false
			}
			out[i] = v
		default:
			n, _ := a.Integer()
			out[i] = env.eng.vm.ToValue(n)
		}
	}
	return out, true
}

func (env *GojaEnv) fromJS(t signature.Type, v goja.Value) Value {
	switch t.Kind {
	case signature.Void:
		return Void()
	case signature.Object, signature.Array:
		return Object(env.newLocal(v))
	}
	if v == nil {
		v = goja.Undefined()
	}
	switch t.Kind {
	case signature.Boolean:
		return Boolean(v.ToBoolean())
	case signature.Byte:
		return Byte(int8(v.ToInteger()))
	case signature.Char:
		return Char(uint16(v.ToInteger()))
	case signature.Short:
		return Short(int16(v.ToInteger()))
	case signature.Int:
		return Int(int32(v.ToInteger()))
	case signature.Long:
		return Long(v.ToInteger())
	case signature.Float:
		return Float(float32(v.ToFloat()))
	case signature.Double:
		return Double(v.ToFloat())
	}
	return Void()
}
