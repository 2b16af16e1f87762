package bridge

import (
	"fmt"

	"github.com/wippyai/tachyon-bridge/engine"
	"github.com/wippyai/tachyon-bridge/errors"
	"github.com/wippyai/tachyon-bridge/signature"
)

// Method describes a remote method by class, name and descriptor.
// Methods are immutable and usually declared as package variables.
type Method struct {
	Sig    *signature.Method
	Class  string
	Name   string
	desc   string
	Static bool
}

func newMethod(class, name, desc string, static bool) (*Method, error) {
	if class == "" || name == "" {
		return nil, errors.InvalidInput(errors.PhaseParse, "method needs a class and a name")
	}
	sig, err := signature.Parse(desc)
	if err != nil {
		return nil, err
	}
	if name == engine.ConstructorName && sig.Return.Kind != signature.Void {
		return nil, errors.InvalidData(errors.PhaseParse, []string{class, name}, "constructor must return V")
	}
	return &Method{Sig: sig, Class: class, Name: name, desc: desc, Static: static}, nil
}

// Virtual describes an instance method.
func Virtual(class, name, desc string) (*Method, error) {
	return newMethod(class, name, desc, false)
}

// Static describes a static method.
func Static(class, name, desc string) (*Method, error) {
	return newMethod(class, name, desc, true)
}

// Constructor describes a constructor.
func Constructor(class, desc string) (*Method, error) {
	return newMethod(class, engine.ConstructorName, desc, false)
}

func must(m *Method, err error) *Method {
	if err != nil {
		panic(fmt.Sprintf("bridge: %v", err))
	}
	return m
}

// MustVirtual is like Virtual but panics on a malformed descriptor.
func MustVirtual(class, name, desc string) *Method { return must(Virtual(class, name, desc)) }

// MustStatic is like Static but panics on a malformed descriptor.
func MustStatic(class, name, desc string) *Method { return must(Static(class, name, desc)) }

// MustConstructor is like Constructor but panics on a malformed descriptor.
func MustConstructor(class, desc string) *Method { return must(Constructor(class, desc)) }

// Descriptor returns the method descriptor.
func (m *Method) Descriptor() string { return m.desc }

// IsConstructor reports whether m describes a constructor.
func (m *Method) IsConstructor() bool { return m.Name == engine.ConstructorName }

func (m *Method) String() string {
	return m.Class + "." + m.Name + m.desc
}

func (m *Method) zero() engine.Value {
	switch k := m.Sig.Return.Kind; {
	case m.IsConstructor(), k.IsReference():
		return engine.Object(0)
	case k == signature.Void:
		return engine.Void()
	}
	return zeroOf(m.Sig.Return.Kind)
}

func zeroOf(k signature.Kind) engine.Value {
	switch k {
	case signature.Boolean:
		return engine.Boolean(false)
	case signature.Byte:
		return engine.Byte(0)
	case signature.Char:
		return engine.Char(0)
	case signature.Short:
		return engine.Short(0)
	case signature.Int:
		return engine.Int(0)
	case signature.Long:
		return engine.Long(0)
	case signature.Float:
		return engine.Float(0)
	case signature.Double:
		return engine.Double(0)
	}
	return engine.Void()
}
