package signature

import (
	"strings"

	"github.com/wippyai/tachyon-bridge/errors"
)

// Kind is the category of a remote value type.
type Kind uint8

const (
	Void Kind = iota
	Boolean
	Byte
	Char
	Short
	Int
	Long
	Float
	Double
	Object
	Array
)

var kindNames = [...]string{
	Void:    "void",
	Boolean: "boolean",
	Byte:    "byte",
	Char:    "char",
	Short:   "short",
	Int:     "int",
	Long:    "long",
	Float:   "float",
	Double:  "double",
	Object:  "object",
	Array:   "array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsReference reports whether values of this kind are object references.
func (k Kind) IsReference() bool {
	return k == Object || k == Array
}

var primitiveCodes = map[byte]Kind{
	'V': Void,
	'Z': Boolean,
	'B': Byte,
	'C': Char,
	'S': Short,
	'I': Int,
	'J': Long,
	'F': Float,
	'D': Double,
}

var kindCodes = map[Kind]byte{
	Void:    'V',
	Boolean: 'Z',
	Byte:    'B',
	Char:    'C',
	Short:   'S',
	Int:     'I',
	Long:    'J',
	Float:   'F',
	Double:  'D',
}

// Type is a parsed field descriptor.
// Class is set for Object; Elem is set for Array.
type Type struct {
	Elem  *Type
	Class string
	Kind  Kind
}

// String encodes the type back to descriptor form.
func (t Type) String() string {
	var b strings.Builder
	t.encode(&b)
	return b.String()
}

func (t Type) encode(b *strings.Builder) {
	switch t.Kind {
	case Object:
		b.WriteByte('L')
		b.WriteString(t.Class)
		b.WriteByte(';')
	case Array:
		b.WriteByte('[')
		if t.Elem != nil {
			t.Elem.encode(b)
		}
	default:
		b.WriteByte(kindCodes[t.Kind])
	}
}

// Is reports whether t is the object type of the given class.
func (t Type) Is(class string) bool {
	return t.Kind == Object && t.Class == class
}

// IsByteArray reports whether t is [B.
func (t Type) IsByteArray() bool {
	return t.Kind == Array && t.Elem != nil && t.Elem.Kind == Byte
}

// Method is a parsed method descriptor.
type Method struct {
	raw    string
	Params []Type
	Return Type
}

// String returns the descriptor the method was parsed from.
func (m *Method) String() string {
	return m.raw
}

// Common object types.
const (
	StringClass = "java/lang/String"
)

// Parse parses a method descriptor such as "(Ljava/lang/String;Z)Z".
func Parse(desc string) (*Method, error) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, errors.InvalidData(errors.PhaseParse, []string{desc}, "method descriptor must start with '('")
	}

	m := &Method{raw: desc}
	pos := 1
	for {
		if pos >= len(desc) {
			return nil, errors.InvalidData(errors.PhaseParse, []string{desc}, "unterminated parameter list")
		}
		if desc[pos] == ')' {
			pos++
			break
		}
		t, n, err := parseType(desc, pos)
		if err != nil {
			return nil, err
		}
		if t.Kind == Void {
			return nil, errors.InvalidData(errors.PhaseParse, []string{desc}, "void is not a valid parameter type")
		}
		m.Params = append(m.Params, t)
		pos = n
	}

	ret, n, err := parseType(desc, pos)
	if err != nil {
		return nil, err
	}
	if n != len(desc) {
		return nil, errors.InvalidData(errors.PhaseParse, []string{desc}, "trailing characters after return type")
	}
	m.Return = ret
	return m, nil
}

// ParseType parses a single field descriptor such as "[B" or "Ljava/lang/String;".
func ParseType(desc string) (Type, error) {
	t, n, err := parseType(desc, 0)
	if err != nil {
		return Type{}, err
	}
	if n != len(desc) {
		return Type{}, errors.InvalidData(errors.PhaseParse, []string{desc}, "trailing characters after type")
	}
	return t, nil
}

// MustParse is like Parse but panics on a malformed descriptor.
// Use it for descriptor literals only.
func MustParse(desc string) *Method {
	m, err := Parse(desc)
	if err != nil {
		panic(err)
	}
	return m
}

func parseType(desc string, pos int) (Type, int, error) {
	if pos >= len(desc) {
		return Type{}, pos, errors.InvalidData(errors.PhaseParse, []string{desc}, "missing type")
	}

	c := desc[pos]
	if k, ok := primitiveCodes[c]; ok {
		return Type{Kind: k}, pos + 1, nil
	}

	switch c {
	case 'L':
		end := strings.IndexByte(desc[pos:], ';')
		if end < 0 {
			return Type{}, pos, errors.InvalidData(errors.PhaseParse, []string{desc}, "unterminated class name")
		}
		class := desc[pos+1 : pos+end]
		if class == "" || strings.ContainsAny(class, "()[.") {
			return Type{}, pos, errors.InvalidData(errors.PhaseParse, []string{desc}, "invalid class name "+class)
		}
		return Type{Kind: Object, Class: class}, pos + end + 1, nil

	case '[':
		elem, n, err := parseType(desc, pos+1)
		if err != nil {
			return Type{}, pos, err
		}
		if elem.Kind == Void {
			return Type{}, pos, errors.InvalidData(errors.PhaseParse, []string{desc}, "array of void")
		}
		return Type{Kind: Array, Elem: &elem}, n, nil
	}

	return Type{}, pos, errors.New(errors.PhaseParse, errors.KindInvalidData).
		Path(desc).
		Value(c).
		Detail("unknown type code %q at offset %d", c, pos).
		Build()
}
