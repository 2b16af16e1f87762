package signature

import (
	"errors"
	"testing"

	bridgeerrors "github.com/wippyai/tachyon-bridge/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		desc   string
		params []Kind
		ret    Kind
	}{
		{"()V", nil, Void},
		{"()J", nil, Long},
		{"(I)Ltachyon/client/TachyonFile;", []Kind{Int}, Object},
		{"(IZ)Ltachyon/client/TachyonFile;", []Kind{Int, Boolean}, Object},
		{"(Ljava/lang/String;Z)Z", []Kind{Object, Boolean}, Boolean},
		{"([BII)I", []Kind{Array, Int, Int}, Int},
		{"([B[B)I", []Kind{Array, Array}, Int},
		{"(BCSFD)D", []Kind{Byte, Char, Short, Float, Double}, Double},
		{"([[Ljava/lang/String;)[B", []Kind{Array}, Array},
		{
			"(Ltachyon/client/TachyonFS;Ltachyon/client/ReadType;Ltachyon/client/WriteType;JLjava/lang/String;)V",
			[]Kind{Object, Object, Object, Long, Object},
			Void,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			m, err := Parse(tt.desc)
			if err != nil {
				t.Fatalf("Parse(%q): %v", tt.desc, err)
			}
			if len(m.Params) != len(tt.params) {
				t.Fatalf("got %d params, want %d", len(m.Params), len(tt.params))
			}
			for i, k := range tt.params {
				if m.Params[i].Kind != k {
					t.Errorf("param %d = %v, want %v", i, m.Params[i].Kind, k)
				}
			}
			if m.Return.Kind != tt.ret {
				t.Errorf("return = %v, want %v", m.Return.Kind, tt.ret)
			}
			if m.String() != tt.desc {
				t.Errorf("String() = %q, want %q", m.String(), tt.desc)
			}
		})
	}
}

func TestParse_ClassNames(t *testing.T) {
	m, err := Parse("(Ljava/lang/String;[B)Ltachyon/client/InStream;")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Params[0].Is(StringClass) {
		t.Errorf("param 0 should be a String, got %s", m.Params[0])
	}
	if !m.Params[1].IsByteArray() {
		t.Errorf("param 1 should be [B, got %s", m.Params[1])
	}
	if m.Return.Class != "tachyon/client/InStream" {
		t.Errorf("return class = %q", m.Return.Class)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"V",
		"(",
		"(I",
		"(V)V",
		"(Ljava/lang/String)V",
		"(L;)V",
		"()",
		"()VV",
		"(Q)V",
		"([V)V",
		"(Ljava.lang.String;)V",
	}

	for _, desc := range tests {
		t.Run(desc, func(t *testing.T) {
			_, err := Parse(desc)
			if err == nil {
				t.Fatalf("Parse(%q) should fail", desc)
			}
			var be *bridgeerrors.Error
			if !errors.As(err, &be) {
				t.Fatalf("expected *errors.Error, got %T", err)
			}
			if be.Phase != bridgeerrors.PhaseParse || be.Kind != bridgeerrors.KindInvalidData {
				t.Errorf("got %s/%s", be.Phase, be.Kind)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		desc string
		kind Kind
	}{
		{"Z", Boolean},
		{"J", Long},
		{"[B", Array},
		{"Ltachyon/client/ReadType;", Object},
	}
	for _, tt := range tests {
		typ, err := ParseType(tt.desc)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", tt.desc, err)
		}
		if typ.Kind != tt.kind {
			t.Errorf("ParseType(%q).Kind = %v, want %v", tt.desc, typ.Kind, tt.kind)
		}
		if typ.String() != tt.desc {
			t.Errorf("String() = %q, want %q", typ.String(), tt.desc)
		}
	}

	if _, err := ParseType("II"); err == nil {
		t.Error("ParseType should reject trailing characters")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on malformed descriptor")
		}
	}()
	MustParse("(I")
}

func TestKind_String(t *testing.T) {
	if Long.String() != "long" {
		t.Errorf("Long.String() = %q", Long.String())
	}
	if Kind(200).String() != "unknown" {
		t.Errorf("out of range kind should be unknown")
	}
	if !Array.IsReference() || Int.IsReference() {
		t.Error("IsReference mismatch")
	}
}
