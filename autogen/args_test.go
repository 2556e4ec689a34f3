package autogen

import (
	"strings"
	"testing"
)

func TestArgumentFragments(t *testing.T) {
	tests := []struct {
		name    string
		arg     Argument
		ctype   string
		proto   string
		convert string
		call    string
	}{
		{
			name:  "required GEN receiver",
			arg:   &GenArg{argBase{name: "x", index: 0}},
			ctype: "GEN", proto: "x",
			convert: "        cdef GEN _x = x.g\n",
			call:    "_x",
		},
		{
			name:  "required GEN",
			arg:   &GenArg{argBase{name: "y", index: 1}},
			ctype: "GEN", proto: "y",
			convert: "        y = objtogen(y)\n        cdef GEN _y = (<Gen>y).g\n",
			call:    "_y",
		},
		{
			name:  "optional GEN",
			arg:   &GenArg{argBase{name: "tech", index: 2, optional: true}},
			ctype: "GEN", proto: "tech=None",
			convert: "        cdef GEN _tech = NULL\n" +
				"        if tech is not None:\n" +
				"            tech = objtogen(tech)\n" +
				"            _tech = (<Gen>tech).g\n",
			call: "_tech",
		},
		{
			name:  "long",
			arg:   &LongArg{argBase{name: "n", index: 1}},
			ctype: "long", proto: "long n",
			convert: "",
			call:    "n",
		},
		{
			name:  "long with default",
			arg:   &LongArg{argBase{name: "flag", index: 1, optional: true, dflt: "0"}},
			ctype: "long", proto: "long flag=0",
			convert: "",
			call:    "flag",
		},
		{
			name:  "unsigned long",
			arg:   &ULongArg{argBase{name: "k", index: 0}},
			ctype: "unsigned long", proto: "unsigned long k",
			convert: "",
			call:    "k",
		},
		{
			name:  "string",
			arg:   &StringArg{argBase{name: "s", index: 1}},
			ctype: "char *", proto: "s",
			convert: "        s = to_bytes(s)\n        cdef char* _s = s\n",
			call:    "_s",
		},
		{
			name:  "optional string",
			arg:   &StringArg{argBase{name: "fmt", index: 1, optional: true}},
			ctype: "char *", proto: "fmt=None",
			convert: "        cdef char* _fmt = NULL\n" +
				"        if fmt is not None:\n" +
				"            fmt = to_bytes(fmt)\n" +
				"            _fmt = fmt\n",
			call: "_fmt",
		},
		{
			name:  "variable",
			arg:   &VarArg{argBase{name: "v", index: 1}},
			ctype: "long", proto: "v",
			convert: "        cdef long _v = get_var(v)\n",
			call:    "_v",
		},
		{
			name:  "optional variable",
			arg:   &VarArg{argBase{name: "x", index: 1, optional: true}},
			ctype: "long", proto: "x=None",
			convert: "        cdef long _x = -1\n" +
				"        if x is not None:\n" +
				"            _x = get_var(x)\n",
			call: "_x",
		},
		{
			name:  "precision",
			arg:   &PrecArg{argBase: argBase{name: "precision", index: 3}},
			ctype: "long", proto: "long precision=0",
			convert: "        precision = prec_bits_to_words(precision)\n",
			call:    "precision",
		},
		{
			name:  "bit precision",
			arg:   &PrecArg{argBase: argBase{name: "precision", index: 3}, Bits: true},
			ctype: "long", proto: "long precision=0",
			convert: "",
			call:    "precision",
		},
		{
			name:  "vararg",
			arg:   &VarargArg{argBase{name: "args", index: 1}},
			ctype: "GEN", proto: "*args",
			convert: "        args = objtogen(args)\n        cdef GEN _args = (<Gen>args).g\n",
			call:    "_args",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.arg.CType(); got != tt.ctype {
				t.Errorf("CType() = %q, want %q", got, tt.ctype)
			}
			if got := tt.arg.ProtoCode(); got != tt.proto {
				t.Errorf("ProtoCode() = %q, want %q", got, tt.proto)
			}
			if got := tt.arg.ConvertCode(); got != tt.convert {
				t.Errorf("ConvertCode() = %q, want %q", got, tt.convert)
			}
			if got := tt.arg.CallCode(); got != tt.call {
				t.Errorf("CallCode() = %q, want %q", got, tt.call)
			}
		})
	}
}

// No argument's conversion may reference another argument's parameter or
// temporary, so conversions can be emitted in any order.
func TestConversionIndependence(t *testing.T) {
	args, _, err := Parse("GD0,L,DGp", "bnfinit(P,{flag=0},{tech=[]}): ...", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i, a := range args {
		conv := a.ConvertCode()
		if conv == "" {
			continue
		}
		for j, other := range args {
			if i == j {
				continue
			}
			for _, ref := range []string{"_" + other.Name() + " ", "_" + other.Name() + "\n"} {
				if strings.Contains(conv, ref) {
					t.Errorf("conversion of %s references temporary of %s:\n%s", a.Name(), other.Name(), conv)
				}
			}
		}
	}
}

func TestInstanceArg(t *testing.T) {
	a := NewInstanceArg()
	if a.ProtoCode() != "self" {
		t.Errorf("ProtoCode() = %q, want \"self\"", a.ProtoCode())
	}
	if a.ConvertCode() != "" || a.CallCode() != "" || a.DeprecationCode("f") != "" {
		t.Error("self must not convert, appear in the call, or warn")
	}
}

func TestDeprecationCode(t *testing.T) {
	a := &GenArg{argBase{name: "arg2", index: 1, optional: true, undocumented: true}}
	code := a.DeprecationCode("polredabs")
	if !strings.Contains(code, "DeprecationWarning") {
		t.Errorf("missing DeprecationWarning in %q", code)
	}
	if !strings.Contains(code, "polredabs") || !strings.Contains(code, "arg2") {
		t.Errorf("warning must name the function and the argument: %q", code)
	}
}
