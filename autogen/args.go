// Package autogen generates the Cython binding methods for PARI library
// functions from the pari.desc catalog: a declaration listing, methods of
// the Gen class (value surface) and methods of the Pari class (instance
// surface).
package autogen

import "fmt"

// Argument is one entry of a parsed call signature. Each kind knows how to
// render itself in the four emission contexts: the C declaration stream,
// the generated method's parameter list, the conversion statements that run
// before the native call, and the call expression itself. All operations
// are pure text producers; nothing here writes to a stream.
//
// The set of kinds is closed: a prototype code without a kind is an
// ErrUnsupportedPrototype at parse time, never a partially-handled
// argument.
type Argument interface {
	// Name is the Python-facing parameter name.
	Name() string
	// CType is the C type used in the declaration stream.
	CType() string
	// ProtoCode is the fragment contributed to the generated method's
	// parameter list, including any default literal.
	ProtoCode() string
	// ConvertCode returns statements converting the bound parameter into a
	// native-ready temporary, or "" when the parameter is passed as-is.
	// Conversions reference only this argument's own name and temporary.
	ConvertCode() string
	// CallCode is the fragment used inside the native call expression.
	CallCode() string
	// DeprecationCode returns a runtime warning statement for an argument
	// whose name is missing from the help text, else "".
	DeprecationCode(function string) string

	isArgument()
}

// argBase carries the state shared by every argument kind.
type argBase struct {
	name         string
	index        int    // position in the signature, leading arguments included
	dflt         string // default literal; meaningful only when optional
	optional     bool
	undocumented bool // no name in the help text; name was synthesized
}

func (a *argBase) Name() string { return a.name }
func (a *argBase) isArgument()  {}

func (a *argBase) DeprecationCode(function string) string {
	if !a.undocumented {
		return ""
	}
	s := "        if %[1]s is not None:\n"
	s += "            from warnings import warn\n"
	s += "            warn('argument %[1]s of the PARI/GP function %[2]s is undocumented: future changes may not be backwards compatible', DeprecationWarning)\n"
	return fmt.Sprintf(s, a.name, function)
}

// temp is the name of the converted native temporary.
func (a *argBase) temp() string { return "_" + a.name }

// GenArg is a handle-typed argument (prototype codes G and W).
type GenArg struct{ argBase }

func (a *GenArg) CType() string { return "GEN" }

func (a *GenArg) ProtoCode() string {
	if !a.optional {
		return a.name
	}
	if a.dflt == "" {
		return a.name + "=None"
	}
	return a.name + "=" + a.dflt
}

func (a *GenArg) ConvertCode() string {
	if a.index == 0 {
		// The receiver of a Gen method is already a Gen.
		return fmt.Sprintf("        cdef GEN %s = %s.g\n", a.temp(), a.name)
	}
	if a.optional && a.dflt == "" {
		s := "        cdef GEN %[1]s = NULL\n"
		s += "        if %[2]s is not None:\n"
		s += "            %[2]s = objtogen(%[2]s)\n"
		s += "            %[1]s = (<Gen>%[2]s).g\n"
		return fmt.Sprintf(s, a.temp(), a.name)
	}
	s := "        %[2]s = objtogen(%[2]s)\n"
	s += "        cdef GEN %[1]s = (<Gen>%[2]s).g\n"
	return fmt.Sprintf(s, a.temp(), a.name)
}

func (a *GenArg) CallCode() string { return a.temp() }

// LongArg is a small integer argument (prototype code L).
type LongArg struct{ argBase }

func (a *LongArg) CType() string { return "long" }

func (a *LongArg) ProtoCode() string {
	if !a.optional {
		return "long " + a.name
	}
	dflt := a.dflt
	if dflt == "" {
		dflt = "0"
	}
	return "long " + a.name + "=" + dflt
}

func (a *LongArg) ConvertCode() string { return "" }
func (a *LongArg) CallCode() string { return a.name }

// ULongArg is an unsigned integer argument (prototype code U).
type ULongArg struct{ argBase }

func (a *ULongArg) CType() string { return "unsigned long" }

func (a *ULongArg) ProtoCode() string {
	if !a.optional {
		return "unsigned long " + a.name
	}
	dflt := a.dflt
	if dflt == "" {
		dflt = "0"
	}
	return "unsigned long " + a.name + "=" + dflt
}

func (a *ULongArg) ConvertCode() string { return "" }
func (a *ULongArg) CallCode() string { return a.name }

// StringArg is a character string argument (prototype codes r and s).
type StringArg struct{ argBase }

func (a *StringArg) CType() string { return "char *" }

func (a *StringArg) ProtoCode() string {
	if !a.optional {
		return a.name
	}
	if a.dflt == "" {
		return a.name + "=None"
	}
	return a.name + "=" + a.dflt
}

func (a *StringArg) ConvertCode() string {
	if a.optional && a.dflt == "" {
		s := "        cdef char* %[1]s = NULL\n"
		s += "        if %[2]s is not None:\n"
		s += "            %[2]s = to_bytes(%[2]s)\n"
		s += "            %[1]s = %[2]s\n"
		return fmt.Sprintf(s, a.temp(), a.name)
	}
	s := "        %[2]s = to_bytes(%[2]s)\n"
	s += "        cdef char* %[1]s = %[2]s\n"
	return fmt.Sprintf(s, a.temp(), a.name)
}

func (a *StringArg) CallCode() string { return a.temp() }

// VarArg is a polynomial variable argument (prototype code n), resolved to
// a variable number with get_var. The optional sentinel is -1.
type VarArg struct{ argBase }

func (a *VarArg) CType() string { return "long" }

func (a *VarArg) ProtoCode() string {
	if !a.optional {
		return a.name
	}
	return a.name + "=None"
}

func (a *VarArg) ConvertCode() string {
	if a.optional {
		s := "        cdef long %[1]s = -1\n"
		s += "        if %[2]s is not None:\n"
		s += "            %[1]s = get_var(%[2]s)\n"
		return fmt.Sprintf(s, a.temp(), a.name)
	}
	return fmt.Sprintf("        cdef long %s = get_var(%s)\n", a.temp(), a.name)
}

func (a *VarArg) CallCode() string { return a.temp() }

// PrecArg is the implicit real precision argument (prototype code p), or
// the bit precision variant (code b) when Bits is set. It never consumes a
// name from the help text and is always called "precision".
type PrecArg struct {
	argBase
	Bits bool
}

func (a *PrecArg) CType() string { return "long" }
func (a *PrecArg) ProtoCode() string { return "long precision=0" }

func (a *PrecArg) ConvertCode() string {
	if a.Bits {
		return ""
	}
	return "        precision = prec_bits_to_words(precision)\n"
}

func (a *PrecArg) CallCode() string { return "precision" }

func (a *PrecArg) DeprecationCode(string) string { return "" }

// VarargArg is the rest argument: the prototype's trailing * marker makes
// the remaining positional arguments one repeatable parameter, collected
// into a single vector handle.
type VarargArg struct{ argBase }

func (a *VarargArg) CType() string { return "GEN" }
func (a *VarargArg) ProtoCode() string { return "*" + a.name }

func (a *VarargArg) ConvertCode() string {
	s := "        %[2]s = objtogen(%[2]s)\n"
	s += "        cdef GEN %[1]s = (<Gen>%[2]s).g\n"
	return fmt.Sprintf(s, a.temp(), a.name)
}

func (a *VarargArg) CallCode() string { return a.temp() }

func (a *VarargArg) DeprecationCode(string) string { return "" }

// InstanceArg is the synthetic leading self argument of Pari instance
// methods. It appears in the parameter list only; it is excluded from the
// declaration stream and from the native call.
type InstanceArg struct{ argBase }

// NewInstanceArg returns the leading self argument to prepend when parsing
// for the instance-method surface.
func NewInstanceArg() *InstanceArg {
	return &InstanceArg{argBase{name: "self"}}
}

func (a *InstanceArg) CType() string { return "" }

func (a *InstanceArg) ProtoCode() string { return "self" }

func (a *InstanceArg) ConvertCode() string { return "" }

func (a *InstanceArg) CallCode() string { return "" }

func (a *InstanceArg) DeprecationCode(string) string { return "" }
