package autogen

import "fmt"

// Return describes how the native call's result is captured and handed
// back to Python. Every generated method enters the signal-guarded section
// with sig_on() immediately before the call; the Return kind decides what
// must happen immediately after: handle results are copied off the PARI
// stack by new_gen, void calls discard the stack top with clear_stack, and
// plain integer results are returned directly.
type Return interface {
	// CType is the C return type used in the declaration stream.
	CType() string
	// AssignCode wraps the native call expression in its result-capture
	// statement.
	AssignCode(call string) string
	// ReturnCode is the final statement producing the Python value.
	ReturnCode() string
}

// GenRet is a handle-typed result (the default, and prototype code m).
type GenRet struct{}

func (GenRet) CType() string { return "GEN" }

func (GenRet) AssignCode(call string) string {
	return fmt.Sprintf("        cdef GEN _ret = %s\n", call)
}

func (GenRet) ReturnCode() string { return "        return new_gen(_ret)\n" }

// IntRet is an int result (prototype code i).
type IntRet struct{}

func (IntRet) CType() string { return "int" }

func (IntRet) AssignCode(call string) string {
	return fmt.Sprintf("        cdef int _ret = %s\n", call)
}

func (IntRet) ReturnCode() string { return "        return _ret\n" }

// LongRet is a long result (prototype code l).
type LongRet struct{}

func (LongRet) CType() string { return "long" }

func (LongRet) AssignCode(call string) string {
	return fmt.Sprintf("        cdef long _ret = %s\n", call)
}

func (LongRet) ReturnCode() string { return "        return _ret\n" }

// ULongRet is an unsigned long result (prototype code u).
type ULongRet struct{}

func (ULongRet) CType() string { return "unsigned long" }

func (ULongRet) AssignCode(call string) string {
	return fmt.Sprintf("        cdef unsigned long _ret = %s\n", call)
}

func (ULongRet) ReturnCode() string { return "        return _ret\n" }

// VoidRet is a void result (prototype code v). The call leaves garbage on
// the PARI stack, so the stack top is cleared right after it.
type VoidRet struct{}

func (VoidRet) CType() string { return "void" }

func (VoidRet) AssignCode(call string) string {
	return fmt.Sprintf("        %s\n", call)
}

func (VoidRet) ReturnCode() string { return "        clear_stack()\n" }

// StrRet is a C string result (prototype code r in the return position).
type StrRet struct{}

func (StrRet) CType() string { return "char *" }

func (StrRet) AssignCode(call string) string {
	return fmt.Sprintf("        cdef char* _ret = %s\n", call)
}

func (StrRet) ReturnCode() string { return "        return to_string(_ret)\n" }
