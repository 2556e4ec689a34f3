package autogen

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnsupportedPrototype marks a prototype using a GP type code the
// argument model does not implement. The caller must skip the whole
// function rather than emit partial code.
var ErrUnsupportedPrototype = errors.New("unsupported prototype code")

var (
	helpParamsRe = regexp.MustCompile(`^[^(]*\(([^)]*)\)`)
	identRe      = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// helpNames extracts the declared parameter names from the leading
// "name(params):" part of a help string. Optional-argument braces and
// default values are stripped: "bnfinit(P,{flag=0},{tech=[]})" yields
// P, flag, tech.
func helpNames(help string) []string {
	m := helpParamsRe.FindStringSubmatch(help)
	if m == nil {
		return nil
	}
	var names []string
	for _, item := range strings.Split(m[1], ",") {
		if j := strings.IndexByte(item, '='); j >= 0 {
			item = item[:j]
		}
		if id := identRe.FindString(item); id != "" {
			names = append(names, id)
		}
	}
	return names
}

// isCode reports whether c can follow a bare default marker, i.e. is a
// type-code letter rather than the first character of a default literal.
func isCode(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Parse scans a GP prototype string left to right and builds the ordered
// argument sequence plus the return descriptor. Parameter names are drawn
// in order from the help text's declared parameter list; when that list is
// exhausted the name is synthesized positionally and the argument is
// flagged undocumented.
//
// When leading is non-empty (the instance-method surface), the given
// descriptors are prepended to the result and shift all positions; the
// grammar itself is family-agnostic.
func Parse(prototype, help string, leading []Argument) ([]Argument, Return, error) {
	names := helpNames(help)
	nextName := 0

	args := append([]Argument(nil), leading...)

	proto := prototype
	var ret Return = GenRet{}
	if len(proto) > 0 {
		switch proto[0] {
		case 'i':
			ret = IntRet{}
			proto = proto[1:]
		case 'l':
			ret = LongRet{}
			proto = proto[1:]
		case 'u':
			ret = ULongRet{}
			proto = proto[1:]
		case 'v':
			ret = VoidRet{}
			proto = proto[1:]
		case 'm':
			// A GEN that is not stack-allocated; new_gen copies it
			// like any other handle result.
			ret = GenRet{}
			proto = proto[1:]
		}
	}

	for i := 0; i < len(proto); {
		c := proto[i]
		i++

		optional := false
		explicit := false
		dflt := ""

		if c == 'D' {
			// Default marker: either "D<code>" with the kind's sentinel
			// default, or "D<default>,<code>," with an explicit literal.
			optional = true
			if i >= len(proto) {
				return nil, nil, fmt.Errorf("%w: dangling D in %q", ErrUnsupportedPrototype, prototype)
			}
			if !isCode(proto[i]) {
				explicit = true
				j := strings.IndexByte(proto[i:], ',')
				if j < 0 {
					return nil, nil, fmt.Errorf("%w: unterminated default in %q", ErrUnsupportedPrototype, prototype)
				}
				dflt = proto[i : i+j]
				i += j + 1
				if i >= len(proto) {
					return nil, nil, fmt.Errorf("%w: default without type code in %q", ErrUnsupportedPrototype, prototype)
				}
			}
			c = proto[i]
			i++
			if explicit {
				if i >= len(proto) || proto[i] != ',' {
					return nil, nil, fmt.Errorf("%w: missing comma after default code in %q", ErrUnsupportedPrototype, prototype)
				}
				i++
			}
		}

		// A rest marker turns the remainder of the prototype into one
		// repeatable argument and ends the scan.
		if i < len(proto) && proto[i] == '*' && (c == 'G' || c == 's') {
			args = append(args, &VarargArg{argBase{name: "args", index: len(args)}})
			break
		}

		base := func() argBase {
			b := argBase{index: len(args), dflt: dflt, optional: optional}
			if nextName < len(names) {
				b.name = names[nextName]
				nextName++
			} else {
				b.name = "arg" + strconv.Itoa(len(args)-len(leading)+1)
				b.undocumented = true
			}
			return b
		}

		switch c {
		case 'G', 'W':
			args = append(args, &GenArg{base()})
		case 'L':
			args = append(args, &LongArg{base()})
		case 'U':
			args = append(args, &ULongArg{base()})
		case 'n':
			args = append(args, &VarArg{base()})
		case 'r', 's':
			args = append(args, &StringArg{base()})
		case 'p':
			args = append(args, &PrecArg{argBase: argBase{name: "precision", index: len(args)}})
		case 'b':
			args = append(args, &PrecArg{argBase: argBase{name: "precision", index: len(args)}, Bits: true})
		default:
			return nil, nil, fmt.Errorf("%w %q in %q", ErrUnsupportedPrototype, string(c), prototype)
		}
	}

	return args, ret, nil
}
