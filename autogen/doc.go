package autogen

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/saraedum/cypari2/desc"
)

// DocSource supplies formatted documentation for a function name. The
// returned text is embedded verbatim (indented) in the generated method's
// docstring; an empty string suppresses the docstring block.
type DocSource interface {
	Doc(function string) string
}

// HelpDoc derives documentation from the catalog records themselves: the
// record's Doc field when present, otherwise the descriptive part of its
// Help line. Obsolete functions get a fixed notice instead, since their
// catalog text only tells GP users what to call instead.
type HelpDoc struct {
	docs map[string]string
}

const obsoleteDoc = "This routine is obsolete, kept for backward compatibility only."

func NewHelpDoc(funcs []desc.Function) *HelpDoc {
	h := &HelpDoc{docs: make(map[string]string, len(funcs))}
	for _, fn := range funcs {
		h.docs[fn.Name] = renderDoc(fn)
	}
	return h
}

func (h *HelpDoc) Doc(function string) string {
	return h.docs[function]
}

// helpPrefixRe matches the "name(params):" lead-in of a help line.
var helpPrefixRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*\([^)]*\): *`)

func renderDoc(fn desc.Function) string {
	if fn.Obsolete != "" {
		return obsoleteDoc
	}
	text := fn.Doc
	if text == "" {
		text = helpPrefixRe.ReplaceAllString(fn.Help, "")
	}
	return capitalize(strings.TrimSpace(text))
}

func capitalize(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 || unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
