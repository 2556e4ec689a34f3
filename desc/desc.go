// Package desc reads the PARI function catalog (pari.desc).
package desc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// Function is one catalog record. Fields mirror the pari.desc headers with
// hyphens removed (C-Name becomes CName).
type Function struct {
	Name      string // GP-level function name
	CName     string // C library symbol to call
	Prototype string // GP prototype code string, possibly empty
	Help      string // one-line help, "name(params): description"
	Doc       string // long-form documentation override, empty if absent
	Obsolete  string // obsolescence date, empty for current functions
	Class     string
	Section   string
}

// Source yields the catalog records to generate bindings from.
type Source interface {
	Functions() ([]Function, error)
}

// MalformedRecordError reports a catalog record that cannot be used at all.
// Unlike an unsupported prototype, which skips a single function, a
// malformed record aborts the whole run.
type MalformedRecordError struct {
	Line   int    // 1-based line where the record starts
	Name   string // function name if known
	Reason string
}

func (e *MalformedRecordError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("pari.desc line %d: record %q: %s", e.Line, e.Name, e.Reason)
	}
	return fmt.Sprintf("pari.desc line %d: %s", e.Line, e.Reason)
}

// FileSource reads records from a pari.desc file on disk.
type FileSource struct {
	Path string
}

func (s FileSource) Functions() ([]Function, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog: %w", err)
	}
	defer f.Close()
	return ReadDesc(f)
}

var headerRe = regexp.MustCompile(`^([A-Za-z-]+): *(.*)$`)

// ReadDesc parses the pari.desc block format: records separated by blank
// lines, "Header: value" lines, and continuation lines starting with
// whitespace that extend the previous value. Header names are lowercased
// and hyphens dropped, so "C-Name" and "Cname" are the same key.
func ReadDesc(r io.Reader) ([]Function, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var funcs []Function
	fields := make(map[string]string)
	lineno := 0
	start := 1
	lastKey := ""

	flush := func() error {
		if len(fields) == 0 {
			return nil
		}
		fn, err := recordToFunction(fields, start)
		if err != nil {
			return err
		}
		funcs = append(funcs, fn)
		fields = make(map[string]string)
		lastKey = ""
		return nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineno++

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			start = lineno + 1
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			// Continuation of the previous header's value.
			if lastKey == "" {
				return nil, &MalformedRecordError{Line: lineno, Reason: "continuation line without a header"}
			}
			fields[lastKey] += "\n" + strings.TrimSpace(line)
			continue
		}

		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			return nil, &MalformedRecordError{Line: lineno, Name: fields["function"], Reason: fmt.Sprintf("unparseable line %q", line)}
		}
		key := strings.ReplaceAll(strings.ToLower(m[1]), "-", "")
		fields[key] = m[2]
		lastKey = key
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return funcs, nil
}

func recordToFunction(fields map[string]string, line int) (Function, error) {
	name := fields["function"]
	if name == "" {
		return Function{}, &MalformedRecordError{Line: line, Reason: "missing Function header"}
	}
	cname := fields["cname"]
	if cname == "" {
		return Function{}, &MalformedRecordError{Line: line, Name: name, Reason: "missing C-Name header"}
	}

	fn := Function{
		Name:      name,
		CName:     cname,
		Prototype: fields["prototype"],
		Help:      fields["help"],
		Doc:       fields["doc"],
		Obsolete:  fields["obsolete"],
		Class:     fields["class"],
		Section:   fields["section"],
	}
	if fn.Class == "" {
		fn.Class = "unknown"
	}
	if fn.Section == "" {
		fn.Section = "unknown"
	}
	return fn, nil
}
