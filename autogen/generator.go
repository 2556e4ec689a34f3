package autogen

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/saraedum/cypari2/desc"
)

const genBanner = "# This file is auto-generated by autogen (github.com/saraedum/cypari2)\n" +
	"\n" +
	"cdef class Gen_auto:\n" +
	"    \"\"\"\n" +
	"    Part of the :class:`Gen` class containing auto-generated functions.\n" +
	"\n" +
	"    This class is not meant to be used directly, use the derived class\n" +
	"    :class:`Gen` instead.\n" +
	"    \"\"\"\n"

const instanceBanner = "# This file is auto-generated by autogen (github.com/saraedum/cypari2)\n" +
	"\n" +
	"cdef class Pari_auto:\n" +
	"    \"\"\"\n" +
	"    Part of the :class:`Pari` class containing auto-generated functions.\n" +
	"\n" +
	"    You must never use this class directly (in fact, Python may crash\n" +
	"    if you do), use the derived class :class:`Pari` instead.\n" +
	"    \"\"\"\n"

const declBanner = "# This file is auto-generated by autogen (github.com/saraedum/cypari2)\n" +
	"\n" +
	"from .types cimport *\n" +
	"\n" +
	"cdef extern from *:\n"

var functionRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// DefaultBlacklist returns the built-in deny-list of functions that are
// never translated: unsafe, redundant, or reserved in Python.
func DefaultBlacklist() map[string]bool {
	return map[string]bool{
		"O":           true, // O(p^e) needs special parser support
		"alias":       true, // not needed and difficult documentation
		"listcreate":  true, // "redundant and obsolete" according to PARI
		"allocatemem": true, // better hand-written support in the Pari class
		"global":      true, // invalid in Python (and obsolete)
		"inline":      true, // total confusion
		"uninline":    true,
		"local":       true,
		"my":          true,
	}
}

// Generator drives one batch pass over the catalog and writes the three
// artifacts: the declaration listing, the Gen method file and the Pari
// method file.
type Generator struct {
	GenFile      string // auto_gen.pxi: methods of the Gen class
	InstanceFile string // auto_instance.pxi: methods of the Pari class
	DeclFile     string // auto_paridecl.pxd: C declarations

	Blacklist map[string]bool
	Docs      DocSource // nil means derive docs from the records
	Progress  io.Writer // accepted/rejected listing; nil silences it

	log commonlog.Logger
}

// New returns a Generator writing the conventional three artifacts under
// outputDir, with the built-in deny-list.
func New(outputDir string) *Generator {
	return &Generator{
		GenFile:      filepath.Join(outputDir, "auto_gen.pxi"),
		InstanceFile: filepath.Join(outputDir, "auto_instance.pxi"),
		DeclFile:     filepath.Join(outputDir, "auto_paridecl.pxd"),
		Blacklist:    DefaultBlacklist(),
		log:          commonlog.GetLogger("autogen"),
	}
}

// Accepts decides whether a catalog record is translatable at all: the
// name must be a plain identifier outside the deny-list, the class must be
// "basic" (everything else is internal or specific to gp/gp2c), and
// control-flow constructs like if and return cannot be expressed as calls.
func (g *Generator) Accepts(name, class, section string) bool {
	if g.Blacklist[name] {
		return false
	}
	if !functionRe.MatchString(name) {
		return false
	}
	if class != "basic" {
		return false
	}
	if section == "programming/control" {
		return false
	}
	return true
}

// Run performs one generation pass: records are pulled from src, sorted by
// function name, filtered and emitted. Artifacts are written to temporary
// paths and renamed into place only after the whole pass succeeds, so an
// interrupted or failed run never clobbers previously generated files.
func (g *Generator) Run(src desc.Source) error {
	funcs, err := src.Functions()
	if err != nil {
		return err
	}
	sort.Slice(funcs, func(i, j int) bool { return funcs[i].Name < funcs[j].Name })

	docs := g.Docs
	if docs == nil {
		docs = NewHelpDoc(funcs)
	}
	progress := g.Progress
	if progress == nil {
		progress = io.Discard
	}

	gen, err := createArtifact(g.GenFile, genBanner)
	if err != nil {
		return err
	}
	inst, err := createArtifact(g.InstanceFile, instanceBanner)
	if err != nil {
		gen.discard()
		return err
	}
	decl, err := createArtifact(g.DeclFile, declBanner)
	if err != nil {
		gen.discard()
		inst.discard()
		return err
	}
	arts := []*artifact{gen, inst, decl}
	discardAll := func() {
		for _, a := range arts {
			a.discard()
		}
	}

	fmt.Fprint(progress, "Generating PARI functions:")
	havePlotSVG := false
	for _, fn := range funcs {
		if !g.Accepts(fn.Name, fn.Class, fn.Section) {
			fmt.Fprintf(progress, " (%s)", fn.Name)
			continue
		}
		fmt.Fprintf(progress, " %s", fn.Name)

		err := g.handle(fn, docs, gen.w, inst.w, decl.w)
		if errors.Is(err, ErrUnsupportedPrototype) {
			// Skip this one function, keep the batch going. Nothing was
			// written for it: parsing happens before any emission.
			g.logger().Infof("skipping %s: %s", fn.Name, err.Error())
			continue
		}
		if err != nil {
			discardAll()
			return err
		}
		if fn.Name == "plothraw" {
			// Hi-res SVG plotting needs PARI 2.10 or later.
			havePlotSVG = true
		}
	}
	fmt.Fprintln(progress)

	fmt.Fprintf(inst.w, "DEF HAVE_PLOT_SVG = %s", pyBool(havePlotSVG))

	for _, a := range arts {
		if err := a.commit(); err != nil {
			discardAll()
			return err
		}
	}
	return nil
}

// handle emits everything for one accepted record: the declaration, a Gen
// method when the first argument is handle-typed, and always a Pari method
// obtained by re-parsing with a synthetic leading self argument.
func (g *Generator) handle(fn desc.Function, docs DocSource, gen, inst, decl io.Writer) error {
	args, ret, err := Parse(fn.Prototype, fn.Help, nil)
	if err != nil {
		return err
	}

	doc := docs.Doc(fn.Name)

	writeDeclaration(decl, fn.CName, args, ret)

	if len(args) > 0 {
		if _, ok := args[0].(*GenArg); ok {
			fmt.Fprintf(gen, "%s\n", Method(fn, args, ret, args, doc))
		}
	}

	iargs, iret, err := Parse(fn.Prototype, fn.Help, []Argument{NewInstanceArg()})
	if err != nil {
		return err
	}
	fmt.Fprintf(inst, "%s\n", Method(fn, iargs, iret, iargs[1:], doc))
	return nil
}

func writeDeclaration(w io.Writer, cname string, args []Argument, ret Return) {
	ctypes := make([]string, len(args))
	for i, a := range args {
		ctypes[i] = a.CType()
	}
	fmt.Fprintf(w, "    %s %s(%s)\n", ret.CType(), cname, strings.Join(ctypes, ", "))
}

// Method renders one generated method following the fixed template:
// signature, docstring, obsolescence warning, undocumented-argument
// warnings, conversions, sig_on, native call with result capture, return
// or stack clear. cargs is the argument list as passed to the C function,
// i.e. args without the leading self on the instance surface.
func Method(fn desc.Function, args []Argument, ret Return, cargs []Argument, doc string) string {
	var b strings.Builder

	params := make([]string, len(args))
	for i, a := range args {
		params[i] = a.ProtoCode()
	}
	fmt.Fprintf(&b, "    def %s(%s):\n", fn.Name, strings.Join(params, ", "))

	if doc != "" {
		fmt.Fprintf(&b, "        r'''\n        %s\n        '''\n", strings.ReplaceAll(doc, "\n", "\n        "))
	}
	if fn.Obsolete != "" {
		b.WriteString("        from warnings import warn\n")
		fmt.Fprintf(&b, "        warn('the PARI/GP function %s is obsolete (%s)', DeprecationWarning)\n", fn.Name, fn.Obsolete)
	}
	for _, a := range args {
		b.WriteString(a.DeprecationCode(fn.Name))
	}
	for _, a := range args {
		b.WriteString(a.ConvertCode())
	}
	b.WriteString("        sig_on()\n")

	calls := make([]string, len(cargs))
	for i, a := range cargs {
		calls[i] = a.CallCode()
	}
	b.WriteString(ret.AssignCode(fmt.Sprintf("%s(%s)", fn.CName, strings.Join(calls, ", "))))
	b.WriteString(ret.ReturnCode())
	return b.String()
}

func (g *Generator) logger() commonlog.Logger {
	if g.log == nil {
		g.log = commonlog.GetLogger("autogen")
	}
	return g.log
}

func pyBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// artifact is one output stream written to path+".tmp" and renamed into
// place on commit.
type artifact struct {
	path string
	f    *os.File
	w    *bufio.Writer
}

func createArtifact(path, banner string) (*artifact, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output dir: %w", err)
		}
	}
	f, err := os.Create(path + ".tmp")
	if err != nil {
		return nil, fmt.Errorf("creating %s.tmp: %w", path, err)
	}
	a := &artifact{path: path, f: f, w: bufio.NewWriter(f)}
	if _, err := a.w.WriteString(banner); err != nil {
		a.discard()
		return nil, err
	}
	return a, nil
}

func (a *artifact) commit() error {
	if err := a.w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", a.path, err)
	}
	if err := a.f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", a.path, err)
	}
	a.f = nil
	return os.Rename(a.path+".tmp", a.path)
}

func (a *artifact) discard() {
	if a.f != nil {
		a.f.Close()
		a.f = nil
		os.Remove(a.path + ".tmp")
	}
}
