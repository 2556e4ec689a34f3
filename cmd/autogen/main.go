// autogen - generates the cypari2 binding sources from the PARI catalog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/saraedum/cypari2/autogen"
	"github.com/saraedum/cypari2/desc"
	"github.com/saraedum/cypari2/manifest"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	quiet := flag.Bool("q", false, "Suppress the progress listing")
	descPath := flag.String("desc", "", "Path to pari.desc (overrides autogen.toml)")
	outputDir := flag.String("o", "", "Output directory (overrides autogen.toml)")
	watch := flag.Bool("watch", false, "Keep running and regenerate when the catalog changes")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: autogen [options]\n\n")
		fmt.Fprintf(os.Stderr, "Reads the PARI function catalog and writes auto_gen.pxi,\n")
		fmt.Fprintf(os.Stderr, "auto_instance.pxi and auto_paridecl.pxd.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  autogen                          # configuration from autogen.toml\n")
		fmt.Fprintf(os.Stderr, "  autogen -desc /usr/share/pari/pari.desc -o cypari2\n")
		fmt.Fprintf(os.Stderr, "  autogen -watch                   # regenerate on catalog changes\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading autogen.toml: %v\n", err)
		os.Exit(1)
	}
	if m == nil {
		m = manifest.Default()
	}
	if *descPath != "" {
		m.Catalog.Desc = *descPath
	}
	if *outputDir != "" {
		m.Output.Dir = *outputDir
	}

	g := &autogen.Generator{
		GenFile:      m.GenPath(),
		InstanceFile: m.InstancePath(),
		DeclFile:     m.DeclPath(),
		Blacklist:    autogen.DefaultBlacklist(),
	}
	for _, name := range m.Filter.Blacklist {
		g.Blacklist[name] = true
	}
	if !*quiet {
		g.Progress = os.Stdout
	}

	run := func() error {
		return g.Run(desc.FileSource{Path: m.Catalog.Desc})
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *watch {
		if err := watchAndRegenerate(m.Catalog.Desc, run); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}
