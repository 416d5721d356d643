// Command vslc is the driver for the semantic/code-generation core of
// spec.md: it reads source files, hands each to a Frontend to obtain a tree,
// walks it with ast.Node.Evaluate, resolves ILOC promises, and writes the
// result. The lexer and LR parser are genuinely external collaborators
// (spec.md §1), so the Frontend main() uses, defaultFrontend, always fails
// with a parse diagnostic; StaticFrontend (frontend.go) is what tests
// and embedders use to drive the pipeline with a hand-built tree.
package main

import (
	"fmt"
	"os"
	"sync"

	"vslc/src/ast"
	"vslc/src/diag"
	"vslc/src/iloc"
	"vslc/src/sem"
	"vslc/src/sourcemap"
	"vslc/src/util"
)

// defaultFrontend is what main() uses absent any injected Frontend: it always
// fails, since no lexer/parser ships in this module.
type defaultFrontend struct{}

func (defaultFrontend) Build(text string, src *sourcemap.Source) (*ast.Node, error) {
	return nil, diag.Parse("no lexer/parser is configured; vslc's driver only evaluates a pre-built tree")
}

func main() {
	opt, err := util.ParseArgs()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if len(opt.Srcs) == 0 {
		fmt.Println("usage: vslc [-o out] [-t n] [-vb] [-dot path] file...")
		os.Exit(1)
	}

	var outFile *os.File
	if opt.Out != "" {
		outFile, err = os.Create(opt.Out)
		if err != nil {
			fmt.Fprintln(os.Stderr, diag.IO(err))
			os.Exit(1)
		}
		defer outFile.Close()
	}

	collector := diag.NewCollector(len(opt.Srcs))
	var sinkWG sync.WaitGroup
	util.ListenWrite(outFile, opt.Threads, &sinkWG)

	slots := make(chan struct{}, opt.Threads)
	var fleet sync.WaitGroup
	for _, path := range opt.Srcs {
		fleet.Add(1)
		slots <- struct{}{}
		go func(path string) {
			defer fleet.Done()
			defer func() { <-slots }()
			err := compileFile(path, defaultFrontend{}, opt)
			collector.Report(path, err)
		}(path)
	}
	fleet.Wait()
	util.CloseWrite()
	sinkWG.Wait()

	for _, pe := range collector.All() {
		fmt.Printf("%s: %s\n", pe.Path, pe.Err.Error())
	}
	os.Exit(collector.WorstExitCode())
}

// compileFile runs the full pipeline for one source file: read, build a tree
// via fe, evaluate, resolve promises, and write ILOC text through the shared
// output sink started by ListenWrite.
func compileFile(path string, fe Frontend, opt util.Options) error {
	text, err := util.ReadSource(path)
	if err != nil {
		return diag.IO(err)
	}
	src := sourcemap.New(text)

	root, err := fe.Build(text, src)
	if err != nil {
		return err
	}

	scope := sem.NewScopeStack()
	code := iloc.NewCode()
	if _, err := root.Evaluate(code, scope, src); err != nil {
		return err
	}
	if err := code.PayPromises(); err != nil {
		return err
	}
	out, err := code.String()
	if err != nil {
		return err
	}

	if opt.Dot != "" {
		if err := os.WriteFile(opt.Dot, []byte(root.Dot()), 0o644); err != nil {
			return diag.IO(err)
		}
	}

	w := util.NewWriter()
	if opt.Verbose {
		w.Write("; compiled %s\n", path)
	}
	w.WriteString(out)
	w.Close()
	return nil
}
