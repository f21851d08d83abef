// Command lisp is an interactive REPL and batch loader for the small
// Scheme-like dialect implemented in package lisp.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/spf13/cobra"

	"github.com/gopherlisp/scheme/lisp"
)

var (
	printSExpr bool
	prompt     string
	doPrompt   bool
	watch      bool
	depth      int
)

func main() {
	root := &cobra.Command{
		Use:           "lisp [files...]",
		Short:         "A small Scheme-like interpreter",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	root.Flags().BoolVar(&printSExpr, "sexpr", false, "always print S-expressions")
	root.Flags().StringVar(&prompt, "prompt", ">> ", "interactive prompt")
	root.Flags().BoolVar(&doPrompt, "doprompt", true, "show interactive prompt")
	root.Flags().BoolVar(&watch, "watch", false, "reload the given files whenever they change on disk")
	root.Flags().IntVar(&depth, "depth", 100000, "maximum call depth; 0 means no limit")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	slog.Info("starting", "files", args, "watch", watch, "depth", depth)

	if watch {
		if len(args) == 0 {
			return fmt.Errorf("--watch requires at least one file argument")
		}
		return watchFiles(args)
	}

	interp := lisp.NewInterpreterWithDepth(depth)
	for _, file := range args {
		if err := loadFile(interp, file); err != nil {
			return err
		}
	}

	repl(interp, bufio.NewScanner(os.Stdin))
	slog.Info("shutting down")
	return nil
}

// loadFile reads every top-level form in file in turn and evaluates
// each against interp's global scope, reporting (but not aborting on) a
// per-form error, the way the teacher's load/input/handler trio resumes
// at the next top-level form after a panic.
func loadFile(interp *lisp.Interpreter, path string) error {
	fd, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fd.Close()

	lex := lisp.NewLexer(bufio.NewReader(fd))
	for !lex.IsEnd() {
		evalOneForm(lex, interp, os.Stderr)
	}
	return nil
}

// evalOneForm reads and evaluates a single top-level form from lex,
// printing its result or reporting its error, then returns. A panic
// from the reader or evaluator is recovered here so the caller's loop
// can proceed to the next form, mirroring the teacher's per-call
// handler in main.go.
func evalOneForm(lex *lisp.Lexer, interp *lisp.Interpreter, out *os.File) {
	defer func() {
		if r := recover(); r != nil {
			lerr, ok := r.(*lisp.Error)
			if !ok {
				panic(r)
			}
			reportError(out, interp, lerr)
		}
	}()
	v := lisp.Read(lex)
	if v == nil {
		return
	}
	result := lisp.Eval(v, interp.Global())
	if printSExpr || result != nil {
		fmt.Fprintln(out, lisp.Serialize(result))
	}
}

func repl(interp *lisp.Interpreter, scanner *bufio.Scanner) {
	for {
		if doPrompt {
			fmt.Print(prompt)
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "exit" {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		result, err := interp.Run(line)
		if err != nil {
			printCategory(os.Stderr, err)
			reportError(os.Stderr, interp, err)
			continue
		}
		if printSExpr || result != "" {
			fmt.Println(result)
		}
	}
}

// printCategory prints the one-line error-category tag the REPL shell
// reports on any interpreter error, per §6.
func printCategory(out *os.File, err error) {
	lerr, ok := err.(*lisp.Error)
	if !ok {
		fmt.Fprintln(out, err)
		return
	}
	switch lerr.Kind {
	case lisp.SyntaxError:
		fmt.Fprintln(out, "Syntax error occurred!")
	case lisp.NameError:
		fmt.Fprintln(out, "Name error occurred!")
	case lisp.RuntimeError:
		fmt.Fprintln(out, "Runtime error occurred!")
	default:
		fmt.Fprintln(out, err)
	}
}

// reportError prints err and, for an unbound-variable NameError, a
// "did you mean ...?" suggestion against every name currently bound in
// the interpreter's global scope.
func reportError(out *os.File, interp *lisp.Interpreter, err error) {
	fmt.Fprintln(out, err)
	lerr, ok := err.(*lisp.Error)
	if !ok || lerr.Kind != lisp.NameError {
		return
	}
	name := unboundName(lerr.Message)
	if name == "" {
		return
	}
	if suggestion := suggestName(name, interp.Global().Names()); suggestion != "" {
		fmt.Fprintf(out, "did you mean %s?\n", suggestion)
	}
}

// unboundName extracts the identifier from a NameError's "unbound
// variable: NAME" message.
func unboundName(msg string) string {
	const prefix = "unbound variable: "
	if !strings.HasPrefix(msg, prefix) {
		return ""
	}
	return strings.TrimPrefix(msg, prefix)
}

func suggestName(name string, candidates []string) string {
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	return ranks[0].Target
}

// watchFiles reloads and re-evaluates files from scratch against a
// fresh interpreter every time any of them changes on disk, until the
// process is interrupted.
func watchFiles(files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, f := range files {
		if err := watcher.Add(f); err != nil {
			return err
		}
	}

	reload := func() {
		fresh := lisp.NewInterpreterWithDepth(depth)
		for _, f := range files {
			if err := loadFile(fresh, f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
	}

	reload()
	for event := range watcher.Events {
		if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			continue
		}
		slog.Info("reloading", "file", event.Name)
		reload()
	}
	return nil
}
