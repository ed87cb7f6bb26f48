// Command draftexctl is a small driver around the editor core: it loads
// markup, runs it through the tokenizer/expansion/rules pipeline, and
// exposes parse/format/edit/preview subcommands. Grounded on the
// subcommand-dispatch shape of teleivo-dot's cmd/dotx/main.go
// (flag.NewFlagSet per subcommand, an errFlagParse sentinel so errors
// aren't printed twice, a testable run(args, r, w, wErr) entry point).
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/eivinsam/draftex-sub000/caret"
	"github.com/eivinsam/draftex-sub000/edit"
	"github.com/eivinsam/draftex-sub000/internal/version"
	"github.com/eivinsam/draftex-sub000/layout"
	"github.com/eivinsam/draftex-sub000/render"
	"github.com/eivinsam/draftex-sub000/render/ansi"
	"github.com/eivinsam/draftex-sub000/tree"
)

// errFlagParse is a sentinel indicating flag parsing already printed its
// own error; main should not print it again.
var errFlagParse = errors.New("flag parse error")

func main() {
	code, err := run(os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil && !errors.Is(err, errFlagParse) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(code)
}

func run(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	if len(args) < 2 {
		usage(wErr)
		return 2, nil
	}

	if args[1] == "-h" || args[1] == "--help" || args[1] == "help" {
		usage(wErr)
		return 0, nil
	}

	switch args[1] {
	case "fmt":
		return runFmt(args[2:], r, w, wErr)
	case "parse":
		return runParse(args[2:], r, w, wErr)
	case "edit":
		return runEdit(args[2:], r, w, wErr)
	case "preview":
		return runPreview(args[2:], r, w, wErr)
	case "version":
		_, _ = fmt.Fprintln(w, version.Version())
		return 0, nil
	default:
		return 2, fmt.Errorf("unknown command: %s", args[1])
	}
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "draftexctl is a driver for the structural markup editor core")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "usage: draftexctl <command> [args]")
	_, _ = fmt.Fprintln(w, "commands: fmt, parse, edit, preview, version")
}

func newLogger(wErr io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(wErr, &slog.HandlerOptions{Level: level}))
}

// loadDoc runs the full pipeline (tokenize, expand, enforce rules) over
// src, logging any collected parse errors at Debug rather than failing:
// a half-edited document is still something the rest of the driver can
// work with, matching the core's error-resilient design (SPEC_FULL.md
// §7).
func loadDoc(logger *slog.Logger, src string) *tree.Group {
	root, errs := tree.Tokenize(src)
	for _, e := range errs {
		logger.Debug("tokenize", "error", e)
	}
	if errs := tree.Expand(root); len(errs) > 0 {
		for _, e := range errs {
			logger.Debug("expand", "error", e)
		}
	}
	tree.EnforceRules(root)
	return root
}

func readAll(args []string, r io.Reader) (string, error) {
	if len(args) == 1 {
		b, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to open file: %v", err)
		}
		return string(b), nil
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %v", err)
	}
	return string(b), nil
}

func runFmt(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet("fmt", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(wErr, "usage: draftexctl fmt [file]")
	}
	debug := flags.Bool("debug", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}

	src, err := readAll(flags.Args(), r)
	if err != nil {
		return 1, err
	}
	logger := newLogger(wErr, *debug)
	root := loadDoc(logger, src)
	if err := tree.Serialize(w, root); err != nil {
		return 1, err
	}
	return 0, nil
}

func runParse(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(wErr, "usage: draftexctl parse [file]")
	}
	debug := flags.Bool("debug", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}

	src, err := readAll(flags.Args(), r)
	if err != nil {
		return 1, err
	}
	logger := newLogger(wErr, *debug)
	root := loadDoc(logger, src)
	dumpTree(w, root, 0)
	return 0, nil
}

func dumpTree(w io.Writer, n tree.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *tree.Text:
		fmt.Fprintf(w, "%sText %q\n", indent, v.Value)
	case *tree.Command:
		fmt.Fprintf(w, "%sCommand \\%s\n", indent, v.Name)
		for _, arg := range v.Args {
			dumpTree(w, arg, depth+1)
		}
	case *tree.Group:
		fmt.Fprintf(w, "%sGroup %q kind=%d\n", indent, v.Data, v.Kind)
		for c := v.First(); c != nil; c = c.Next() {
			dumpTree(w, c, depth+1)
		}
	}
}

func runPreview(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet("preview", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(wErr, "usage: draftexctl preview [file]")
	}
	debug := flags.Bool("debug", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}

	src, err := readAll(flags.Args(), r)
	if err != nil {
		return 1, err
	}
	logger := newLogger(wErr, *debug)
	root := loadDoc(logger, src)

	backend := ansi.New(os.Stdout)
	boxes := layout.Boxes{}
	layout.UpdateSize(backend, boxes, root, tree.ModeText, layout.Font{}, backend.Width)
	layout.UpdateLayout(boxes, root, layout.Point{})
	render.Tree(backend, boxes, root, layout.Point{})
	_, _ = fmt.Fprintln(w)
	return 0, nil
}

// runEdit interprets a tiny line-oriented script against an in-memory
// document, one command per line, exercising the caret/edit/history
// wiring the way keyboard input would in an interactive session
// (draftex.cpp's keybinding dispatch table is the analogue this
// subcommand stands in for, absent a real event loop):
//
//	insert <text>   insert text at the caret, advancing past it
//	erasenext       delete the rune after the caret
//	eraseprev       delete the rune before the caret
//	undo
//	redo
//	print           print the current serialized document
func runEdit(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet("edit", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		_, _ = fmt.Fprintln(wErr, "usage: draftexctl edit <file>")
		_, _ = fmt.Fprintln(wErr, "reads a script of commands from stdin: insert <text>, erasenext, eraseprev, undo, redo, print")
	}
	debug := flags.Bool("debug", false, "enable debug logging")
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, errFlagParse
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2, errFlagParse
	}

	b, err := os.ReadFile(flags.Arg(0))
	if err != nil {
		return 1, fmt.Errorf("failed to open file: %v", err)
	}
	logger := newLogger(wErr, *debug)
	root := loadDoc(logger, string(b))

	first, ok := root.First().(*tree.Text)
	if !ok {
		first = tree.NextText(root)
	}
	if first == nil {
		return 1, errors.New("document has no editable content")
	}
	c := caret.New(caret.Position{Node: first, Offset: 0})
	var history edit.History

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if err := dispatchEditCommand(&history, c, root, line, w); err != nil {
			logger.Error("command failed", "line", line, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return 1, err
	}
	return 0, nil
}

func dispatchEditCommand(h *edit.History, c *caret.Caret, root *tree.Group, line string, w io.Writer) error {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(fields) == 0 || fields[0] == "" {
		return nil
	}
	switch fields[0] {
	case "insert":
		if len(fields) < 2 {
			return errors.New("insert requires text")
		}
		if !edit.InsertRune(h, c, fields[1]) {
			return errors.New("caret is not on editable text")
		}
	case "erasenext":
		if !edit.EraseNext(h, c) {
			return errors.New("nothing to erase")
		}
	case "eraseprev":
		if !edit.ErasePrev(h, c) {
			return errors.New("nothing to erase")
		}
	case "undo":
		if !h.Undo() {
			return errors.New("nothing to undo")
		}
	case "redo":
		if !h.Redo() {
			return errors.New("nothing to redo")
		}
	case "print":
		return tree.Serialize(w, root)
	default:
		return fmt.Errorf("unknown command: %s", fields[0])
	}
	return nil
}
