package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"lox/interpreter-go/pkg/driver"
	"lox/interpreter-go/pkg/interpreter"
	"lox/interpreter-go/pkg/runtime"
)

const (
	defaultPrompt       = "> "
	defaultContinuation = ".. "
)

// lineReader is the part of liner.State the REPL loop needs.
type lineReader interface {
	Prompt(prompt string) (string, error)
}

type replSettings struct {
	prompt       string
	continuation string
	historyPath  string
}

func resolveREPLSettings(manifest *driver.Manifest) (replSettings, error) {
	settings := replSettings{prompt: defaultPrompt, continuation: defaultContinuation}
	if manifest != nil {
		if manifest.REPL.Prompt != "" {
			settings.prompt = manifest.REPL.Prompt
		}
		if manifest.REPL.Continuation != "" {
			settings.continuation = manifest.REPL.Continuation
		}
		if history := strings.TrimSpace(manifest.REPL.History); history != "" {
			if !filepath.IsAbs(history) {
				history = filepath.Join(filepath.Dir(manifest.Path), filepath.FromSlash(history))
			}
			settings.historyPath = history
			return settings, nil
		}
	}
	home, err := resolveLoxHome()
	if err != nil {
		return settings, err
	}
	settings.historyPath = filepath.Join(home, "history")
	return settings, nil
}

func runREPL(args []string) int {
	opts, err := parseOptions("repl", args, "c:")
	if err != nil {
		fmt.Fprintf(os.Stderr, "repl: %v\n", err)
		return exitUsage
	}
	if len(opts.args) > 0 {
		fmt.Fprintln(os.Stderr, "repl does not take arguments")
		return exitUsage
	}
	manifest, err := loadManifestFrom("")
	if err != nil && !errors.Is(err, errManifestNotFound) {
		fmt.Fprintf(os.Stderr, "failed to load %s: %v\n", driver.ManifestFileName, err)
		return exitFailure
	}
	settings, err := resolveREPLSettings(manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "repl: %v\n", err)
		return exitFailure
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	if f, err := os.Open(settings.historyPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	session := newREPLSession(interpreter.New(), newReporter(opts.colorMode(manifest)), os.Stdout)
	session.loop(ln, settings, func(code string) {
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	})

	if err := os.MkdirAll(filepath.Dir(settings.historyPath), 0o755); err == nil {
		if f, err := os.Create(settings.historyPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return exitOK
}

// replSession evaluates chunks against one interpreter so bindings persist.
// Chunk line numbers continue from the previous chunk.
type replSession struct {
	interp   *interpreter.Interpreter
	rep      *reporter
	out      io.Writer
	nextLine int
}

func newREPLSession(interp *interpreter.Interpreter, rep *reporter, out io.Writer) *replSession {
	interp.SetOutput(out)
	return &replSession{interp: interp, rep: rep, out: out, nextLine: 1}
}

func (s *replSession) loop(in lineReader, settings replSettings, remember func(string)) {
	for {
		code, more := readChunk(in, settings.prompt, settings.continuation, s.nextLine)
		if strings.TrimSpace(code) != "" {
			if remember != nil {
				remember(code)
			}
			if s.eval(code) {
				return
			}
		}
		if !more {
			fmt.Fprintln(s.out)
			return
		}
	}
}

// eval runs one chunk and reports whether the session should end.
func (s *replSession) eval(code string) bool {
	switch strings.TrimSpace(code) {
	case ":quit", ":exit":
		return true
	case ":env":
		s.printGlobals()
		return false
	case ":help":
		fmt.Fprintln(s.out, "Enter statements to run them. :env lists globals, :quit exits.")
		return false
	}
	src := driver.Source{Text: code, StartLine: s.nextLine}
	s.nextLine += strings.Count(code, "\n") + 1
	diags, err := s.interp.RunSource(src)
	if len(diags) > 0 {
		err = diagnosticsErr(diags)
	}
	reportResult(err, s.rep)
	return false
}

func (s *replSession) printGlobals() {
	global := s.interp.GlobalEnvironment()
	bindings := global.Snapshot()
	for _, name := range global.Keys() {
		fmt.Fprintf(s.out, "%s = %s\n", name, runtime.Stringify(bindings[name]))
	}
}

// readChunk reads lines until they form a chunk that parses or fails
// for a reason more input cannot fix. The second result is false once input
// is exhausted. Ctrl-C abandons the pending chunk.
func readChunk(in lineReader, prompt, cont string, startLine int) (string, bool) {
	var lines []string
	for {
		p := prompt
		if len(lines) > 0 {
			p = cont
		}
		line, err := in.Prompt(p)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return "", true
			}
			return strings.Join(lines, "\n"), false
		}
		lines = append(lines, line)
		code := strings.Join(lines, "\n")
		if strings.TrimSpace(code) == "" {
			return "", true
		}
		if _, diags := driver.Parse(driver.Source{Text: code, StartLine: startLine}); driver.AllIncomplete(diags) {
			continue
		}
		return code, true
	}
}
