package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/Brandon-Rozek/lispy/pkg/driver"
	"github.com/Brandon-Rozek/lispy/pkg/parser"
	"github.com/Brandon-Rozek/lispy/pkg/runtime"
)

func repl(session *driver.Session, stdout, stderr io.Writer) int {
	cfg := session.Config
	if cfg.Banner {
		fmt.Fprintf(stdout, "Lispy Version %s\nPress Ctrl+c to Exit\n\n", version)
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) []string {
		return completeSymbols(session.Interp.GlobalEnvironment(), line)
	})

	if cfg.HistoryFile != "" {
		if f, err := os.Open(cfg.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if err := saveHistory(ln, cfg.HistoryFile, cfg.HistoryLimit); err != nil {
				fmt.Fprintf(stderr, "history: %v\n", err)
			}
		}()
	}

	for {
		input, ok := readInput(ln, cfg.Prompt, cfg.ContinuationPrompt)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		switch strings.TrimSpace(input) {
		case "":
			continue
		case "exit", ":quit":
			return 0
		}
		ln.AppendHistory(strings.ReplaceAll(input, "\n", " "))

		v, err := session.EvalLine(input)
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		fmt.Fprintln(stdout, runtime.Render(v))
	}
}

// readInput keeps prompting while the buffered input is an incomplete
// expression. It reports false on Ctrl-C or end of input.
func readInput(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if err != nil {
			// io.EOF on Ctrl-D, liner.ErrPromptAborted on Ctrl-C.
			return "", false
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !needsMoreInput(b.String()) {
			return b.String(), true
		}
	}
}

func needsMoreInput(src string) bool {
	_, err := parser.Parse("<stdin>", src)
	return parser.IsIncomplete(err)
}

// completeSymbols offers every bound name that extends the last token of
// line, keeping the rest of the line intact.
func completeSymbols(env *runtime.Environment, line string) []string {
	start := strings.LastIndexAny(line, " \t\n(){}") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}
	var out []string
	for e := env; e != nil; e = e.Parent() {
		for _, name := range e.Keys() {
			if strings.HasPrefix(name, word) {
				out = append(out, prefix+name)
			}
		}
	}
	sort.Strings(out)
	return out
}

// saveHistory writes the session history, keeping only the newest limit
// entries. A limit of zero keeps nothing.
func saveHistory(ln *liner.State, path string, limit int) error {
	var buf bytes.Buffer
	if _, err := ln.WriteHistory(&buf); err != nil {
		return fmt.Errorf("collect history: %w", err)
	}
	lines := trimHistory(&buf, limit)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return w.Flush()
}

func trimHistory(r io.Reader, limit int) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if limit < 0 {
		limit = 0
	}
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}
