package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Brandon-Rozek/lispy/pkg/interpreter"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// emptyConfig writes a blank lispy.yml so runs never pick up a config from
// the surrounding checkout.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lispy.yml")
	writeFile(t, path, "")
	return path
}

func TestRunVersion(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := runWith([]string{"--version"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	if got := stdout.String(); got != "lispy "+version+"\n" {
		t.Fatalf("unexpected version output %q", got)
	}
}

func TestRunEvaluatesExpression(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-config", emptyConfig(t), "-e", "join {1} {2 (+ 1 2)}"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	if got := stdout.String(); got != "{1 2 (+ 1 2)}\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunExpressionErrorSetsExitCode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-config", emptyConfig(t), "-e", "/ 1 0"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if got := stdout.String(); got != "Error: Division by zero\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRunFilesWithPreludeAndEcho(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "std.lspy"), `(def {double} (\ {x} {* 2 x}))`+"\n")
	cfg := filepath.Join(dir, "lispy.yml")
	writeFile(t, cfg, "prelude: std.lspy\necho_results: true\n")
	prog := filepath.Join(dir, "main.lspy")
	writeFile(t, prog, "(double 21)\n(head {})\n(double 1.5)\n")

	var stdout, stderr bytes.Buffer
	code := runWith([]string{"-config", cfg, "-v", "run", prog}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1 for the failing expression, got %d", code)
	}
	if got := stdout.String(); got != "42\n3.000000\n" {
		t.Fatalf("unexpected stdout %q", got)
	}
	errText := stderr.String()
	if !strings.Contains(errText, "Error: Function 'head' passed {} for argument 0.") {
		t.Fatalf("missing error report: %q", errText)
	}
	if !strings.Contains(errText, "lispy: loading prelude") {
		t.Fatalf("missing verbose trace: %q", errText)
	}
}

func TestRunReportsSyntaxErrors(t *testing.T) {
	dir := t.TempDir()
	prog := filepath.Join(dir, "bad.lspy")
	writeFile(t, prog, "(+ 1 2))\n")
	var stdout, stderr bytes.Buffer
	if code := runWith([]string{"-config", emptyConfig(t), "run", prog}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), prog+":1:8: unexpected ')'") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestRunRejectsBadInvocations(t *testing.T) {
	cfg := emptyConfig(t)
	cases := [][]string{
		{"-config", cfg, "frobnicate"},
		{"-config", cfg, "run"},
		{"-config", cfg, "-e", "1", "extra"},
		{"-no-such-flag"},
	}
	for _, args := range cases {
		var stdout, stderr bytes.Buffer
		if code := runWith(args, &stdout, &stderr); code != 2 {
			t.Fatalf("%v: expected exit code 2, got %d", args, code)
		}
	}
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lispy.yml")
	writeFile(t, path, "history_limit: -5\n")
	var stdout, stderr bytes.Buffer
	if code := runWith([]string{"-config", path, "-e", "1"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "history_limit must be >= 0") {
		t.Fatalf("unexpected stderr %q", stderr.String())
	}
}

func TestCompleteSymbols(t *testing.T) {
	interp := interpreter.New()
	got := completeSymbols(interp.GlobalEnvironment(), "(he")
	if want := []string{"(head"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("completeSymbols = %v, want %v", got, want)
	}
	got = completeSymbols(interp.GlobalEnvironment(), "join {1} (l")
	if want := []string{"join {1} (len", "join {1} (list", "join {1} (ls"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("completeSymbols = %v, want %v", got, want)
	}
	if got := completeSymbols(interp.GlobalEnvironment(), "(head "); got != nil {
		t.Fatalf("expected no completions after whitespace, got %v", got)
	}
}

func TestTrimHistoryKeepsNewest(t *testing.T) {
	in := strings.NewReader("a\nb\nc\nd\n")
	if got, want := trimHistory(in, 2), []string{"c", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("trimHistory = %v, want %v", got, want)
	}
	if got := trimHistory(strings.NewReader("a\n"), 0); len(got) != 0 {
		t.Fatalf("expected empty history, got %v", got)
	}
}

func TestNeedsMoreInput(t *testing.T) {
	if !needsMoreInput("(def {x}") {
		t.Fatalf("open paren should need more input")
	}
	if needsMoreInput("(def {x} 1)") || needsMoreInput("1 )") {
		t.Fatalf("complete or invalid input should not wait for more")
	}
}
