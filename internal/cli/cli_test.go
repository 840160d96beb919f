package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/primetree/pkg/errors"
)

// runCLI executes the root command with args against a throwaway config and
// cache directory and returns what it wrote to stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv(envRedisAddr, "")
	t.Setenv(envListen, "")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--config", filepath.Join(dir, "config.toml")}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRootFactor(t *testing.T) {
	out, err := runCLI(t, "factor", "--json", "12")
	if err != nil {
		t.Fatalf("factor: %v", err)
	}
	var rows []factorRow
	if err := json.Unmarshal([]byte(out), &rows); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(rows) != 1 || rows[0].Value != 12 || rows[0].Prime {
		t.Errorf("rows = %+v", rows)
	}
}

func TestRootConfigCommands(t *testing.T) {
	out, err := runCLI(t, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "config.toml") {
		t.Errorf("config path = %q", out)
	}

	out, err = runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{"[tree]", "[cache]", `backend = "file"`} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}
}

func TestRootRenderWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.json")
	if _, err := runCLI(t, "render", "2", "12", "-f", "json", "-o", path, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Errorf("render wrote invalid JSON: %.80s", data)
	}
}

func TestRootRenderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad bound", []string{"render", "one"}, errors.ErrCodeInvalidInput},
		{"reversed range", []string{"render", "10", "2", "--no-cache"}, errors.ErrCodeInvalidRange},
		{"bad policy", []string{"render", "-p", "prime", "--no-cache"}, errors.ErrCodeInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestHelpDescribesBreadthFirstFill(t *testing.T) {
	for _, args := range [][]string{{"--help"}, {"render", "--help"}} {
		out, err := runCLI(t, args...)
		if err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		if !strings.Contains(out, "breadth-first") {
			t.Errorf("%v: help does not describe the breadth-first fill:\n%s", args, out)
		}
		if strings.Contains(out, "divisor") {
			t.Errorf("%v: help mentions divisors:\n%s", args, out)
		}
	}
	out, _ := runCLI(t, "render", "--help")
	if !strings.Contains(out, "zero keeps start") {
		t.Errorf("render help does not describe the zero policy:\n%s", out)
	}
}
