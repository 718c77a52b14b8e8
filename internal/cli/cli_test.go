package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// execute runs the root command with isolated config and cache dirs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestGenCommand(t *testing.T) {
	out, err := execute(t, "gen", "3", "4", "2", "-g", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if out != "42\n3\n" {
		t.Errorf("output = %q", out)
	}
}

func TestGenCommandCount(t *testing.T) {
	out, err := execute(t, "gen", "3", "4", "2", "-g", "-no")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != "2 patterns found" {
		t.Errorf("output = %q", out)
	}
}

func TestGenCommandJSON(t *testing.T) {
	out, err := execute(t, "gen", "--format", "json", "3", "4", "2", "-g")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %q", lines)
	}
	var rec struct {
		Run     string `json:"run"`
		Display string `json:"display"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatal(err)
	}
	if rec.Run == "" || rec.Display != "42" {
		t.Errorf("first record = %+v", rec)
	}
}

func TestGenCommandWhere(t *testing.T) {
	out, err := execute(t, "gen", "3", "4", "2", "-g", "--where", "p.length == 1")
	if err != nil {
		t.Fatal(err)
	}
	if out != "3\n" {
		t.Errorf("output = %q", out)
	}
}

func TestGenCommandUserError(t *testing.T) {
	if _, err := execute(t, "gen", "3", "5"); err == nil {
		t.Error("expected an error for a short vector")
	}
	if _, err := execute(t, "gen", "3", "5", "3", "--format", "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestGenCommandHelp(t *testing.T) {
	out, err := execute(t, "gen", "--help")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "-prime") || !strings.Contains(out, "--where") {
		t.Errorf("help lacks driver or own flags:\n%s", out)
	}
}

func TestTransCommand(t *testing.T) {
	out, err := execute(t, "trans", "3", "51")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[2] != "2 transitions found" {
		t.Errorf("output = %q", lines)
	}
}

func TestGraphCommand(t *testing.T) {
	out, err := execute(t, "graph", "531")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "digraph") {
		t.Errorf("output = %.40q", out)
	}

	if _, err := execute(t, "graph", "531", "--format", "png"); err == nil {
		t.Error("png to stdout should be refused")
	}
}

func TestGraphCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "531.svg")
	if _, err := execute(t, "graph", "531", "--format", "svg", "-o", path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Error("file is not an SVG")
	}
}

func TestCacheCommands(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)

	run := func(args ...string) string {
		t.Helper()
		c := New(io.Discard, LogInfo)
		root := c.RootCommand()
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
		return out.String()
	}

	if got := strings.TrimSpace(run("cache", "path")); got != filepath.Join(cacheHome, appName) {
		t.Errorf("cache path = %q", got)
	}

	run("gen", "3", "4", "2", "-g")
	entries, _ := filepath.Glob(filepath.Join(cacheHome, appName, "*", "*.json"))
	if len(entries) != 1 {
		t.Fatalf("cached entries = %d, want 1", len(entries))
	}

	run("cache", "clear")
	entries, _ = filepath.Glob(filepath.Join(cacheHome, appName, "*", "*.json"))
	if len(entries) != 0 {
		t.Errorf("entries left after clear: %v", entries)
	}
}

func TestConfigFlag(t *testing.T) {
	path := writeConfig(t, "format = \"yaml\"\n[cache]\nbackend = \"none\"\n")
	out, err := execute(t, "--config", path, "gen", "3", "4", "2", "-g")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "display: \"42\"") && !strings.Contains(out, "display: 42") {
		t.Errorf("expected YAML output, got:\n%s", out)
	}
}
