package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestFileSource_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "combat.yaml", `
constants:
  base_crit: 0.05
formulas:
  - name: damage
    expr: "attack * 2"
    description: Basic damage.
  - name: heal
    expr: "spirit + 10"
`)

	src := NewFileSource(path, nil)
	doc, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(doc.Definitions) != 2 {
		t.Fatalf("got %d definitions, want 2", len(doc.Definitions))
	}
	if doc.Definitions[0].Name != "damage" || doc.Definitions[0].Expr != "attack * 2" {
		t.Errorf("unexpected first definition: %+v", doc.Definitions[0])
	}
	if doc.Definitions[0].Description != "Basic damage." {
		t.Errorf("got description %q, want %q", doc.Definitions[0].Description, "Basic damage.")
	}
	if got := doc.Constants["base_crit"]; got != 0.05 {
		t.Errorf("constant base_crit = %v, want 0.05", got)
	}
}

func TestFileSource_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "formulas:\n  - name: one\n    expr: \"1\"\n")
	writeFile(t, dir, "b.yml", "formulas:\n  - name: two\n    expr: \"2\"\n")
	writeFile(t, dir, "notes.txt", "not a formula file")

	src := NewFileSource(dir, nil)
	doc, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(doc.Definitions) != 2 {
		t.Fatalf("got %d definitions, want 2", len(doc.Definitions))
	}
}

func TestFileSource_SkipsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.yaml", "formulas:\n  - name: ok\n    expr: \"1 + 1\"\n")
	writeFile(t, dir, "bad.yaml", "formulas: [unclosed\n")

	src := NewFileSource(dir, nil)
	doc, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(doc.Definitions) != 1 {
		t.Fatalf("got %d definitions, want 1", len(doc.Definitions))
	}
	if doc.Definitions[0].Name != "ok" {
		t.Errorf("got definition %q, want %q", doc.Definitions[0].Name, "ok")
	}
}

func TestFileSource_MissingPath(t *testing.T) {
	src := NewFileSource(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if _, err := src.Load(context.Background()); err == nil {
		t.Fatal("Load() on missing path should fail")
	}
}

func TestFileSource_WatchPaths(t *testing.T) {
	src := NewFileSource("/data/formulas", nil)
	paths := src.WatchPaths()
	if len(paths) != 1 || paths[0] != "/data/formulas" {
		t.Errorf("WatchPaths() = %v, want [/data/formulas]", paths)
	}
}

func TestMemorySource_LoadCopies(t *testing.T) {
	src := NewMemorySource(Document{
		Constants: map[string]float64{"pi_ish": 3.14},
		Definitions: []Definition{
			{Name: "f", Expr: "x + 1"},
		},
	})

	doc, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	doc.Constants["pi_ish"] = 0
	doc.Definitions[0].Expr = "mutated"

	doc2, err := src.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if doc2.Constants["pi_ish"] != 3.14 {
		t.Errorf("constant mutated through loaded copy")
	}
	if doc2.Definitions[0].Expr != "x + 1" {
		t.Errorf("definition mutated through loaded copy")
	}
}
