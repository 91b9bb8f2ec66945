package puppet

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModel(t *testing.T, dir, file, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, file), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestScanCatalog(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "beta.model3.json", `{"name":"beta","parameters":[{"id":"ParamAngleX","min":-30,"max":30}]}`)
	writeModel(t, dir, "alpha.model3.json", `{"name":"alpha","parameters":[{"id":"ParamAngleX","min":-30,"max":30}]}`)
	writeModel(t, dir, "notes.txt", "not a model")

	c, err := ScanCatalog(dir)
	if err != nil {
		t.Fatal(err)
	}

	entries := c.Entries()
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Scan order is lexical by filename.
	if entries[0].Name != "alpha" || entries[1].Name != "beta" {
		t.Errorf("order = %s, %s", entries[0].Name, entries[1].Name)
	}

	if c.First().Name != "alpha" {
		t.Errorf("first = %s, want alpha", c.First().Name)
	}

	m, ok := c.Get(entries[1].ID)
	if !ok || m.Name != "beta" {
		t.Errorf("Get(%s) = %v, %v", entries[1].ID, m, ok)
	}
	if _, ok := c.Get("nope"); ok {
		t.Error("Get with bogus id succeeded")
	}
}

func TestScanCatalog_EmptyDirFails(t *testing.T) {
	if _, err := ScanCatalog(t.TempDir()); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestScanCatalog_BrokenModelFails(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "bad.model3.json", `{"name":`)
	if _, err := ScanCatalog(dir); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadModel(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "haru.model3.json",
		`{"canvas":{"width":1024,"height":2048},"parameters":[{"id":"ParamEyeLOpen","min":0,"max":1,"default":1}]}`)

	m, err := LoadModel(filepath.Join(dir, "haru.model3.json"))
	if err != nil {
		t.Fatal(err)
	}
	// Missing name falls back to the filename stem.
	if m.Name != "haru" {
		t.Errorf("name = %q, want haru", m.Name)
	}
	if m.Canvas.Width != 1024 || m.Canvas.Height != 2048 {
		t.Errorf("canvas = %+v", m.Canvas)
	}
	if m.Path == "" {
		t.Error("path not recorded")
	}
}

func TestLoadModel_NoParametersFails(t *testing.T) {
	dir := t.TempDir()
	writeModel(t, dir, "empty.model3.json", `{"name":"empty","parameters":[]}`)
	if _, err := LoadModel(filepath.Join(dir, "empty.model3.json")); err == nil {
		t.Error("expected error for parameterless model")
	}
}
