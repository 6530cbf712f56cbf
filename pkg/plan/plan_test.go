package plan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	content := `
defaults:
  processing_date: "2025-04-10"
  output_dir: out
  debug: true
documents:
  - file: NCD 129.docx
  - file: /data/NCD 130.docx
    processing_date: "2025-05-01"
    output: /data/ncd130.xlsx
    debug: false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(p.Documents) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(p.Documents))
	}

	first := p.Documents[0]
	if first.File != filepath.Join(dir, "NCD 129.docx") {
		t.Errorf("unexpected file %q", first.File)
	}
	if first.Output != filepath.Join(dir, "out", "NCD 129.xlsx") {
		t.Errorf("unexpected output %q", first.Output)
	}
	if first.ProcessingDate != "2025-04-10" || !first.IsDebug() {
		t.Errorf("defaults not applied: %+v", first)
	}

	second := p.Documents[1]
	if second.File != "/data/NCD 130.docx" || second.Output != "/data/ncd130.xlsx" {
		t.Errorf("absolute paths changed: %+v", second)
	}
	if second.ProcessingDate != "2025-05-01" || second.IsDebug() {
		t.Errorf("document values overridden: %+v", second)
	}
}

func TestParseLeavesUnsetValuesEmpty(t *testing.T) {
	p, err := Parse([]byte("documents:\n  - file: a.docx\n  - file: b.docx\n    debug: true\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if d := p.Documents[0]; d.Debug != nil || d.ProcessingDate != "" || d.Output != "" {
		t.Errorf("expected unset document values, got %+v", d)
	}
	if !p.Documents[1].IsDebug() {
		t.Errorf("document debug lost: %+v", p.Documents[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"no documents": "defaults:\n  debug: true\n",
		"missing file": "documents:\n  - output: a.xlsx\n",
		"bad yaml":     "documents: [",
	}

	for name, content := range tests {
		if _, err := Parse([]byte(content)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing plan file")
	}
}
