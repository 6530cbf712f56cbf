package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults apply to every document that does not set its own value. Values
// left unset here fall through to the processor configuration.
type Defaults struct {
	ProcessingDate string `yaml:"processing_date"`
	OutputDir      string `yaml:"output_dir"`
	Debug          *bool  `yaml:"debug"`
}

type Plan struct {
	Defaults  Defaults   `yaml:"defaults"`
	Documents []Document `yaml:"documents"`
}

type Document struct {
	File           string `yaml:"file"`
	ProcessingDate string `yaml:"processing_date"`
	Output         string `yaml:"output"`
	Debug          *bool  `yaml:"debug"`
}

// Load reads a plan. Relative paths are resolved against the plan's
// directory and defaults are applied to every document.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	p.resolve(filepath.Dir(path))
	return p, nil
}

// Parse decodes a plan and applies defaults without touching paths.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	if len(p.Documents) == 0 {
		return nil, fmt.Errorf("plan has no documents")
	}
	for i, d := range p.Documents {
		if d.File == "" {
			return nil, fmt.Errorf("document %d has no file", i+1)
		}
	}

	p.applyDefaults()
	return &p, nil
}

func (p *Plan) applyDefaults() {
	for i := range p.Documents {
		d := &p.Documents[i]
		if d.ProcessingDate == "" {
			d.ProcessingDate = p.Defaults.ProcessingDate
		}
		if d.Debug == nil && p.Defaults.Debug != nil {
			debug := *p.Defaults.Debug
			d.Debug = &debug
		}
		if d.Output == "" && p.Defaults.OutputDir != "" {
			base := filepath.Base(d.File)
			d.Output = filepath.Join(p.Defaults.OutputDir, strings.TrimSuffix(base, filepath.Ext(base))+".xlsx")
		}
	}
}

func (p *Plan) resolve(dir string) {
	abs := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(dir, path)
	}
	for i := range p.Documents {
		p.Documents[i].File = abs(p.Documents[i].File)
		p.Documents[i].Output = abs(p.Documents[i].Output)
	}
}

// IsDebug reports whether the plan asks for the debug trace of d. A nil
// Debug leaves the choice to the configuration.
func (d Document) IsDebug() bool {
	return d.Debug != nil && *d.Debug
}

func (p *Plan) Print() {
	fmt.Printf("Processing date: %s\n", orNone(p.Defaults.ProcessingDate))
	for i, d := range p.Documents {
		fmt.Printf("[%d] file=%s output=%s processing_date=%s debug=%t\n", i+1, d.File, orNone(d.Output), orNone(d.ProcessingDate), d.IsDebug())
	}
}

func orNone(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
