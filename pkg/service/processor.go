// Package service runs the conversion pipeline: read tables, extract fields,
// derive normalized values and write the workbook.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/termsheet/pkg/config"
	"github.com/yurifrl/termsheet/pkg/extract"
	"github.com/yurifrl/termsheet/pkg/fields"
	"github.com/yurifrl/termsheet/pkg/models"
	"github.com/yurifrl/termsheet/pkg/parser"
	"github.com/yurifrl/termsheet/pkg/workbook"
)

const sampleFields = 10

// Options control a single conversion.
type Options struct {
	Debug          bool
	ProcessingDate string
}

// Result describes one converted file.
type Result struct {
	Input  string
	Output string
	Fields int
	Err    error
}

type Processor struct {
	config *config.Config
	logger *log.Logger
	parser *parser.Parser
	writer *workbook.Writer
}

func NewProcessor(cfg *config.Config, logger *log.Logger) *Processor {
	return &Processor{
		config: cfg,
		logger: logger,
		parser: parser.New(logger),
		writer: workbook.New(logger),
	}
}

// Options returns the conversion options from the configuration.
func (p *Processor) Options() Options {
	return Options{
		Debug:          p.config.Debug,
		ProcessingDate: p.config.ProcessingDate,
	}
}

// Convert runs extraction and derivation over tables. Every call starts from
// an empty registry.
func (p *Processor) Convert(tables []models.Table, opts Options) *models.TermSheet {
	sheet := extract.New(p.logger, extract.WithDebug(opts.Debug)).Extract(tables)
	fields.New(p.logger).Process(sheet.Fields)

	if opts.ProcessingDate != "" {
		fields.InjectProcessingDate(sheet.Fields, opts.ProcessingDate, p.logger)
	}

	p.summarize(sheet, opts.Debug)
	return sheet
}

// ConvertBytes reads the tables of the document named filename and converts
// them.
func (p *Processor) ConvertBytes(data []byte, filename string, opts Options) (*models.TermSheet, error) {
	tables, err := p.parser.ProcessBytes(data, filename)
	if err != nil {
		return nil, err
	}
	return p.Convert(tables, opts), nil
}

// Extract converts the document at path without writing anything.
func (p *Processor) Extract(path string, opts Options) (*models.TermSheet, error) {
	tables, err := models.Source{Path: path}.Tables(p.parser)
	if err != nil {
		return nil, err
	}
	p.logger.Info("processing file", "path", path, "tables", len(tables))
	return p.Convert(tables, opts), nil
}

// ProcessFile converts the document at path and writes the workbook. With
// append_to set the result is added as a row of that workbook instead.
func (p *Processor) ProcessFile(path string, opts Options) Result {
	return p.ProcessFileTo(path, "", opts)
}

// ProcessFileTo converts the document at path and saves the workbook at
// Destination(path, output).
func (p *Processor) ProcessFileTo(path, output string, opts Options) Result {
	res := Result{Input: path, Output: p.Destination(path, output)}

	sheet, err := p.Extract(path, opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Fields = sheet.Fields.Len()

	if output == "" && p.config.AppendTo != "" {
		if err := p.writer.Append(res.Output, sheet); err != nil {
			res.Err = err
		}
		return res
	}

	if err := os.MkdirAll(filepath.Dir(res.Output), 0o755); err != nil {
		res.Err = fmt.Errorf("error creating output directory: %w", err)
		return res
	}
	if err := p.writer.Save(res.Output, sheet); err != nil {
		res.Err = err
	}
	return res
}

// ProcessDirectory converts every supported document directly inside dir.
// Failures are logged and reported in the results without stopping the run.
func (p *Processor) ProcessDirectory(dir string, opts Options) ([]Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading directory: %w", err)
	}

	var results []Result
	for _, entry := range entries {
		if entry.IsDir() || !Processable(entry.Name()) {
			continue
		}

		res := p.ProcessFile(filepath.Join(dir, entry.Name()), opts)
		if res.Err != nil {
			p.logger.Warn("failed to process file", "file", entry.Name(), "error", res.Err)
		} else {
			p.logger.Info("processed file successfully", "input", res.Input, "output", res.Output)
		}
		results = append(results, res)
	}

	return results, nil
}

// Processable reports whether a directory entry named name should be
// converted. Office lock files ("~$report.docx") are skipped.
func Processable(name string) bool {
	return !strings.HasPrefix(name, "~$") && parser.Supported(name)
}

// Destination is the workbook path for inputPath: output when given, else
// append_to, else OutputPath.
func (p *Processor) Destination(inputPath, output string) string {
	if output != "" {
		return output
	}
	if p.config.AppendTo != "" {
		return p.config.AppendTo
	}
	return p.OutputPath(inputPath)
}

// OutputPath returns where the workbook for inputPath is written: beside the
// input, or inside output_dir when configured.
func (p *Processor) OutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	name := strings.TrimSuffix(base, filepath.Ext(base)) + ".xlsx"
	if p.config.OutputDir != "" {
		return filepath.Join(p.config.OutputDir, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}

func (p *Processor) summarize(sheet *models.TermSheet, debug bool) {
	p.logger.Info("extraction complete", "fields", sheet.Fields.Len(), "debug_entries", len(sheet.Debug))
	if !debug {
		return
	}
	for i, f := range sheet.Fields.Fields() {
		if i == sampleFields {
			break
		}
		p.logger.Debug("sample field", "key", f.Key, "value", f.Value)
	}
}
