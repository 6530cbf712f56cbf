package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"

	"github.com/yurifrl/termsheet/pkg/config"
	"github.com/yurifrl/termsheet/pkg/csv"
	"github.com/yurifrl/termsheet/pkg/models"
	"github.com/yurifrl/termsheet/pkg/service"
)

type filters struct {
	match       string
	skipPresent bool
}

type FileProcessor struct {
	logger    *log.Logger
	config    *config.Config
	processor *service.Processor
	filters   *filters
	dump      bool
	out       io.Writer
}

func (f *filters) toFilterFunc() csv.FilterFunc {
	return func(field models.Field) bool {
		if f.match != "" && !strings.Contains(strings.ToLower(field.Key), strings.ToLower(f.match)) {
			return false
		}
		if f.skipPresent && field.Value == models.PresentValue {
			return false
		}
		return true
	}
}

func NewFileProcessor(logger *log.Logger, cfg *config.Config, filters *filters, dump bool, out io.Writer) *FileProcessor {
	return &FileProcessor{
		logger:    logger,
		config:    cfg,
		processor: service.NewProcessor(cfg, logger),
		filters:   filters,
		dump:      dump,
		out:       out,
	}
}

func (p *FileProcessor) ProcessDirectory(inputDir string) error {
	if p.config.Format == config.FormatXLSX && !p.dump {
		results, err := p.processor.ProcessDirectory(inputDir, p.processor.Options())
		if err != nil {
			return err
		}
		p.logger.Info("processed directory", "dir", inputDir, "files", len(results))
		return nil
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !service.Processable(entry.Name()) {
			continue
		}

		if err := p.ProcessFile(filepath.Join(inputDir, entry.Name())); err != nil {
			p.logger.Warn("error processing file", "error", err)
		}
	}

	return nil
}

// ProcessFile writes the workbook for inputPath, or prints the fields as CSV
// (or a pretty dump) to the processor's output.
func (p *FileProcessor) ProcessFile(inputPath string) error {
	opts := p.processor.Options()

	if p.config.Format == config.FormatXLSX && !p.dump {
		res := p.processor.ProcessFile(inputPath, opts)
		if res.Err != nil {
			return res.Err
		}
		p.logger.Info("processed file successfully", "input", res.Input, "output", res.Output, "fields", res.Fields)
		return nil
	}

	sheet, err := p.processor.Extract(inputPath, opts)
	if err != nil {
		return err
	}

	if p.dump {
		pp.Fprintln(p.out, sheet.Fields.Fields())
		if len(sheet.Coupons) > 0 {
			pp.Fprintln(p.out, sheet.Coupons)
		}
		return nil
	}

	return csv.Write(p.out, sheet.Fields, p.filters.toFilterFunc())
}
