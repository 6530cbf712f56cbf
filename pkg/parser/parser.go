// Package parser reads the tables out of the document formats a term sheet
// arrives in.
package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yurifrl/termsheet/pkg/docx"
	"github.com/yurifrl/termsheet/pkg/models"
)

// ErrUnknownFileType is returned for documents no reader understands.
var ErrUnknownFileType = errors.New("unknown file type")

type FileType string

const (
	DOCX FileType = "docx"
	XLSX FileType = "xlsx"
	XLS  FileType = "xls"
)

type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{
		logger: logger,
	}
}

// ProcessBytes returns the tables of the document named filename.
func (p *Parser) ProcessBytes(data []byte, filename string) ([]models.Table, error) {
	fileType := DetectType(filename)
	p.logger.Debug("detected file type", "type", fileType, "filename", filename)

	var (
		tables []models.Table
		err    error
	)
	switch fileType {
	case DOCX:
		tables, err = docx.ReadTables(data)
	case XLSX:
		tables, err = p.ParseXLSX(data)
	case XLS:
		tables, err = p.ParseXLS(data)
	default:
		p.logger.Debug("unknown file type", "filename", filename)
		return nil, fmt.Errorf("%w: %s", ErrUnknownFileType, filename)
	}
	if err != nil {
		return nil, err
	}

	p.logger.Debug("read tables", "filename", filename, "tables", len(tables))
	return tables, nil
}

// DetectType maps a file name to the reader for its extension.
func DetectType(filename string) FileType {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".xlsx":
		return XLSX
	case ".xls":
		return XLS
	}
	return ""
}

// Supported reports whether filename has a readable extension.
func Supported(filename string) bool {
	return DetectType(filename) != ""
}
