package parser

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/yurifrl/termsheet/pkg/models"
)

const maxXLSRows = 10000

// ParseXLS reads a legacy Excel workbook as a single table.
func (p *Parser) ParseXLS(data []byte) ([]models.Table, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("error creating workbook: %w", err)
	}

	rows := workbook.ReadAllCells(maxXLSRows)
	p.logger.Debug("read workbook", "rows", len(rows))
	if len(rows) == 0 {
		return nil, nil
	}

	return []models.Table{models.NewTable(rows)}, nil
}
