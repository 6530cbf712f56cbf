package parser

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"github.com/yurifrl/termsheet/pkg/models"
)

// ParseXLSX returns one table per worksheet.
func (p *Parser) ParseXLSX(data []byte) ([]models.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("error opening workbook: %w", err)
	}
	defer f.Close()

	var tables []models.Table
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("error reading sheet %s: %w", sheet, err)
		}
		p.logger.Debug("read sheet", "sheet", sheet, "rows", len(rows))
		tables = append(tables, models.NewTable(rows))
	}

	return tables, nil
}
