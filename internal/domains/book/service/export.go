package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const catalogSheet = "Catalog"

// ExportCatalog writes the whole catalog with availability to a workbook.
func (s *BookService) ExportCatalog(ctx context.Context) (*excelize.File, error) {
	books, err := s.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", catalogSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headers := []string{"ID", "Title", "Author", "ISBN", "Total Copies", "Available Copies", "Status", "Added At"}
	for colIdx, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 1)
		f.SetCellValue(catalogSheet, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(catalogSheet, "A1", lastHeader, headerStyle)
	}

	for i, b := range books {
		row := i + 2
		status := "Available"
		if !b.IsAvailable() {
			status = "Not Available"
		}

		values := []interface{}{
			b.ID,
			b.Title,
			b.Author,
			b.ISBN,
			b.TotalCopies,
			b.AvailableCopies,
			status,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(catalogSheet, cell, v)
		}
	}

	return f, nil
}
