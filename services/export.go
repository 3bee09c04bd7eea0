package services

import (
	"bytes"
	"fmt"

	"page_flow_app_go/models"

	"github.com/xuri/excelize/v2"
)

// ExportLandingPagesXLSX builds an Excel workbook listing landing
// pages: one row per page with business fields and section count.
func ExportLandingPagesXLSX(pages []models.LandingPage) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Landing Pages"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Title", "Business", "Audience", "Tone", "Website", "Status", "Sections", "Updated"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	f.SetCellStyle(sheet, "A1", "H1", headerStyle)
	f.SetColWidth(sheet, "A", "E", 28)
	f.SetColWidth(sheet, "F", "H", 14)

	for row, page := range pages {
		values := []any{
			page.Title,
			page.BusinessName,
			page.TargetAudience,
			page.BrandTone,
			page.WebsiteURL,
			page.Status,
			len(page.Sections),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
		if !page.UpdatedAt.IsZero() {
			cell, _ := excelize.CoordinatesToCellName(8, row+2)
			f.SetCellValue(sheet, cell, page.UpdatedAt.Format("2006-01-02 15:04"))
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
