package export

import (
	"fmt"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/xuri/excelize/v2"
)

// Workbook sheet names used by ExportXLSX.
const (
	cuttingListSheet = "Cutting List"
	placementsSheet  = "Placements"
	summarySheet     = "Summary"
)

// ExportXLSX writes an Excel workbook with the cutting list, the per-panel
// placements, and the materials summary on separate worksheets.
func ExportXLSX(path string, requests []model.PanelRequest, result model.PackingResult, summary model.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cuttingListSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := writeCuttingList(f, requests); err != nil {
		return err
	}

	if _, err := f.NewSheet(placementsSheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", placementsSheet, err)
	}
	if err := writePlacements(f, result); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", summarySheet, err)
	}
	if err := writeSummary(f, summary); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeCuttingList(f *excelize.File, requests []model.PanelRequest) error {
	header := []interface{}{"Label", "Panel Width (mm)", "Panel Height (mm)", "Panel Depth (mm)", "Quantity"}
	if err := setRow(f, cuttingListSheet, 1, header); err != nil {
		return err
	}
	for i, r := range requests {
		row := []interface{}{r.Label, r.Width, r.Height, r.Depth, r.Quantity}
		if err := setRow(f, cuttingListSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writePlacements(f *excelize.File, result model.PackingResult) error {
	header := []interface{}{"Sheet", "Panel", "X (mm)", "Y (mm)", "Placed Width (mm)", "Placed Height (mm)", "Rotated"}
	if err := setRow(f, placementsSheet, 1, header); err != nil {
		return err
	}
	rowNum := 2
	for sheetIdx, sheet := range result.Sheets {
		for _, p := range sheet.Placements {
			row := []interface{}{
				sheetIdx + 1, p.Panel.Label, p.X, p.Y,
				p.PlacedWidth(), p.PlacedHeight(), p.Rotated,
			}
			if err := setRow(f, placementsSheet, rowNum, row); err != nil {
				return err
			}
			rowNum++
		}
	}
	return nil
}

func writeSummary(f *excelize.File, summary model.Summary) error {
	rows := [][]interface{}{
		{"Total Panels Required", summary.TotalPanels},
		{"Total Sheets Used", summary.SheetsUsed},
		{"Total Panel Area (m²)", summary.PanelArea},
		{"Total Sheet Area (m²)", summary.SheetArea},
		{"Material Utilization (%)", summary.Utilization},
		{"Waste Area (m²)", summary.WasteArea},
		{"Waste Percentage (%)", summary.WastePercent},
	}
	for i, row := range rows {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}
	return nil
}

// setRow writes values into consecutive cells of one worksheet row.
func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to set cell %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
