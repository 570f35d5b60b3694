package model

import "math"

// PurchaseEstimate holds the results of a sheet purchasing calculation.
type PurchaseEstimate struct {
	TotalPanelArea    float64 `json:"total_panel_area"`    // Total area of all panels (sq mm)
	TotalBoardFeet    float64 `json:"total_board_feet"`    // Total area in board feet
	SheetArea         float64 `json:"sheet_area"`          // Area of one sheet (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Minimum sheets (ceiling of exact)
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64 `json:"waste_percent"`       // Waste factor applied (e.g., 15 for 15%)
	EstimatedCost     float64 `json:"estimated_cost"`      // Total cost if pricing available
	PricePerSheet     float64 `json:"price_per_sheet"`     // Price used for estimation
}

// sqmmPerBoardFoot is the number of square millimeters in one board foot.
// 1 board foot = 12" x 12" x 1" (area) = 144 sq inches = 144 * 645.16 sq mm.
const sqmmPerBoardFoot = 92903.04

// CalculatePurchaseEstimate computes how many sheets to buy for a cutting
// list, applying an additional waste percentage on top of the raw area ratio.
func CalculatePurchaseEstimate(requests []PanelRequest, sheetWidth, sheetHeight, wastePercent, pricePerSheet float64) PurchaseEstimate {
	var totalPanelArea float64
	for _, r := range requests {
		totalPanelArea += r.Width * r.Height * float64(r.Quantity)
	}

	sheetArea := sheetWidth * sheetHeight
	if sheetArea <= 0 {
		return PurchaseEstimate{
			TotalPanelArea: totalPanelArea,
			TotalBoardFeet: totalPanelArea / sqmmPerBoardFoot,
			WastePercent:   wastePercent,
		}
	}

	exactSheets := totalPanelArea / sheetArea
	minSheets := int(math.Ceil(exactSheets))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	sheetsWithWaste := int(math.Ceil(exactSheets * wasteFactor))
	if sheetsWithWaste < minSheets {
		sheetsWithWaste = minSheets
	}

	return PurchaseEstimate{
		TotalPanelArea:    totalPanelArea,
		TotalBoardFeet:    totalPanelArea / sqmmPerBoardFoot,
		SheetArea:         sheetArea,
		SheetsNeededExact: exactSheets,
		SheetsNeededMin:   minSheets,
		SheetsWithWaste:   sheetsWithWaste,
		WastePercent:      wastePercent,
		EstimatedCost:     float64(sheetsWithWaste) * pricePerSheet,
		PricePerSheet:     pricePerSheet,
	}
}
