package model

// Summary holds the material statistics derived from a packing result.
// Areas are in square meters; the source dimensions are millimeters.
type Summary struct {
	TotalPanels  int     `json:"total_panels"`  // Sum of requested quantities
	SheetsUsed   int     `json:"sheets_used"`   // Number of stock sheets consumed
	PanelArea    float64 `json:"panel_area"`    // Total area of requested panels (m²)
	SheetArea    float64 `json:"sheet_area"`    // Total area of consumed sheets (m²)
	Utilization  float64 `json:"utilization"`   // PanelArea / SheetArea * 100
	WasteArea    float64 `json:"waste_area"`    // SheetArea - PanelArea (m²)
	WastePercent float64 `json:"waste_percent"` // 100 - Utilization
	SheetWidth   float64 `json:"sheet_width"`   // Stock sheet width (mm)
	SheetHeight  float64 `json:"sheet_height"`  // Stock sheet height (mm)
}

const sqmmPerSquareMeter = 1e6

// Summarize computes aggregate material statistics for a packing result.
// It returns ErrNoPanelsToPack when the result used no sheets, since
// utilization is undefined for an empty result.
func Summarize(requests []PanelRequest, sheetWidth, sheetHeight float64, result PackingResult) (Summary, error) {
	sheetsUsed := len(result.Sheets)
	if sheetsUsed == 0 {
		return Summary{}, ErrNoPanelsToPack
	}

	var panelArea float64
	for _, r := range requests {
		panelArea += r.Width * r.Height * float64(r.Quantity)
	}
	panelArea /= sqmmPerSquareMeter

	sheetArea := sheetWidth * sheetHeight / sqmmPerSquareMeter * float64(sheetsUsed)
	utilization := panelArea / sheetArea * 100.0

	return Summary{
		TotalPanels:  TotalPanels(requests),
		SheetsUsed:   sheetsUsed,
		PanelArea:    panelArea,
		SheetArea:    sheetArea,
		Utilization:  utilization,
		WasteArea:    sheetArea - panelArea,
		WastePercent: 100.0 - utilization,
		SheetWidth:   sheetWidth,
		SheetHeight:  sheetHeight,
	}, nil
}
