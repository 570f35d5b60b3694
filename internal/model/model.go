package model

import "github.com/google/uuid"

// PanelRequest is one line of a cutting list: a panel size and how many
// copies of it are needed. Depth is the panel thickness in mm; it is carried
// through to exports but never affects 2D placement.
type PanelRequest struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Width    float64 `json:"width"`  // mm
	Height   float64 `json:"height"` // mm
	Depth    float64 `json:"depth"`  // mm, informational only
	Quantity int     `json:"quantity"`
}

func NewPanelRequest(label string, w, h, d float64, qty int) PanelRequest {
	return PanelRequest{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Depth:    d,
		Quantity: qty,
	}
}

// Area returns the panel area in square mm for a single copy.
func (r PanelRequest) Area() float64 {
	return r.Width * r.Height
}

// TotalPanels returns the sum of quantities over a request list.
func TotalPanels(requests []PanelRequest) int {
	total := 0
	for _, r := range requests {
		total += r.Quantity
	}
	return total
}

// Panel is a single physical panel to place, produced by expanding a
// PanelRequest by its quantity.
type Panel struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
	Depth  float64 `json:"depth"`  // mm, informational only
}

// Area returns the panel area in square mm.
func (p Panel) Area() float64 {
	return p.Width * p.Height
}

// FitsSheet reports whether the panel fits a sheet of the given dimensions
// in at least one orientation.
func (p Panel) FitsSheet(sheetWidth, sheetHeight float64) bool {
	return (p.Width <= sheetWidth && p.Height <= sheetHeight) ||
		(p.Height <= sheetWidth && p.Width <= sheetHeight)
}

// Placement represents a single panel placed on a sheet.
type Placement struct {
	Panel   Panel   `json:"panel"`
	X       float64 `json:"x"`       // Position from left edge (mm)
	Y       float64 `json:"y"`       // Position from top edge (mm)
	Rotated bool    `json:"rotated"` // Whether the panel was rotated 90°
}

// PlacedWidth returns the effective width considering rotation.
func (p Placement) PlacedWidth() float64 {
	if p.Rotated {
		return p.Panel.Height
	}
	return p.Panel.Width
}

// PlacedHeight returns the effective height considering rotation.
func (p Placement) PlacedHeight() float64 {
	if p.Rotated {
		return p.Panel.Width
	}
	return p.Panel.Height
}

// Overlaps reports whether this placement's rectangle overlaps another's.
// Rectangles that merely share an edge do not overlap.
func (p Placement) Overlaps(o Placement) bool {
	return p.X < o.X+o.PlacedWidth() && p.X+p.PlacedWidth() > o.X &&
		p.Y < o.Y+o.PlacedHeight() && p.Y+p.PlacedHeight() > o.Y
}

// Sheet represents one stock sheet with its placed panels, in placement order.
type Sheet struct {
	Width      float64     `json:"width"`  // mm
	Height     float64     `json:"height"` // mm
	Placements []Placement `json:"placements"`
}

// UsedArea returns the total area covered by placed panels in square mm.
func (s Sheet) UsedArea() float64 {
	var total float64
	for _, p := range s.Placements {
		total += p.PlacedWidth() * p.PlacedHeight()
	}
	return total
}

// TotalArea returns the stock sheet area in square mm.
func (s Sheet) TotalArea() float64 {
	return s.Width * s.Height
}

// Efficiency returns the usage percentage of this sheet.
func (s Sheet) Efficiency() float64 {
	ta := s.TotalArea()
	if ta == 0 {
		return 0
	}
	return (s.UsedArea() / ta) * 100.0
}

// PackingResult holds the full solution: sheets in the order they were
// opened by the packer. Sheet 1 is filled before sheet 2 is opened.
type PackingResult struct {
	Sheets []Sheet `json:"sheets"`
}

// PlacedCount returns the total number of placed panels across all sheets.
func (r PackingResult) PlacedCount() int {
	total := 0
	for _, s := range r.Sheets {
		total += len(s.Placements)
	}
	return total
}

// TotalEfficiency returns overall material usage percentage.
func (r PackingResult) TotalEfficiency() float64 {
	var usedArea, totalArea float64
	for _, s := range r.Sheets {
		usedArea += s.UsedArea()
		totalArea += s.TotalArea()
	}
	if totalArea == 0 {
		return 0
	}
	return (usedArea / totalArea) * 100.0
}

// Plan ties a cutting job together for save/load.
type Plan struct {
	Name        string         `json:"name"`
	SheetWidth  float64        `json:"sheet_width"`  // mm
	SheetHeight float64        `json:"sheet_height"` // mm
	Requests    []PanelRequest `json:"requests"`
	Result      *PackingResult `json:"result,omitempty"`
}

// Standard plywood sheet dimensions in mm, used as defaults.
const (
	DefaultSheetWidth  = 2440.0
	DefaultSheetHeight = 1220.0
)

func NewPlan() Plan {
	return Plan{
		Name:        "Untitled",
		SheetWidth:  DefaultSheetWidth,
		SheetHeight: DefaultSheetHeight,
		Requests:    []PanelRequest{},
	}
}
