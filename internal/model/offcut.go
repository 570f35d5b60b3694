package model

import "sort"

// Offcut represents a usable rectangular remnant area left over after cutting.
type Offcut struct {
	SheetIndex int     `json:"sheet_index"` // Index of the source sheet in the result
	X          float64 `json:"x"`           // Position on the sheet (mm from left)
	Y          float64 `json:"y"`           // Position on the sheet (mm from top)
	Width      float64 `json:"width"`       // Usable width (mm)
	Height     float64 `json:"height"`      // Usable height (mm)
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be considered usable.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts identifies rectangular remnant areas on a packed sheet that
// are large enough to be reused. Shelf packing leaves two kinds of remnant:
// the strip to the right of each row, and the strip above the last row.
func DetectOffcuts(s Sheet, sheetIndex int) []Offcut {
	if len(s.Placements) == 0 {
		if s.Width < MinOffcutDimension || s.Height < MinOffcutDimension {
			return nil
		}
		return []Offcut{{SheetIndex: sheetIndex, Width: s.Width, Height: s.Height}}
	}

	// Group placements into shelf rows by their top edge.
	type row struct {
		y      float64
		height float64
		endX   float64
	}
	rowsByY := make(map[float64]*row)
	for _, p := range s.Placements {
		r, ok := rowsByY[p.Y]
		if !ok {
			r = &row{y: p.Y}
			rowsByY[p.Y] = r
		}
		if h := p.PlacedHeight(); h > r.height {
			r.height = h
		}
		if end := p.X + p.PlacedWidth(); end > r.endX {
			r.endX = end
		}
	}

	rows := make([]row, 0, len(rowsByY))
	for _, r := range rowsByY {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].y < rows[j].y })

	var offcuts []Offcut
	usedHeight := 0.0
	for _, r := range rows {
		if bottom := r.y + r.height; bottom > usedHeight {
			usedHeight = bottom
		}
		remnant := Offcut{
			SheetIndex: sheetIndex,
			X:          r.endX,
			Y:          r.y,
			Width:      s.Width - r.endX,
			Height:     r.height,
		}
		if usableOffcut(remnant) {
			offcuts = append(offcuts, remnant)
		}
	}

	top := Offcut{
		SheetIndex: sheetIndex,
		X:          0,
		Y:          usedHeight,
		Width:      s.Width,
		Height:     s.Height - usedHeight,
	}
	if usableOffcut(top) {
		offcuts = append(offcuts, top)
	}

	return offcuts
}

// DetectAllOffcuts runs offcut detection across every sheet of a result.
func DetectAllOffcuts(result PackingResult) []Offcut {
	var all []Offcut
	for i, s := range result.Sheets {
		all = append(all, DetectOffcuts(s, i)...)
	}
	return all
}

func usableOffcut(o Offcut) bool {
	return o.Width >= MinOffcutDimension &&
		o.Height >= MinOffcutDimension &&
		o.Area() >= MinOffcutArea
}
