// Package engine implements the greedy shelf-packing placement algorithm.
//
// Panels are sorted by area descending and placed left-to-right along a
// horizontal shelf row. When a panel no longer fits the current row, a new
// row is opened above the tallest panel of the closed row; when a panel fits
// neither the row nor a fresh row, a new sheet is opened. A 90° rotation is
// attempted opportunistically at each position before giving up on it. The
// algorithm is a single deterministic pass: O(n log n) for the sort, O(n)
// for placement, no backtracking.
package engine

import (
	"sort"

	"github.com/piwi3910/plycut/internal/model"
)

// Packer places panels onto stock sheets of a fixed size.
type Packer struct {
	SheetWidth  float64 // mm
	SheetHeight float64 // mm
}

func New(sheetWidth, sheetHeight float64) *Packer {
	return &Packer{SheetWidth: sheetWidth, SheetHeight: sheetHeight}
}

// packingState carries the cursor position of the shelf algorithm between
// placements. Each placement step consumes a state and returns the next one;
// nothing outside the state is mutated.
type packingState struct {
	completed []model.Sheet
	current   model.Sheet
	xCursor   float64
	yCursor   float64
	rowHeight float64
}

// Pack arranges the given panels onto as few sheets as the shelf heuristic
// finds. It fails with a model.PanelTooLargeError before placing anything if
// any panel cannot fit the sheet in either orientation; packing is
// all-or-nothing. An empty panel list yields a result with zero sheets.
func (p *Packer) Pack(panels []model.Panel) (model.PackingResult, error) {
	if p.SheetWidth <= 0 || p.SheetHeight <= 0 {
		return model.PackingResult{}, &model.InvalidSheetError{Width: p.SheetWidth, Height: p.SheetHeight}
	}
	for _, panel := range panels {
		if !panel.FitsSheet(p.SheetWidth, p.SheetHeight) {
			return model.PackingResult{}, &model.PanelTooLargeError{
				Panel:       panel,
				SheetWidth:  p.SheetWidth,
				SheetHeight: p.SheetHeight,
			}
		}
	}
	if len(panels) == 0 {
		return model.PackingResult{}, nil
	}

	// Largest first packs better. The sort must be stable so equal-area
	// panels keep catalog order and output stays deterministic.
	sorted := make([]model.Panel, len(panels))
	copy(sorted, panels)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Area() > sorted[j].Area()
	})

	state := packingState{current: p.newSheet()}
	for _, panel := range sorted {
		state = p.place(state, panel)
	}

	// The current sheet always holds at least one panel here since every
	// panel passed the fit precondition.
	sheets := append(state.completed, state.current)
	return model.PackingResult{Sheets: sheets}, nil
}

func (p *Packer) newSheet() model.Sheet {
	return model.Sheet{Width: p.SheetWidth, Height: p.SheetHeight}
}

// place commits one panel and returns the next state. Positions are tried
// in strict priority order: current row unrotated, current row rotated, new
// row unrotated, new row rotated, then a fresh sheet.
func (p *Packer) place(s packingState, panel model.Panel) packingState {
	w, h := panel.Width, panel.Height

	// Current row, unrotated.
	if s.xCursor+w <= p.SheetWidth && s.yCursor+h <= p.SheetHeight {
		return s.commit(panel, false)
	}
	// Current row, rotated.
	if s.xCursor+h <= p.SheetWidth && s.yCursor+w <= p.SheetHeight {
		return s.commit(panel, true)
	}

	// Close the row: carriage-return the cursor and move down by the
	// tallest panel placed in the closed row.
	s.xCursor = 0
	s.yCursor += s.rowHeight
	s.rowHeight = 0

	if s.yCursor+h <= p.SheetHeight && w <= p.SheetWidth {
		return s.commit(panel, false)
	}
	if s.yCursor+w <= p.SheetHeight && h <= p.SheetWidth {
		return s.commit(panel, true)
	}

	// No room on this sheet: open a fresh one. The panel goes at the origin
	// unrotated when it fits that way; a panel that only fits the sheet
	// rotated is committed rotated so the placement stays in bounds.
	s.completed = append(s.completed, s.current)
	s.current = p.newSheet()
	s.xCursor, s.yCursor, s.rowHeight = 0, 0, 0

	rotated := !(w <= p.SheetWidth && h <= p.SheetHeight)
	return s.commit(panel, rotated)
}

// commit appends the panel at the cursor and advances it.
func (s packingState) commit(panel model.Panel, rotated bool) packingState {
	placed := model.Placement{Panel: panel, X: s.xCursor, Y: s.yCursor, Rotated: rotated}
	s.current.Placements = append(s.current.Placements, placed)

	s.xCursor += placed.PlacedWidth()
	if h := placed.PlacedHeight(); h > s.rowHeight {
		s.rowHeight = h
	}
	return s
}
