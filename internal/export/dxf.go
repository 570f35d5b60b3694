package export

import (
	"fmt"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"
)

// dxfSheetGap is the horizontal spacing between sheets in the drawing (mm).
const dxfSheetGap = 200.0

// dxfTextHeight is the height of panel dimension labels (mm).
const dxfTextHeight = 40.0

// ExportDXF writes the packing result as a DXF drawing. Sheets are laid out
// side by side along the X axis; each sheet outline goes on a SHEETS layer
// and its panels on a PANELS layer, drawn as closed polylines with a
// dimension label at the panel center.
func ExportDXF(path string, result model.PackingResult) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("SHEETS", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add SHEETS layer: %w", err)
	}
	if _, err := d.AddLayer("PANELS", dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add PANELS layer: %w", err)
	}
	if _, err := d.AddLayer("LABELS", dxf.DefaultColor, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add LABELS layer: %w", err)
	}

	offsetX := 0.0
	for _, sheet := range result.Sheets {
		if err := d.ChangeLayer("SHEETS"); err != nil {
			return err
		}
		if err := drawRect(d, offsetX, 0, sheet.Width, sheet.Height); err != nil {
			return fmt.Errorf("failed to draw sheet outline: %w", err)
		}

		for _, p := range sheet.Placements {
			if err := d.ChangeLayer("PANELS"); err != nil {
				return err
			}
			if err := drawRect(d, offsetX+p.X, p.Y, p.PlacedWidth(), p.PlacedHeight()); err != nil {
				return fmt.Errorf("failed to draw panel %s: %w", p.Panel.ID, err)
			}

			if err := d.ChangeLayer("LABELS"); err != nil {
				return err
			}
			label := fmt.Sprintf("%.0fx%.0f", p.PlacedWidth(), p.PlacedHeight())
			cx := offsetX + p.X + p.PlacedWidth()/2
			cy := p.Y + p.PlacedHeight()/2
			if _, err := d.Text(label, cx, cy, 0.0, dxfTextHeight); err != nil {
				return fmt.Errorf("failed to draw panel label: %w", err)
			}
		}

		offsetX += sheet.Width + dxfSheetGap
	}

	return d.SaveAs(path)
}

// drawRect draws an axis-aligned rectangle as four line segments.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	lines := [][4]float64{
		{x, y, x + w, y},
		{x + w, y, x + w, y + h},
		{x + w, y + h, x, y + h},
		{x, y + h, x, y},
	}
	for _, l := range lines {
		if _, err := d.Line(l[0], l[1], 0.0, l[2], l[3], 0.0); err != nil {
			return err
		}
	}
	return nil
}
