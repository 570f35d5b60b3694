package engine

import (
	"fmt"
	"testing"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPanels(label string, w, h float64, qty int) []model.Panel {
	panels := make([]model.Panel, qty)
	for i := range panels {
		panels[i] = model.Panel{
			ID:     fmt.Sprintf("%s-%d", label, i+1),
			Label:  label,
			Width:  w,
			Height: h,
			Depth:  18,
		}
	}
	return panels
}

func TestPack_SingleRowLeftToRight(t *testing.T) {
	// Three 800x600 panels on a 2440x1220 sheet all fit in the first row:
	// 800+800+800 = 2400 <= 2440.
	p := New(2440, 1220)

	result, err := p.Pack(testPanels("Side", 800, 600, 3))
	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 3)

	wantX := []float64{0, 800, 1600}
	for i, pl := range result.Sheets[0].Placements {
		assert.Equal(t, wantX[i], pl.X, "placement %d X", i)
		assert.Equal(t, 0.0, pl.Y, "placement %d Y", i)
		assert.False(t, pl.Rotated, "placement %d should not be rotated", i)
	}
}

func TestPack_RotatesToFillRow(t *testing.T) {
	// On a 1000x1000 sheet, the second 600x400 panel does not fit unrotated
	// next to the first (600+600 > 1000) but fits rotated (600+400 = 1000).
	// The third opens a new row below the tallest panel of the first.
	p := New(1000, 1000)

	result, err := p.Pack(testPanels("Shelf", 600, 400, 3))
	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)

	placements := result.Sheets[0].Placements
	require.Len(t, placements, 3)

	assert.Equal(t, 0.0, placements[0].X)
	assert.Equal(t, 0.0, placements[0].Y)
	assert.False(t, placements[0].Rotated)

	assert.Equal(t, 600.0, placements[1].X)
	assert.Equal(t, 0.0, placements[1].Y)
	assert.True(t, placements[1].Rotated, "second panel should rotate into the row remainder")
	assert.Equal(t, 400.0, placements[1].PlacedWidth())
	assert.Equal(t, 600.0, placements[1].PlacedHeight())

	assert.Equal(t, 0.0, placements[2].X)
	assert.Equal(t, 600.0, placements[2].Y, "third panel should start a new row below the rotated panel")
	assert.False(t, placements[2].Rotated)
}

func TestPack_OpensNewSheetWhenFull(t *testing.T) {
	// Two 900x900 panels cannot share a 1000x1000 sheet in any arrangement.
	p := New(1000, 1000)

	result, err := p.Pack(testPanels("Big", 900, 900, 2))
	require.NoError(t, err)
	require.Len(t, result.Sheets, 2, "second panel needs its own sheet")

	for i, sheet := range result.Sheets {
		require.Len(t, sheet.Placements, 1, "sheet %d", i)
		assert.Equal(t, 0.0, sheet.Placements[0].X)
		assert.Equal(t, 0.0, sheet.Placements[0].Y)
	}
}

func TestPack_RotationOnlyFit(t *testing.T) {
	// An 800x400 panel fits a 500x1000 sheet only when rotated.
	p := New(500, 1000)

	result, err := p.Pack(testPanels("Door", 800, 400, 1))
	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)
	require.Len(t, result.Sheets[0].Placements, 1)

	pl := result.Sheets[0].Placements[0]
	assert.True(t, pl.Rotated)
	assert.Equal(t, 400.0, pl.PlacedWidth())
	assert.Equal(t, 800.0, pl.PlacedHeight())
}

func TestPack_PanelTooLarge(t *testing.T) {
	p := New(2440, 1220)

	_, err := p.Pack(testPanels("Huge", 3000, 600, 1))
	require.Error(t, err)

	var tooLarge *model.PanelTooLargeError
	require.ErrorAs(t, err, &tooLarge)
	assert.Equal(t, "Huge", tooLarge.Panel.Label)
	assert.Equal(t, 2440.0, tooLarge.SheetWidth)
}

func TestPack_InvalidSheet(t *testing.T) {
	p := New(0, 1220)

	_, err := p.Pack(testPanels("A", 100, 100, 1))
	var invalid *model.InvalidSheetError
	require.ErrorAs(t, err, &invalid)
}

func TestPack_EmptyInputYieldsNoSheets(t *testing.T) {
	p := New(2440, 1220)

	result, err := p.Pack(nil)
	require.NoError(t, err)
	assert.Len(t, result.Sheets, 0, "empty input must not emit an empty sheet")
}

func TestPack_SortsByAreaDescending(t *testing.T) {
	// A small panel listed first must still be placed after the larger one.
	p := New(2440, 1220)

	panels := append(testPanels("Small", 300, 200, 1), testPanels("Large", 800, 600, 1)...)
	result, err := p.Pack(panels)
	require.NoError(t, err)
	require.Len(t, result.Sheets, 1)

	placements := result.Sheets[0].Placements
	require.Len(t, placements, 2)
	assert.Equal(t, "Large", placements[0].Panel.Label)
	assert.Equal(t, "Small", placements[1].Panel.Label)
}

func TestPack_EqualAreaKeepsCatalogOrder(t *testing.T) {
	// 600x400 and 400x600 have equal area; the stable sort must keep the
	// catalog order so output is deterministic.
	p := New(2440, 1220)

	panels := append(testPanels("First", 600, 400, 1), testPanels("Second", 400, 600, 1)...)
	result, err := p.Pack(panels)
	require.NoError(t, err)

	placements := result.Sheets[0].Placements
	require.Len(t, placements, 2)
	assert.Equal(t, "First", placements[0].Panel.Label)
	assert.Equal(t, "Second", placements[1].Panel.Label)
}

func TestPack_Deterministic(t *testing.T) {
	p := New(2440, 1220)

	panels := append(testPanels("A", 800, 600, 4), testPanels("B", 600, 400, 6)...)
	panels = append(panels, testPanels("C", 350, 350, 5)...)

	first, err := p.Pack(panels)
	require.NoError(t, err)
	second, err := p.Pack(panels)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must yield identical output")
}

func TestPack_BoundsAndOverlapInvariants(t *testing.T) {
	// A mixed workload across several sheets: every committed placement must
	// stay inside its sheet and no two placements on a sheet may overlap.
	p := New(2440, 1220)

	var panels []model.Panel
	panels = append(panels, testPanels("Carcass", 1200, 600, 4)...)
	panels = append(panels, testPanels("Door", 900, 450, 6)...)
	panels = append(panels, testPanels("Shelf", 764, 350, 8)...)
	panels = append(panels, testPanels("Drawer", 500, 180, 12)...)
	panels = append(panels, testPanels("Tall", 400, 1100, 3)...)

	result, err := p.Pack(panels)
	require.NoError(t, err)
	require.NotEmpty(t, result.Sheets)

	totalPlaced := 0
	for si, sheet := range result.Sheets {
		totalPlaced += len(sheet.Placements)
		for i, a := range sheet.Placements {
			assert.GreaterOrEqual(t, a.X, 0.0, "sheet %d placement %d", si, i)
			assert.GreaterOrEqual(t, a.Y, 0.0, "sheet %d placement %d", si, i)
			assert.LessOrEqual(t, a.X+a.PlacedWidth(), sheet.Width, "sheet %d placement %d overflows right edge", si, i)
			assert.LessOrEqual(t, a.Y+a.PlacedHeight(), sheet.Height, "sheet %d placement %d overflows bottom edge", si, i)

			for j := i + 1; j < len(sheet.Placements); j++ {
				assert.False(t, a.Overlaps(sheet.Placements[j]),
					"sheet %d placements %d and %d overlap", si, i, j)
			}
		}
	}
	assert.Equal(t, len(panels), totalPlaced, "every panel must be placed exactly once")
}

func TestPack_RotationValidity(t *testing.T) {
	p := New(1000, 1000)

	result, err := p.Pack(testPanels("Mix", 600, 400, 5))
	require.NoError(t, err)

	for _, sheet := range result.Sheets {
		for _, pl := range sheet.Placements {
			if pl.Rotated {
				assert.Equal(t, pl.Panel.Height, pl.PlacedWidth())
				assert.Equal(t, pl.Panel.Width, pl.PlacedHeight())
			} else {
				assert.Equal(t, pl.Panel.Width, pl.PlacedWidth())
				assert.Equal(t, pl.Panel.Height, pl.PlacedHeight())
			}
		}
	}
}

func TestPack_DepthCarriedThrough(t *testing.T) {
	p := New(2440, 1220)

	panels := testPanels("Base", 800, 600, 1)
	panels[0].Depth = 25

	result, err := p.Pack(panels)
	require.NoError(t, err)
	assert.Equal(t, 25.0, result.Sheets[0].Placements[0].Panel.Depth,
		"depth is informational but must survive packing")
}
