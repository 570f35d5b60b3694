package catalog

import (
	"testing"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand_QuantityExpansion(t *testing.T) {
	requests := []model.PanelRequest{
		model.NewPanelRequest("Side", 800, 600, 18, 3),
		model.NewPanelRequest("Top", 500, 300, 18, 2),
	}

	panels, err := Expand(requests)
	require.NoError(t, err)
	require.Len(t, panels, 5, "output length must equal the sum of quantities")

	// Copies of one request are emitted consecutively, in request order.
	wantLabels := []string{"Side", "Side", "Side", "Top", "Top"}
	for i, p := range panels {
		assert.Equal(t, wantLabels[i], p.Label, "panel %d", i)
	}
}

func TestExpand_CopiesShareDimensions(t *testing.T) {
	requests := []model.PanelRequest{model.NewPanelRequest("Shelf", 764, 350, 18, 2)}

	panels, err := Expand(requests)
	require.NoError(t, err)
	require.Len(t, panels, 2)

	for _, p := range panels {
		assert.Equal(t, 764.0, p.Width)
		assert.Equal(t, 350.0, p.Height)
		assert.Equal(t, 18.0, p.Depth)
	}
	assert.NotEqual(t, panels[0].ID, panels[1].ID, "copies get distinct IDs")
}

func TestExpand_ZeroQuantityContributesNothing(t *testing.T) {
	requests := []model.PanelRequest{
		model.NewPanelRequest("Unused", 800, 600, 18, 0),
		model.NewPanelRequest("Used", 500, 300, 18, 1),
	}

	panels, err := Expand(requests)
	require.NoError(t, err)
	require.Len(t, panels, 1)
	assert.Equal(t, "Used", panels[0].Label)
}

func TestExpand_ZeroQuantitySkipsValidation(t *testing.T) {
	// A zero-quantity request never produces a panel, so its dimensions are
	// not checked.
	requests := []model.PanelRequest{model.NewPanelRequest("Ghost", -1, 0, 0, 0)}

	panels, err := Expand(requests)
	require.NoError(t, err)
	assert.Empty(t, panels)
}

func TestExpand_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h, d float64
	}{
		{"zero width", 0, 600, 18},
		{"negative height", 800, -600, 18},
		{"zero depth", 800, 600, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			requests := []model.PanelRequest{
				model.NewPanelRequest("OK", 500, 300, 18, 1),
				model.NewPanelRequest("Bad", tc.w, tc.h, tc.d, 2),
			}

			_, err := Expand(requests)
			var invalid *model.InvalidDimensionsError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, 1, invalid.RequestIndex, "error must identify the offending request")
			assert.Equal(t, "Bad", invalid.Label)
		})
	}
}

func TestExpand_EmptyInput(t *testing.T) {
	panels, err := Expand(nil)
	require.NoError(t, err)
	assert.Empty(t, panels)
}
