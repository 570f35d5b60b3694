package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_WorkedExample(t *testing.T) {
	// Three 800x600 panels on one 2440x1220 sheet:
	// panel area = 3 * 0.48 = 1.44 m², sheet area = 2.9768 m²,
	// utilization = 48.37%.
	requests := []PanelRequest{NewPanelRequest("Side", 800, 600, 18, 3)}
	result := PackingResult{Sheets: []Sheet{{Width: 2440, Height: 1220}}}

	summary, err := Summarize(requests, 2440, 1220, result)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalPanels)
	assert.Equal(t, 1, summary.SheetsUsed)
	assert.InDelta(t, 1.44, summary.PanelArea, 0.0001)
	assert.InDelta(t, 2.9768, summary.SheetArea, 0.0001)
	assert.InDelta(t, 48.37, summary.Utilization, 0.01)
	assert.InDelta(t, 1.5368, summary.WasteArea, 0.0001)
	assert.InDelta(t, 51.63, summary.WastePercent, 0.01)
}

func TestSummarize_MultipleSheets(t *testing.T) {
	requests := []PanelRequest{NewPanelRequest("Big", 2000, 1000, 18, 2)}
	result := PackingResult{Sheets: []Sheet{
		{Width: 2440, Height: 1220},
		{Width: 2440, Height: 1220},
	}}

	summary, err := Summarize(requests, 2440, 1220, result)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.SheetsUsed)
	assert.InDelta(t, 4.0, summary.PanelArea, 0.0001)
	assert.InDelta(t, 2*2.9768, summary.SheetArea, 0.0001)
}

func TestSummarize_UtilizationBounds(t *testing.T) {
	requests := []PanelRequest{NewPanelRequest("Exact", 2440, 1220, 18, 1)}
	result := PackingResult{Sheets: []Sheet{{Width: 2440, Height: 1220}}}

	summary, err := Summarize(requests, 2440, 1220, result)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, summary.Utilization, 0.0001)
	assert.InDelta(t, 0.0, summary.WastePercent, 0.0001)
	assert.GreaterOrEqual(t, summary.Utilization, 0.0)
	assert.LessOrEqual(t, summary.Utilization, 100.0)
}

func TestSummarize_EmptyResult(t *testing.T) {
	_, err := Summarize(nil, 2440, 1220, PackingResult{})
	require.ErrorIs(t, err, ErrNoPanelsToPack,
		"utilization is undefined with zero sheets")
}
