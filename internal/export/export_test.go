package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildTestResult creates a realistic packing result for testing.
func buildTestResult() model.PackingResult {
	return model.PackingResult{
		Sheets: []model.Sheet{
			{
				Width:  2440,
				Height: 1220,
				Placements: []model.Placement{
					{
						Panel: model.Panel{ID: "p1-1", Label: "Side Panel", Width: 800, Height: 600, Depth: 18},
						X:     0, Y: 0, Rotated: false,
					},
					{
						Panel: model.Panel{ID: "p1-2", Label: "Side Panel", Width: 800, Height: 600, Depth: 18},
						X:     800, Y: 0, Rotated: false,
					},
					{
						Panel: model.Panel{ID: "p2-1", Label: "Shelf", Width: 400, Height: 300, Depth: 18},
						X:     1600, Y: 0, Rotated: true,
					},
				},
			},
			{
				Width:  2440,
				Height: 1220,
				Placements: []model.Placement{
					{
						Panel: model.Panel{ID: "p3-1", Label: "Back Panel", Width: 2000, Height: 1000, Depth: 6},
						X:     0, Y: 0, Rotated: false,
					},
				},
			},
		},
	}
}

func buildTestRequests() []model.PanelRequest {
	return []model.PanelRequest{
		{ID: "p1", Label: "Side Panel", Width: 800, Height: 600, Depth: 18, Quantity: 2},
		{ID: "p2", Label: "Shelf", Width: 400, Height: 300, Depth: 18, Quantity: 1},
		{ID: "p3", Label: "Back Panel", Width: 2000, Height: 1000, Depth: 6, Quantity: 1},
	}
}

func buildTestSummary(t *testing.T) model.Summary {
	t.Helper()
	summary, err := model.Summarize(buildTestRequests(), 2440, 1220, buildTestResult())
	require.NoError(t, err)
	return summary
}

func TestWriteCSV_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, buildTestRequests()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Panel Width (mm),Panel Height (mm),Panel Depth (mm),Quantity", lines[0])
	assert.Equal(t, "800,600,18,2", lines[1])
	assert.Equal(t, "400,300,18,1", lines[2])
	assert.Equal(t, "2000,1000,6,1", lines[3])
}

func TestWriteCSV_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "Panel Width (mm),Panel Height (mm),Panel Depth (mm),Quantity\n", buf.String())
}

func TestExportCSV_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "panels.csv")
	require.NoError(t, ExportCSV(path, buildTestRequests()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Panel Width (mm)"))
}

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	err := ExportPDF(path, buildTestResult(), buildTestSummary(t))
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err, "PDF file was not created")
	// A valid PDF with 3 pages (2 sheets + summary) should be a reasonable size
	assert.Greater(t, info.Size(), int64(500), "PDF file seems too small")
}

func TestExportPDF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	err := ExportPDF(path, model.PackingResult{}, model.Summary{})
	assert.Error(t, err, "expected error for empty result")
}

func TestExportXLSX_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.xlsx")

	err := ExportXLSX(path, buildTestRequests(), buildTestResult(), buildTestSummary(t))
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{cuttingListSheet, placementsSheet, summarySheet}, f.GetSheetList())

	rows, err := f.GetRows(cuttingListSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4, "header plus one row per request")
	assert.Equal(t, "Panel Width (mm)", rows[0][1])
	assert.Equal(t, "Side Panel", rows[1][0])

	placements, err := f.GetRows(placementsSheet)
	require.NoError(t, err)
	require.Len(t, placements, 5, "header plus one row per placed panel")

	// The rotated shelf panel reports its placed (swapped) dimensions.
	shelf := placements[3]
	assert.Equal(t, "Shelf", shelf[1])
	assert.Equal(t, "300", shelf[4])
	assert.Equal(t, "400", shelf[5])
	assert.Equal(t, "TRUE", strings.ToUpper(shelf[6]))
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	err := ExportLabels(path, buildTestResult())
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(500))
}

func TestExportLabels_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	err := ExportLabels(path, model.PackingResult{})
	assert.Error(t, err, "expected error with no placed panels")
}

func TestExportDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")

	err := ExportDXF(path, buildTestResult())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "SECTION")
	assert.Contains(t, content, "LINE")
	assert.Contains(t, content, "PANELS")
}

func TestExportDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")

	err := ExportDXF(path, model.PackingResult{})
	assert.Error(t, err)
}
