// Package export provides functionality for exporting cutting lists and
// packing results to various file formats.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/piwi3910/plycut/internal/model"
)

// CSVHeader is the fixed header row of an exported cutting list.
var CSVHeader = []string{"Panel Width (mm)", "Panel Height (mm)", "Panel Depth (mm)", "Quantity"}

// WriteCSV serializes the original panel request list as a comma-delimited
// table with a fixed header row.
func WriteCSV(w io.Writer, requests []model.PanelRequest) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range requests {
		row := []string{
			strconv.FormatFloat(r.Width, 'f', -1, 64),
			strconv.FormatFloat(r.Height, 'f', -1, 64),
			strconv.FormatFloat(r.Depth, 'f', -1, 64),
			strconv.Itoa(r.Quantity),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ExportCSV writes the cutting list to a file.
func ExportCSV(path string, requests []model.PanelRequest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, requests); err != nil {
		return err
	}
	return f.Close()
}
