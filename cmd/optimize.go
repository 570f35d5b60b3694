package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/piwi3910/plycut/internal/catalog"
	"github.com/piwi3910/plycut/internal/engine"
	"github.com/piwi3910/plycut/internal/export"
	"github.com/piwi3910/plycut/internal/importer"
	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/observability"
	"github.com/piwi3910/plycut/internal/project"
)

func newOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize <cutting-list>",
		Short: "Packs a cutting list onto sheets and reports material usage",
		Long: "Optimize reads a cutting list (CSV, XLSX, or a saved plan JSON), packs every panel " +
			"onto sheets using a shelf layout with rotation, and prints a material summary. " +
			"Layouts can be exported to PDF, XLSX, DXF, CSV, and QR code labels.",
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("sheet.width", cmd.Flags().Lookup("sheet-width")); err != nil {
				return err
			}
			return viper.BindPFlag("sheet.height", cmd.Flags().Lookup("sheet-height"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()
			inputPath := args[0]

			requests, planDims, err := loadRequests(inputPath, logger)
			if err != nil {
				return err
			}

			sheetWidth := viper.GetFloat64("sheet.width")
			sheetHeight := viper.GetFloat64("sheet.height")
			// A saved plan carries its own sheet size unless flags override it.
			if planDims != nil && !cmd.Flags().Changed("sheet-width") && !cmd.Flags().Changed("sheet-height") {
				sheetWidth, sheetHeight = planDims[0], planDims[1]
			}

			logger.Info("Packing cutting list",
				zap.String("input", inputPath),
				zap.Int("requests", len(requests)),
				zap.Float64("sheet_width", sheetWidth),
				zap.Float64("sheet_height", sheetHeight))

			panels, err := catalog.Expand(requests)
			if err != nil {
				return fmt.Errorf("invalid cutting list: %w", err)
			}

			packer := engine.New(sheetWidth, sheetHeight)
			result, err := packer.Pack(panels)
			if err != nil {
				return fmt.Errorf("packing failed: %w", err)
			}

			summary, err := model.Summarize(requests, sheetWidth, sheetHeight, result)
			if err != nil {
				return err
			}

			logger.Info("Packing complete",
				zap.Int("panels", summary.TotalPanels),
				zap.Int("sheets", summary.SheetsUsed),
				zap.Float64("panel_area_m2", summary.PanelArea),
				zap.Float64("sheet_area_m2", summary.SheetArea),
				zap.Float64("utilization_pct", summary.Utilization),
				zap.Float64("waste_pct", summary.WastePercent))

			if viper.GetBool("offcuts") {
				reportOffcuts(result, logger)
			}

			return runExports(cmd, requests, result, summary, logger)
		},
	}

	optimizeCmd.Flags().Float64("sheet-width", model.DefaultSheetWidth, "sheet width in mm")
	optimizeCmd.Flags().Float64("sheet-height", model.DefaultSheetHeight, "sheet height in mm")
	optimizeCmd.Flags().Bool("offcuts", false, "report reusable offcuts per sheet")
	optimizeCmd.Flags().String("pdf", "", "write the layout to a PDF file")
	optimizeCmd.Flags().String("xlsx", "", "write the cutting list and placements to an XLSX file")
	optimizeCmd.Flags().String("dxf", "", "write the layout to a DXF file")
	optimizeCmd.Flags().String("labels", "", "write QR code panel labels to a PDF file")
	optimizeCmd.Flags().String("csv", "", "write the cutting list to a CSV file")
	optimizeCmd.Flags().String("save-plan", "", "save the cutting list and layout as a plan JSON file")
	optimizeCmd.Flags().String("name", "", "plan name used when saving")

	_ = viper.BindPFlag("offcuts", optimizeCmd.Flags().Lookup("offcuts"))

	return optimizeCmd
}

// loadRequests reads a cutting list from CSV, XLSX, or plan JSON.
// For plan files it also returns the stored sheet dimensions.
func loadRequests(path string, logger *zap.Logger) ([]model.PanelRequest, *[2]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		plan, err := project.LoadPlan(path)
		if err != nil {
			return nil, nil, err
		}
		dims := [2]float64{plan.SheetWidth, plan.SheetHeight}
		return plan.Requests, &dims, nil
	case ".xlsx":
		return requestsFromImport(importer.ImportExcel(path), logger)
	default:
		return requestsFromImport(importer.ImportCSV(path), logger)
	}
}

func requestsFromImport(result importer.ImportResult, logger *zap.Logger) ([]model.PanelRequest, *[2]float64, error) {
	for _, w := range result.Warnings {
		logger.Warn("Import warning", zap.String("detail", w))
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			logger.Error("Import error", zap.String("detail", e))
		}
		return nil, nil, fmt.Errorf("cutting list import failed with %d error(s)", len(result.Errors))
	}
	return result.Requests, nil, nil
}

func reportOffcuts(result model.PackingResult, logger *zap.Logger) {
	offcuts := model.DetectAllOffcuts(result)
	if len(offcuts) == 0 {
		logger.Info("No reusable offcuts found")
		return
	}
	for _, o := range offcuts {
		logger.Info("Reusable offcut",
			zap.Int("sheet", o.SheetIndex+1),
			zap.Float64("x", o.X),
			zap.Float64("y", o.Y),
			zap.Float64("width", o.Width),
			zap.Float64("height", o.Height))
	}
}

func runExports(cmd *cobra.Command, requests []model.PanelRequest, result model.PackingResult, summary model.Summary, logger *zap.Logger) error {
	exports := []struct {
		flag string
		run  func(path string) error
	}{
		{"csv", func(path string) error { return export.ExportCSV(path, requests) }},
		{"pdf", func(path string) error { return export.ExportPDF(path, result, summary) }},
		{"xlsx", func(path string) error { return export.ExportXLSX(path, requests, result, summary) }},
		{"dxf", func(path string) error { return export.ExportDXF(path, result) }},
		{"labels", func(path string) error { return export.ExportLabels(path, result) }},
	}

	for _, e := range exports {
		path, err := cmd.Flags().GetString(e.flag)
		if err != nil {
			return err
		}
		if path == "" {
			continue
		}
		if err := e.run(path); err != nil {
			return fmt.Errorf("%s export failed: %w", e.flag, err)
		}
		logger.Info("Export written", zap.String("format", e.flag), zap.String("path", path))
	}

	if planPath, _ := cmd.Flags().GetString("save-plan"); planPath != "" {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(planPath), filepath.Ext(planPath))
		}
		plan := model.Plan{
			Name:        name,
			SheetWidth:  summary.SheetWidth,
			SheetHeight: summary.SheetHeight,
			Requests:    requests,
			Result:      &result,
		}
		if err := project.SavePlan(planPath, plan); err != nil {
			return fmt.Errorf("saving plan failed: %w", err)
		}
		logger.Info("Plan saved", zap.String("path", planPath))
	}

	return nil
}
