package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/observability"
)

func newEstimateCmd() *cobra.Command {
	estimateCmd := &cobra.Command{
		Use:   "estimate <cutting-list>",
		Short: "Estimates how many sheets to buy for a cutting list",
		Long: "Estimate computes the total panel area of a cutting list and recommends how many " +
			"sheets to purchase, applying a waste factor on top of the theoretical minimum.",
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("sheet.width", cmd.Flags().Lookup("sheet-width")); err != nil {
				return err
			}
			if err := viper.BindPFlag("sheet.height", cmd.Flags().Lookup("sheet-height")); err != nil {
				return err
			}
			if err := viper.BindPFlag("estimate.waste_percent", cmd.Flags().Lookup("waste")); err != nil {
				return err
			}
			return viper.BindPFlag("estimate.price_per_sheet", cmd.Flags().Lookup("price"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			requests, _, err := loadRequests(args[0], logger)
			if err != nil {
				return err
			}

			estimate := model.CalculatePurchaseEstimate(
				requests,
				viper.GetFloat64("sheet.width"),
				viper.GetFloat64("sheet.height"),
				viper.GetFloat64("estimate.waste_percent"),
				viper.GetFloat64("estimate.price_per_sheet"),
			)

			fields := []zap.Field{
				zap.Float64("panel_area_m2", estimate.TotalPanelArea/1e6),
				zap.Float64("board_feet", estimate.TotalBoardFeet),
				zap.Float64("sheets_exact", estimate.SheetsNeededExact),
				zap.Int("sheets_minimum", estimate.SheetsNeededMin),
				zap.Int("sheets_recommended", estimate.SheetsWithWaste),
				zap.Float64("waste_percent", estimate.WastePercent),
			}
			if estimate.PricePerSheet > 0 {
				fields = append(fields,
					zap.Float64("price_per_sheet", estimate.PricePerSheet),
					zap.Float64("estimated_cost", estimate.EstimatedCost))
			}
			logger.Info("Purchase estimate", fields...)
			return nil
		},
	}

	estimateCmd.Flags().Float64("sheet-width", model.DefaultSheetWidth, "sheet width in mm")
	estimateCmd.Flags().Float64("sheet-height", model.DefaultSheetHeight, "sheet height in mm")
	estimateCmd.Flags().Float64("waste", 10.0, "waste factor percentage applied to the minimum")
	estimateCmd.Flags().Float64("price", 0.0, "price per sheet for cost estimation")

	return estimateCmd
}
