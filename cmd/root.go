// Package cmd contains the plycut command line interface.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/observability"
	"github.com/piwi3910/plycut/internal/project"
)

var cfgFile string

// NewRootCommand builds the base command and its subcommands. A fresh
// instance is built per invocation so flag state never leaks between runs.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "plycut",
		Short:   "Plycut optimizes panel layouts on plywood sheets",
		Long:    "Plycut expands a panel cutting list, packs the panels onto standard sheets with a shelf algorithm, and reports material usage.",
		Version: Version,
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initializeConfig(rootCmd); err != nil {
			return err
		}
		observability.InitializeLogger(viper.GetString("log.level"), viper.GetString("log.format"))
		return nil
	}

	rootCmd.SilenceUsage = true
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.plycut/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newOptimizeCmd())
	rootCmd.AddCommand(newEstimateCmd())

	return rootCmd
}

// Execute builds the root command and runs it.
func Execute() {
	defer observability.Sync()
	if err := NewRootCommand().Execute(); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		os.Exit(1)
	}
}

// initializeConfig reads in the config file and environment variables if set.
func initializeConfig(rootCmd *cobra.Command) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(project.DefaultConfigDir())
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("sheet.width", model.DefaultSheetWidth)
	viper.SetDefault("sheet.height", model.DefaultSheetHeight)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("estimate.waste_percent", 10.0)
	viper.SetDefault("estimate.price_per_sheet", 0.0)

	viper.SetEnvPrefix("PLYCUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars
	}
	return nil
}
