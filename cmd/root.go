// Package cmd 命令行入口：serve 启动 Web 表单，report 离线生成报告
package cmd

import (
	"errors"
	"io/fs"
	"org_diagnostics/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configDir   string
	catalogPath string
	noColor     bool
)

var rootCmd = &cobra.Command{
	Use:   "orgdiag",
	Short: "Organisationsdiagnostik nach Meihei",
	Long: `orgdiag collects SOLL/IST self-assessments for a fixed catalog of
categories, aggregates the deviation per category, draws a radar chart and
exports the result as an Excel workbook.

Example usage:
  orgdiag serve                         # web form on :8080
  orgdiag report --ratings ratings.yaml # offline report into ./out
  orgdiag catalog validate              # check configs/wesenselemente.json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env 可选
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "configs", "directory containing config.yaml")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog file (overrides catalog.path)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(serveCmd, reportCmd, catalogCmd)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, err
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	return cfg, nil
}
