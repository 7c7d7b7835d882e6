package cmd

import (
	"fmt"
	"io"
	"org_diagnostics/internal/catalog"
	"org_diagnostics/internal/model"
	"org_diagnostics/internal/service"
	"org_diagnostics/internal/util"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	ratingsPath string
	outDir      string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the assessment offline and write xlsx + svg",
	Long: `Reads ratings from a YAML/JSON file of the form

  ratings:
    - {category: Strategie, subtopic: Vision, target: 8, actual: 3}

Subtopics without a rating use the defaults SOLL=7 / IST=5.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		cat, err := catalog.NewLoader().LoadFile(cfg.Catalog.Path)
		if err != nil {
			return err
		}

		src := service.MapRatingSource{}
		if ratingsPath != "" {
			ratings, err := readRatings(ratingsPath)
			if err != nil {
				return err
			}
			if src, err = service.NewRatingsSource(cat, ratings); err != nil {
				return err
			}
		}

		report, _, err := service.BuildReport(cmd.Context(), service.NewCollector(), cat, src)
		if err != nil {
			return err
		}

		printOverview(cmd.OutOrStdout(), report)
		return writeArtifacts(cmd.OutOrStdout(), report, outDir)
	},
}

func init() {
	reportCmd.Flags().StringVarP(&ratingsPath, "ratings", "r", "", "ratings file (YAML or JSON)")
	reportCmd.Flags().StringVarP(&outDir, "out", "o", "out", "output directory")
}

type ratingsFile struct {
	Ratings []service.Rating `yaml:"ratings"`
}

func readRatings(path string) ([]service.Rating, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f ratingsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ratings %s: %w", path, err)
	}
	return f.Ratings, nil
}

func printOverview(w io.Writer, report *model.Report) {
	color.NoColor = color.NoColor || noColor

	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Alignment: tw.CellAlignment{PerColumn: []tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight}},
			},
			// 表头是固定的德语标签，不做大写转换
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.Off},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
	)
	table.Header(util.ColumnCategory, util.ColumnTarget, util.ColumnActual, util.ColumnDeviation)
	for _, s := range report.Summaries {
		table.Append(s.Category, strconv.Itoa(s.TargetSum), strconv.Itoa(s.ActualSum), strconv.Itoa(s.DeviationSum))
	}
	table.Render()

	fmt.Fprintf(w, "\nSchwerpunkt der Entwicklung: %s mit einer Gesamtabweichung von %s Punkten.\n",
		color.New(color.FgYellow, color.Bold).Sprint(report.Peak.Category),
		color.New(color.Bold).Sprint(report.Peak.DeviationSum),
	)
}

func writeArtifacts(w io.Writer, report *model.Report, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := service.WriteWorkbook(report)
	if err != nil {
		return err
	}
	xlsxPath := filepath.Join(dir, util.ExportFilename)
	if err := os.WriteFile(xlsxPath, data, 0644); err != nil {
		return err
	}

	svgPath := filepath.Join(dir, "radar.svg")
	f, err := os.Create(svgPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := service.RenderChart(f, report); err != nil {
		return err
	}

	fmt.Fprintf(w, "%s %s\n%s %s\n", color.GreenString("✓"), xlsxPath, color.GreenString("✓"), svgPath)
	return nil
}
