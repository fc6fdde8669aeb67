// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reportsmith/internal/convert"
	"github.com/pdiddy/reportsmith/internal/history"
	"github.com/pdiddy/reportsmith/internal/pdf"
	"github.com/pdiddy/reportsmith/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [markdown files...]",
	Short: "Convert Markdown reports to styled PDF",
	Long: `Convert renders Markdown reports to PDF through the configured engine.

With no arguments it converts the two project reports found in --dir:
Final_Project_Report.md and Role_Based_Prompting_Report.md. A missing
report is skipped with a warning. When the engine fails, the styled HTML
is written next to the intended PDF instead.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("dir", ".", "directory containing the project reports")
	convertCmd.Flags().String("report", "", "convert only this built-in report (final or role-based)")
	convertCmd.Flags().StringP("output", "o", "", "output PDF path (single report only)")
	convertCmd.Flags().String("engine", "", fmt.Sprintf("pdf engine: %v", pdf.Names()))
	convertCmd.Flags().String("theme", "", "stylesheet for every report: final, classic, or a custom name")
	convertCmd.Flags().String("assets-dir", "", "directory with styles/ and templates/ overriding the built-in assets")
	convertCmd.Flags().Bool("keep-html", false, "also write the styled HTML next to each PDF")
	convertCmd.Flags().Duration("timeout", 0, "time limit for one engine call (default 2m)")

	bindFlag(convertCmd, "render.engine", "engine")
	bindFlag(convertCmd, "render.theme", "theme")
	bindFlag(convertCmd, "render.assets_dir", "assets-dir")
	bindFlag(convertCmd, "render.keep_html", "keep-html")
	bindFlag(convertCmd, "render.timeout", "timeout")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := commandConfig(cmd)

	reports, err := selectReports(cmd, args)
	if err != nil {
		return err
	}

	engine, err := pdf.New(cfg.Render.Engine, cfg.Render)
	if err != nil {
		return err
	}

	ctx := context.Background()
	rec := history.NewRecorder(cfg.History, os.Stderr)
	defer rec.Close()

	results, batch := convert.New(engine, cfg.Render).ConvertBatch(ctx, reports, os.Stdout)
	for _, r := range results {
		rec.RecordResult(ctx, r)
	}

	if batch.HasFailures() {
		return fmt.Errorf("%d report(s) failed conversion", batch.Failed)
	}
	return nil
}

// selectReports resolves the reports to convert from arguments and flags.
func selectReports(cmd *cobra.Command, args []string) ([]types.Report, error) {
	dir, _ := cmd.Flags().GetString("dir")
	name, _ := cmd.Flags().GetString("report")
	output, _ := cmd.Flags().GetString("output")

	var reports []types.Report
	switch {
	case len(args) > 0 && name != "":
		return nil, fmt.Errorf("--report cannot be combined with file arguments")
	case len(args) > 0:
		reports = convert.ReportsFromPaths(args)
	case name != "":
		r, err := convert.SelectReport(dir, name)
		if err != nil {
			return nil, err
		}
		reports = []types.Report{r}
	default:
		reports = types.KnownReports(dir)
	}

	if output != "" {
		if len(reports) != 1 {
			return nil, fmt.Errorf("--output needs exactly one report, got %d", len(reports))
		}
		reports[0].PDFPath = output
	}
	return reports, nil
}
