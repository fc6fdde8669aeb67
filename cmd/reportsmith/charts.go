// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reportsmith/internal/charts"
	"github.com/pdiddy/reportsmith/internal/history"
)

var chartsCmd = &cobra.Command{
	Use:   "charts [names...]",
	Short: "Draw the prompting strategy charts",
	Long: fmt.Sprintf(`Charts writes the strategy visualizations as PNG files, plus interactive
HTML versions of the comparison, trade-off, and heatmap charts.

With no arguments every chart is drawn. Valid names: %s.
The metric tables are built in; --dataset replaces any section given in a
YAML file.`, strings.Join(charts.Names(), ", ")),
	RunE: runCharts,
}

func init() {
	chartsCmd.Flags().String("out-dir", "", "directory for chart files (default .)")
	chartsCmd.Flags().String("dataset", "", "YAML file overriding the built-in metric tables")
	chartsCmd.Flags().Bool("no-html", false, "skip the interactive HTML charts")
	chartsCmd.Flags().String("assets-host", "", "host serving the ECharts JavaScript")

	bindFlag(chartsCmd, "charts.out_dir", "out-dir")
	bindFlag(chartsCmd, "charts.dataset_file", "dataset")
	bindFlag(chartsCmd, "charts.assets_host", "assets-host")

	rootCmd.AddCommand(chartsCmd)
}

func runCharts(cmd *cobra.Command, args []string) error {
	cfg := commandConfig(cmd)
	if noHTML, _ := cmd.Flags().GetBool("no-html"); noHTML {
		cfg.Charts.HTML = false
	}

	ds, err := charts.DatasetFor(cfg.Charts)
	if err != nil {
		return err
	}

	ctx := context.Background()
	rec := history.NewRecorder(cfg.History, os.Stderr)
	defer rec.Close()

	outputs, err := charts.Generate(ds, args, charts.OptionsFromConfig(cfg.Charts), os.Stdout)
	for _, o := range outputs {
		rec.Record(ctx, o.Chart, o.Path, o.Kind, "")
	}
	if err != nil {
		return err
	}

	fmt.Printf("\n%d chart file(s) written to %s\n", len(outputs), cfg.Charts.OutDir)
	return nil
}
