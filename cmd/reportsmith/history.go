// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/reportsmith/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the files reportsmith has written",
	Long: `History lists recorded PDFs, HTML files, and charts, newest first. The
change column compares each file's SHA-256 with the previous entry for
the same path.`,
	RunE: runHistory,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the full history to export.yaml or export.json",
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum entries to show (0 = all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().Bool("yaml", false, "output as YAML")

	historyExportCmd.Flags().Bool("json", false, "write export.json instead of export.yaml")

	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.Store, error) {
	cfg := loadConfig()
	if _, err := os.Stat(cfg.History.Dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("no history in %s (run convert or charts first)", cfg.History.Dir)
	}
	return history.Open(cfg.History.Dir)
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	yamlOutput, _ := cmd.Flags().GetBool("yaml")
	if jsonOutput && yamlOutput {
		return fmt.Errorf("--json and --yaml are mutually exclusive")
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	switch {
	case jsonOutput:
		return history.FormatJSON(entries, os.Stdout)
	case yamlOutput:
		return history.FormatYAML(entries, os.Stdout)
	}
	history.FormatTable(entries, os.Stdout)
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	path, err := store.Export(context.Background(), asJSON)
	if err != nil {
		return err
	}
	fmt.Printf("Exported history to %s\n", path)
	return nil
}
