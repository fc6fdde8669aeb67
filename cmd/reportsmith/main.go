// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the reportsmith CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reportsmith/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the reportsmith CLI.
var rootCmd = &cobra.Command{
	Use:   "reportsmith",
	Short: "Render project reports to PDF and draw strategy charts",
	Long: `reportsmith turns the project's Markdown reports into styled PDFs and
draws the prompting strategy visualizations that accompany them.

convert renders reports through a pluggable PDF engine (wkhtmltopdf,
container, gotenberg, or native) and falls back to styled HTML when the
engine fails. charts writes the PNG and interactive HTML charts. Every
written file is recorded in a local history database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setConfigDefaults()

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./reportsmith.yaml or ~/.config/reportsmith/reportsmith.yaml)")
	rootCmd.PersistentFlags().Bool("no-history", false, "do not record written files in the history database")
	rootCmd.PersistentFlags().String("history-dir", "", "directory holding reportsmith.db (default .reportsmith)")

	viper.BindPFlag("history.dir", rootCmd.PersistentFlags().Lookup("history-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("reportsmith")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "reportsmith"))
		}
	}

	viper.SetEnvPrefix("REPORTSMITH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
