// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/reportsmith/internal/secrets"
	"github.com/pdiddy/reportsmith/pkg/types"
)

// setConfigDefaults registers every config key so config files, REPORTSMITH_*
// variables, and bound flags all resolve through viper.
func setConfigDefaults() {
	d := types.DefaultConfig()

	viper.SetDefault("render.engine", string(d.Render.Engine))
	viper.SetDefault("render.theme", d.Render.Theme)
	viper.SetDefault("render.assets_dir", d.Render.AssetsDir)
	viper.SetDefault("render.page.size", d.Render.Page.Size)
	viper.SetDefault("render.page.margin_top", d.Render.Page.MarginTop)
	viper.SetDefault("render.page.margin_right", d.Render.Page.MarginRight)
	viper.SetDefault("render.page.margin_bottom", d.Render.Page.MarginBottom)
	viper.SetDefault("render.page.margin_left", d.Render.Page.MarginLeft)
	viper.SetDefault("render.page.encoding", d.Render.Page.Encoding)
	viper.SetDefault("render.page.outline", d.Render.Page.Outline)
	viper.SetDefault("render.page.local_file_access", d.Render.Page.LocalFileAccess)
	viper.SetDefault("render.wkhtmltopdf_path", d.Render.WkhtmltopdfPath)
	viper.SetDefault("render.container_image", d.Render.ContainerImage)
	viper.SetDefault("render.gotenberg_url", d.Render.GotenbergURL)
	viper.SetDefault("render.timeout", d.Render.Timeout)
	viper.SetDefault("render.keep_html", d.Render.KeepHTML)

	viper.SetDefault("charts.out_dir", d.Charts.OutDir)
	viper.SetDefault("charts.dataset_file", d.Charts.DatasetFile)
	viper.SetDefault("charts.html", d.Charts.HTML)
	viper.SetDefault("charts.assets_host", d.Charts.AssetsHost)

	viper.SetDefault("history.dir", d.History.Dir)
	viper.SetDefault("history.enabled", d.History.Enabled)
}

// loadConfig reads the merged settings.
func loadConfig() types.Config {
	return types.Config{
		Render: types.RenderConfig{
			Engine:    types.EngineName(viper.GetString("render.engine")),
			Theme:     viper.GetString("render.theme"),
			AssetsDir: viper.GetString("render.assets_dir"),
			Page: types.PageConfig{
				Size:            viper.GetString("render.page.size"),
				MarginTop:       viper.GetString("render.page.margin_top"),
				MarginRight:     viper.GetString("render.page.margin_right"),
				MarginBottom:    viper.GetString("render.page.margin_bottom"),
				MarginLeft:      viper.GetString("render.page.margin_left"),
				Encoding:        viper.GetString("render.page.encoding"),
				Outline:         viper.GetBool("render.page.outline"),
				LocalFileAccess: viper.GetBool("render.page.local_file_access"),
			},
			WkhtmltopdfPath: viper.GetString("render.wkhtmltopdf_path"),
			ContainerImage:  viper.GetString("render.container_image"),
			GotenbergURL:    viper.GetString("render.gotenberg_url"),
			Timeout:         viper.GetDuration("render.timeout"),
			KeepHTML:        viper.GetBool("render.keep_html"),
		},
		Charts: types.ChartConfig{
			OutDir:      viper.GetString("charts.out_dir"),
			DatasetFile: viper.GetString("charts.dataset_file"),
			HTML:        viper.GetBool("charts.html"),
			AssetsHost:  viper.GetString("charts.assets_host"),
		},
		History: types.HistoryConfig{
			Dir:     viper.GetString("history.dir"),
			Enabled: viper.GetBool("history.enabled"),
		},
	}
}

// commandConfig loads the config, adds the startup secrets, and applies
// --no-history.
func commandConfig(cmd *cobra.Command) types.Config {
	cfg := loadConfig()
	if auth := secrets.GotenbergAuth(loadedSecrets); auth != nil {
		cfg.Render.GotenbergUsername = auth.Username
		cfg.Render.GotenbergPassword = auth.Password
	}
	if off, _ := cmd.Flags().GetBool("no-history"); off {
		cfg.History.Enabled = false
	}
	return cfg
}

// bindFlag binds a command flag to a config key. The flag must exist.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding --%s to %s: %v", flag, key, err))
	}
}
