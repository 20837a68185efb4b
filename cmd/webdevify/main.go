// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the webdevify CLI, which converts
// WebFundamentals articles from developers.google.com into web.dev posts.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is configured from --verbose before any subcommand runs.
var logger = slog.New(slog.DiscardHandler)

// rootCmd is the base command for the webdevify CLI.
var rootCmd = &cobra.Command{
	Use:   "webdevify",
	Short: "Convert WebFundamentals articles to web.dev posts",
	Long: `webdevify fetches the markdown source of a developers.google.com/web article
and rewrites it for web.dev: legacy {# #} and {% %} directives become YAML
frontmatter, callouts become Asides, and images are pointed at co-located
files. It also prints a shell command that scaffolds the post directory and
downloads every image.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", slog.String("path", used))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./webdevify.yaml or ~/.config/webdevify/webdevify.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log every rule as it is applied")

	setConfigDefaults()
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("webdevify")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "webdevify"))
		}
	}

	viper.SetEnvPrefix("WEBDEVIFY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
