package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/webdevify/internal/convert"
	"github.com/pdiddy/webdevify/internal/fetch"
	"github.com/pdiddy/webdevify/pkg/types"
)

// outputSeparator divides the converted markdown from the command string.
const outputSeparator = "----------"

var convertCmd = &cobra.Command{
	Use:   "convert [url]",
	Short: "Convert a WebFundamentals article to a web.dev post",
	Long: `Convert fetches the markdown source of a developers.google.com/web article
and prints it rewritten for web.dev, followed by a separator line and a shell
command that creates the post directory and downloads its images.

With --output webfundamentals the fetched source is printed unchanged.

Every legacy directive the frontmatter is built from is required by default.
With --missing warn, absent authors, snippet, dates, tags, or featured image
are logged and left out; the title and description are always required.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringP("url", "u", "", "article URL (https://developers.google.com/web/...)")
	convertCmd.Flags().StringP("output", "o", string(types.OutputWebDev), "output mode: web.dev or webfundamentals")
	convertCmd.Flags().String("missing", string(types.MissingFail), "missing-directive policy: fail or warn")
	convertCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")

	viper.BindPFlag(keyOutput, convertCmd.Flags().Lookup("output"))
	viper.BindPFlag(keyMissing, convertCmd.Flags().Lookup("missing"))
	viper.BindPFlag(keyTimeout, convertCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	articleURL, _ := cmd.Flags().GetString("url")
	if articleURL == "" && len(args) == 1 {
		articleURL = args[0]
	}
	if articleURL == "" {
		return fmt.Errorf("provide an article URL with --url")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = types.DefaultTimeout
	}

	article, err := fetch.Resolve(articleURL, cfg.Fetch)
	if err != nil {
		return err
	}

	client := &http.Client{
		Timeout: cfg.Fetch.Timeout,
	}
	logger.Debug("fetching article", slog.String("raw_url", article.RawURL))
	raw, err := fetch.Fetch(cmd.Context(), client, article, cfg.Fetch)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cfg.Output == types.OutputWebFundamentals {
		fmt.Fprintln(w, raw)
		return nil
	}

	result, err := convert.New(cfg.Convert, logger).Convert(article, raw)
	if err != nil {
		return fmt.Errorf("converting %s: %w", article.Slug, err)
	}
	logger.Info("converted article",
		slog.String("slug", article.Slug),
		slog.Int("assets", len(result.Assets)))

	fmt.Fprintln(w, result.Markdown)
	fmt.Fprintln(w, outputSeparator)
	fmt.Fprintln(w, result.Command)
	return nil
}
