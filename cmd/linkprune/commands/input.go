package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/linkprune/linkprune/internal/fetcher"
	"github.com/linkprune/linkprune/internal/logger"
	"github.com/linkprune/linkprune/pkg/linkprune"
)

// readInput resolves the command's input source and returns the raw HTML.
// The source may be a URL, a file path, or "-"/absent for stdin.
func readInput(cmd *cobra.Command, args []string) (html string, source string, err error) {
	source = "-"
	if len(args) > 0 {
		source = args[0]
	}

	switch {
	case source == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", source, fmt.Errorf("failed to read stdin: %w", err)
		}
		html = string(data)

	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		html, err = fetchURL(cmd, source)
		if err != nil {
			return "", source, err
		}

	default:
		data, err := os.ReadFile(source) //#nosec G304 -- CLI tool reads a user-specified input file
		if err != nil {
			return "", source, fmt.Errorf("failed to read file: %w", err)
		}
		html = string(data)
	}

	if strings.TrimSpace(html) == "" {
		return "", source, fmt.Errorf("input from %s is empty", source)
	}
	return html, source, nil
}

// fetchURL retrieves a page using the configured fetch mode.
func fetchURL(cmd *cobra.Command, url string) (string, error) {
	modeStr, _ := cmd.Flags().GetString("fetch-mode")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	f, err := fetcher.New(fetcher.FetchMode(modeStr), fetcher.Config{Timeout: timeout})
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	logInfo("Fetching %s (%s mode)...", url, f.Type())

	ctx := cmd.Context()
	opts := fetcher.DefaultFetchOptions()
	if timeout > 0 {
		opts.Timeout = timeout
	}

	content, err := f.Fetch(ctx, url, opts)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if content.StatusCode >= 400 {
		return "", fmt.Errorf("fetch of %s returned status %d", url, content.StatusCode)
	}

	logger.Debug("page fetched", "url", url, "status", content.StatusCode, "html_size", len(content.HTML))
	return content.HTML, nil
}

// registerInputFlags adds the flags shared by commands that take HTML input.
func registerInputFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("domain", "d", "", "site's own domain for external-link classification")
	flags.String("fetch-mode", "auto", "fetch mode for URL input: static, dynamic, auto")
	flags.Duration("timeout", 30*time.Second, "request timeout for URL input")
	flags.StringSlice("cta-class", nil, "additional CTA class keywords")
	flags.StringSlice("cta-phrase", nil, "additional CTA text phrases")
	flags.Int("density-threshold", 0, "per-paragraph link count that triggers a density warning")
}

// buildConfig merges defaults, config file values, and command flags.
func buildConfig(cmd *cobra.Command) (*linkprune.Config, error) {
	overrides := &linkprune.Config{
		Domain:           viper.GetString("domain"),
		CTAClassKeywords: viper.GetStringSlice("cta_class_keywords"),
		CTATextPhrases:   viper.GetStringSlice("cta_text_phrases"),
		ParentBlockTags:  viper.GetStringSlice("parent_block_tags"),
		DensityThreshold: viper.GetInt("density_threshold"),
	}

	if domain, _ := cmd.Flags().GetString("domain"); domain != "" {
		overrides.Domain = domain
	}
	if keywords, _ := cmd.Flags().GetStringSlice("cta-class"); len(keywords) > 0 {
		overrides.CTAClassKeywords = append(overrides.CTAClassKeywords, keywords...)
	}
	if phrases, _ := cmd.Flags().GetStringSlice("cta-phrase"); len(phrases) > 0 {
		overrides.CTATextPhrases = append(overrides.CTATextPhrases, phrases...)
	}
	if threshold, _ := cmd.Flags().GetInt("density-threshold"); threshold > 0 {
		overrides.DensityThreshold = threshold
	}

	cfg := linkprune.DefaultConfig().Merge(overrides)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
