package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/linkprune/linkprune/internal/logger"
	"github.com/linkprune/linkprune/internal/output"
	"github.com/linkprune/linkprune/pkg/linkprune"
)

// analysisDocument is the structured output of the analyze command.
type analysisDocument struct {
	Source   string              `json:"source" yaml:"source"`
	Stats    linkprune.Stats     `json:"stats" yaml:"stats"`
	Groups   []*linkprune.Group  `json:"groups" yaml:"groups"`
	Warnings []linkprune.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [url-or-file]",
	Short: "Analyze an article's links without modifying it",
	Long: `Analyze parses the article, groups its links by normalized
destination, classifies each occurrence (text, image, call-to-action),
and reports duplicates and warnings. Nothing is modified.

Input may be a URL, a file path, or stdin when omitted or "-".

Examples:
  linkprune analyze article.html --domain example.com
  linkprune analyze https://example.com/article --format json
  cat article.html | linkprune analyze`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	registerInputFlags(analyzeCmd)
	analyzeCmd.Flags().String("format", "text", "output format: text, json, yaml")
	analyzeCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	formatStr, _ := cmd.Flags().GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		logError("%v", err)
		return err
	}

	html, source, err := readInput(cmd, args)
	if err != nil {
		logError("%v", err)
		return err
	}

	cfg, err := buildConfig(cmd)
	if err != nil {
		logError("%v", err)
		return err
	}

	session, err := linkprune.NewAnalyzer(cfg).Analyze(html)
	if err != nil {
		logError("analysis failed: %v", err)
		return err
	}
	logger.Debug("analysis complete", "links", len(session.Links), "groups", len(session.Groups))

	out := os.Stdout
	if outPath, _ := cmd.Flags().GetString("output"); outPath != "" && outPath != "-" {
		f, err := os.Create(outPath) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			logError("failed to create output file %s: %v", outPath, err)
			return err
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	doc := analysisDocument{
		Source:   source,
		Stats:    session.Stats(),
		Groups:   session.OrderedGroups(),
		Warnings: session.Warnings,
	}

	if format == output.FormatText {
		printAnalysisText(out, doc)
		return nil
	}

	writer, err := output.NewWriter(out, format)
	if err != nil {
		return err
	}
	if err := writer.Write(doc); err != nil {
		logError("failed to write output: %v", err)
		return err
	}
	return writer.Flush()
}

// printAnalysisText renders the inventory for terminal reading.
func printAnalysisText(w *os.File, doc analysisDocument) {
	fmt.Fprintf(w, "Source: %s\n", doc.Source)
	fmt.Fprintf(w, "Links:  %s\n\n", doc.Stats)

	for _, g := range doc.Groups {
		dup := ""
		if len(g.Links) > 1 {
			dup = fmt.Sprintf("  (%d occurrences)", len(g.Links))
		}
		fmt.Fprintf(w, "%s%s\n", g.DisplayHref, dup)
		for _, l := range g.Links {
			fmt.Fprintf(w, "  [%d] %s%s\n", l.ID, l.AnchorText, linkFlags(l))
			if l.Context != "" {
				fmt.Fprintf(w, "      %s\n", l.Context)
			}
		}
	}

	if len(doc.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings:\n")
		for _, warning := range doc.Warnings {
			fmt.Fprintf(w, "  %s\n", warning)
		}
	}
}

// linkFlags renders a link's classification markers.
func linkFlags(l *linkprune.Link) string {
	var flags string
	if l.IsImageLink {
		flags += " image"
	}
	if l.IsCtaLink {
		flags += " cta"
	}
	if l.IsInHeading {
		flags += " heading"
	}
	if l.IsExternal {
		flags += " external"
	}
	if flags == "" {
		return ""
	}
	return " <" + flags[1:] + ">"
}
