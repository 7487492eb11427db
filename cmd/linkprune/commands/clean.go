package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/linkprune/linkprune/internal/logger"
	"github.com/linkprune/linkprune/internal/output"
	"github.com/linkprune/linkprune/pkg/linkprune"
)

// cleanDocument is the structured output of the clean command when a
// machine-readable report is requested.
type cleanDocument struct {
	Source     string           `json:"source" yaml:"source"`
	OutputPath string           `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Stats      linkprune.Stats  `json:"stats" yaml:"stats"`
	Report     linkprune.Report `json:"report" yaml:"report"`
}

var cleanCmd = &cobra.Command{
	Use:   "clean [url-or-file]",
	Short: "Remove redundant links and write the cleaned article",
	Long: `Clean analyzes the article, runs the duplicate-removal heuristics,
and regenerates the HTML with redundant anchors unwrapped. Image links,
call-to-action buttons, and the first text occurrence per destination
survive; target="_self" attributes are stripped everywhere.

Input may be a URL, a file path, or stdin when omitted or "-".

Examples:
  linkprune clean article.html --domain example.com
  linkprune clean https://example.com/article -o cleaned.html
  cat article.html | linkprune clean -o -`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	registerInputFlags(cleanCmd)
	flags := cleanCmd.Flags()
	flags.StringP("output", "o", "cleaned-article.html", `output file ("-" for stdout)`)
	flags.Bool("keep-all", false, "keep every link; only strip target=\"_self\" attributes")
	flags.String("report-format", "text", "changes report format: text, json, yaml")
}

func runClean(cmd *cobra.Command, args []string) error {
	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
	})

	reportFormatStr, _ := cmd.Flags().GetString("report-format")
	reportFormat, err := output.ParseFormat(reportFormatStr)
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

	keepAll, _ := cmd.Flags().GetBool("keep-all")
	if keepAll {
		session.KeepAll()
	} else {
		session.AutoStrip()
	}

	result, err := session.GenerateClean()
	if err != nil {
		logError("regeneration failed: %v", err)
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "-" {
		fmt.Fprint(os.Stdout, result.HTML)
	} else {
		if err := os.WriteFile(outPath, []byte(result.HTML), 0o644); err != nil { //#nosec G306 -- article output is not sensitive
			logError("failed to write %s: %v", outPath, err)
			return err
		}
		logInfo("Wrote %s (%s, was %s)", outPath,
			humanize.Bytes(uint64(len(result.HTML))),
			humanize.Bytes(uint64(len(html))))
	}

	return writeCleanReport(reportFormat, cleanDocument{
		Source:     source,
		OutputPath: outPath,
		Stats:      session.Stats(),
		Report:     result.Report,
	})
}

// writeCleanReport emits the changes report to stderr (text) or stdout
// (structured formats), keeping stdout clean when the article itself is
// streamed there.
func writeCleanReport(format output.Format, doc cleanDocument) error {
	if format == output.FormatText {
		if !doc.Report.HasChanges() {
			logInfo("No changes: every link was kept.")
			return nil
		}
		logInfo("%s", doc.Report)
		return nil
	}

	dest := os.Stdout
	if doc.OutputPath == "-" {
		// The cleaned article owns stdout, keep the report on stderr.
		dest = os.Stderr
	}
	writer, err := output.NewWriter(dest, format)
	if err != nil {
		return err
	}
	if err := writer.Write(doc); err != nil {
		logError("failed to write report: %v", err)
		return err
	}
	return writer.Flush()
}
