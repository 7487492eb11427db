// Package commands implements the CLI commands for linkprune.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "linkprune",
	Short: "Detect and remove redundant hyperlinks from HTML articles",
	Long: `Linkprune analyzes the hyperlinks of an HTML article, groups them
by normalized destination, and unwraps redundant occurrences while
preserving their inner content. Image links, call-to-action buttons,
and the first text occurrence of each destination are kept.

Examples:
  # Analyze a local article and print the link inventory
  linkprune analyze article.html --domain example.com

  # Analyze a live page, JSON output
  linkprune analyze https://example.com/article --format json

  # Clean an article, writing cleaned-article.html
  linkprune clean article.html --domain example.com

  # Clean from stdin to stdout
  cat article.html | linkprune clean -o -`,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.linkprune.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress progress output")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".linkprune")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("LINKPRUNE")
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
