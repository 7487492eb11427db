package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/linkprune/linkprune/internal/output"
	"github.com/linkprune/linkprune/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatStr, _ := cmd.Flags().GetString("format")
		format, err := output.ParseFormat(formatStr)
		if err != nil {
			return err
		}

		if format == output.FormatText {
			fmt.Println(version.Full())
			return nil
		}

		writer, err := output.NewWriter(os.Stdout, format)
		if err != nil {
			return err
		}
		if err := writer.Write(version.Get()); err != nil {
			return err
		}
		return writer.Flush()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().String("format", "text", "output format: text, json, yaml")
}
