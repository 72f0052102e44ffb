package cmd

import (
	"github.com/spf13/cobra"

	"github.com/runZeroInc/runzero-tools/pkg/engine"
	"github.com/runZeroInc/runzero-tools/pkg/inventory"
)

var urlsFormat string

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Print a URL for every HTTP service in an asset export",
	Long: `Prints one URL per service whose protocol is "http". Services with a
tls.cipher attribute are printed as https://address:port, the rest as
http://address:port.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := inputFormat(urlsFormat)
		if err != nil {
			return err
		}
		return extractURLs(cmd, format)
	},
}

var urlsJSONLCmd = &cobra.Command{
	Use:   "urls-jsonl",
	Short: "Print URLs from a JSON Lines asset export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return extractURLs(cmd, inventory.FormatJSONL)
	},
}

var urlsJSONCmd = &cobra.Command{
	Use:   "urls-json",
	Short: "Print URLs from a JSON array asset export",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return extractURLs(cmd, inventory.FormatJSON)
	},
}

func extractURLs(cmd *cobra.Command, format inventory.Format) error {
	return runProcessor(cmd, format, engine.NewURLExtractor(cmd.OutOrStdout()))
}

func init() {
	urlsCmd.Flags().StringVarP(&urlsFormat, "format", "f", "", "Input framing: jsonl or json (default from config, else jsonl)")

	rootCmd.AddCommand(urlsCmd)
	rootCmd.AddCommand(urlsJSONLCmd)
	rootCmd.AddCommand(urlsJSONCmd)
}
