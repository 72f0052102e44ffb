package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/runZeroInc/runzero-tools/pkg/engine"
)

const bridgesUsage = "usage: runzero-tools bridges [critical-net/24].. [critical-net/24].. < assets.jsonl"

var (
	bridgesFormat string
	bridgesSets   []string
)

var bridgesCmd = &cobra.Command{
	Use:   "bridges [critical-net/24]...",
	Short: "Report assets that bridge critical and non-critical networks",
	Long: `Reads assets and reports every asset with IPv4 addresses both inside
and outside the given critical networks. IPv6 addresses are ignored.

Networks come from the arguments and from named sets in the config file
(--set). With no networks at all the usage is printed and nothing is read.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cidrs := append([]string(nil), args...)
		fromSets, err := cfg.CriticalNetworks(bridgesSets)
		if err != nil {
			return err
		}
		cidrs = append(cidrs, fromSets...)

		if len(cidrs) == 0 {
			fmt.Fprintln(cmd.ErrOrStderr(), bridgesUsage)
			return nil
		}

		nets, err := engine.ParseNetworks(cidrs)
		if err != nil {
			return err
		}
		format, err := inputFormat(bridgesFormat)
		if err != nil {
			return err
		}

		log.Debug("critical networks", zap.Stringers("networks", []engine.Network(nets)))
		return runProcessor(cmd, format, engine.NewBridgeDetector(nets, cmd.OutOrStdout()))
	},
}

func init() {
	bridgesCmd.Flags().StringVarP(&bridgesFormat, "format", "f", "", "Input framing: jsonl or json (default from config, else jsonl)")
	bridgesCmd.Flags().StringSliceVarP(&bridgesSets, "set", "s", nil, "Add the networks of a named critical set from the config file")

	rootCmd.AddCommand(bridgesCmd)
}
