package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/runZeroInc/runzero-tools/pkg/engine"
	"github.com/runZeroInc/runzero-tools/pkg/inventory"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup wizard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner := bufio.NewScanner(cmd.InOrStdin())
		out := cmd.OutOrStdout()
		prompt := func(label string) string {
			fmt.Fprint(out, label)
			if !scanner.Scan() {
				return ""
			}
			return strings.TrimSpace(scanner.Text())
		}

		fmt.Fprintln(out, "runzero-tools setup")
		fmt.Fprintln(out, "-------------------")

		// 1. Input framing
		fmt.Fprintln(out, "Step 1: Default export format")
		fmt.Fprintln(out, "1. JSON Lines (one asset per line)")
		fmt.Fprintln(out, "2. JSON array")
		var format inventory.Format
		switch choice := strings.ToLower(prompt("Enter number or name > ")); choice {
		case "", "1", "jsonl":
			format = inventory.FormatJSONL
		case "2", "json":
			format = inventory.FormatJSON
		default:
			return errors.Newf("invalid choice %q", choice)
		}

		// 2. Critical networks
		fmt.Fprintln(out, "\nStep 2: Name a set of critical networks (blank to skip)")
		name := prompt("> ")
		var cidrs []string
		if name != "" {
			fmt.Fprintf(out, "\nStep 3: Critical networks for %s, comma separated (e.g. 10.0.0.0/24)\n", name)
			for _, c := range strings.Split(prompt("> "), ",") {
				if c = strings.TrimSpace(c); c != "" {
					cidrs = append(cidrs, c)
				}
			}
			if len(cidrs) == 0 {
				return errors.New("at least one network is required")
			}
			if _, err := engine.ParseNetworks(cidrs); err != nil {
				return err
			}
		}

		cfg.InputFormat = string(format)
		if name != "" {
			cfg.SetCriticalSet(name, cidrs)
		}
		if err := saveConfig(cmd, "\nSetup complete, configuration saved to "+cfgPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Format: %s\n", format)
		if name != "" {
			fmt.Fprintf(out, "Run 'runzero-tools bridges --set %s < assets.jsonl'\n", name)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(setupCmd)
}
