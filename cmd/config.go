package cmd

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/runZeroInc/runzero-tools/pkg/config"
	"github.com/runZeroInc/runzero-tools/pkg/engine"
	"github.com/runZeroInc/runzero-tools/pkg/inventory"
	"github.com/runZeroInc/runzero-tools/pkg/logger"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage configuration (log level, input format, critical network sets)",
	Annotations: map[string]string{annotationNeedsConfig: "true"},
}

var showConfigCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		shown := *cfg
		shown.LogLevel = logger.ResolveLevel(DebugMode, cfg.LogLevel).String()
		data, err := yaml.Marshal(&shown)
		if err != nil {
			return errors.Wrap(err, "encode config")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", cfgPath, data)
		return nil
	},
}

var setLogLevelCmd = &cobra.Command{
	Use:   "set-log-level LEVEL",
	Short: "Set the default log level (debug, info, warn, error)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := strings.ToLower(args[0])
		switch level {
		case "debug", "info", "warn", "error":
		default:
			return errors.Newf("unknown log level %q", args[0])
		}
		cfg.LogLevel = level
		return saveConfig(cmd, fmt.Sprintf("Log level set to %s", level))
	},
}

var setFormatCmd = &cobra.Command{
	Use:   "set-format FORMAT",
	Short: "Set the default input framing (jsonl or json)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := inventory.ParseFormat(args[0])
		if err != nil {
			return err
		}
		cfg.InputFormat = string(format)
		return saveConfig(cmd, fmt.Sprintf("Input format set to %s", format))
	},
}

var addSetCmd = &cobra.Command{
	Use:   "add-set",
	Short: "Save a named set of critical networks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		cidrs, _ := cmd.Flags().GetStringSlice("cidr")

		if name == "" || len(cidrs) == 0 {
			return errors.New("--name and at least one --cidr are required")
		}
		if _, err := engine.ParseNetworks(cidrs); err != nil {
			return err
		}

		cfg.SetCriticalSet(name, cidrs)
		return saveConfig(cmd, fmt.Sprintf("Critical set %s saved with %d networks", name, len(cidrs)))
	},
}

var removeSetCmd = &cobra.Command{
	Use:   "remove-set",
	Short: "Delete a named set of critical networks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return errors.New("--name is required")
		}
		if !cfg.RemoveCriticalSet(name) {
			return errors.Newf("unknown critical network set %q", name)
		}
		return saveConfig(cmd, fmt.Sprintf("Critical set %s removed", name))
	},
}

var listSetsCmd = &cobra.Command{
	Use:   "list-sets",
	Short: "List the named sets of critical networks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		names := cfg.SetNames()
		if len(names) == 0 {
			fmt.Fprintln(out, "No critical network sets configured.")
			return
		}
		for _, name := range names {
			fmt.Fprintf(out, "%s: %s\n", name, strings.Join(cfg.CriticalSets[name], ", "))
		}
	},
}

func saveConfig(cmd *cobra.Command, msg string) error {
	if err := config.SaveConfig(cfgPath, cfg); err != nil {
		return err
	}
	log.Debug("configuration saved", zap.String("path", cfgPath))
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}

func init() {
	addSetCmd.Flags().StringP("name", "n", "", "Set name")
	addSetCmd.Flags().StringSliceP("cidr", "c", nil, "Critical network (repeatable or comma separated)")

	removeSetCmd.Flags().StringP("name", "n", "", "Set name")

	configCmd.AddCommand(showConfigCmd)
	configCmd.AddCommand(setLogLevelCmd)
	configCmd.AddCommand(setFormatCmd)
	configCmd.AddCommand(addSetCmd)
	configCmd.AddCommand(removeSetCmd)
	configCmd.AddCommand(listSetsCmd)
	rootCmd.AddCommand(configCmd)
}
