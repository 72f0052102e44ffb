package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/runZeroInc/runzero-tools/pkg/config"
	"github.com/runZeroInc/runzero-tools/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "runzero-tools",
	Short: "Filters for runZero asset inventory exports",
	Long: `runzero-tools reads runZero asset exports (JSON or JSON Lines) from
standard input and prints derived facts: web URLs for HTTP services and
assets that bridge critical and non-critical networks.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	DebugMode  bool
	ConfigPath string
	InputPath  string

	cfg     *config.Config
	cfgPath string
	log     = zap.NewNop()
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	_ = log.Sync()
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&DebugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&ConfigPath, "config", "", "Config file (default $"+config.EnvConfigPath+" or ~/.runzero-tools/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&InputPath, "input", "i", "-", "Read assets from this file instead of stdin")
}

// annotationNeedsConfig marks commands that cannot run without a readable
// config file.
const annotationNeedsConfig = "needs-config"

func setup(cmd *cobra.Command, args []string) error {
	loaded, path, err := loadConfig()
	if err != nil {
		if needsConfig(cmd) {
			return err
		}
		loaded = config.Default()
	}
	cfg, cfgPath = loaded, path

	log = logger.New(cmd.ErrOrStderr(), logger.ResolveLevel(DebugMode, cfg.LogLevel)).Named(cmd.Name())
	if err != nil {
		log.Warn("config unavailable, using defaults", zap.Error(err))
		return nil
	}
	log.Debug("configuration loaded", zap.String("path", path))
	return nil
}

func loadConfig() (*config.Config, string, error) {
	path, err := config.GetConfigPath(ConfigPath)
	if err != nil {
		return nil, "", err
	}
	loaded, err := config.LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	return loaded, path, nil
}

// needsConfig reports whether cmd reads or writes the config file itself.
// The filters fall back to defaults instead, unless they were asked for a
// named network set.
func needsConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationNeedsConfig] == "true" {
			return true
		}
	}
	if f := cmd.Flags().Lookup("set"); f != nil && f.Changed {
		return true
	}
	return false
}
