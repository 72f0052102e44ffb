package cmd

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/runZeroInc/runzero-tools/pkg/engine"
	"github.com/runZeroInc/runzero-tools/pkg/inventory"
)

// openInput returns the asset stream: stdin for "-" or an empty path,
// otherwise the named file.
func openInput(cmd *cobra.Command) (io.ReadCloser, error) {
	if InputPath == "" || InputPath == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(InputPath)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	return f, nil
}

// inputFormat resolves the framing from the flag value, falling back to the
// configured default.
func inputFormat(flagValue string) (inventory.Format, error) {
	if flagValue == "" && cfg != nil {
		flagValue = cfg.InputFormat
	}
	return inventory.ParseFormat(flagValue)
}

// runProcessor feeds every asset on the input through p.
func runProcessor(cmd *cobra.Command, format inventory.Format, p engine.Processor) error {
	in, err := openInput(cmd)
	if err != nil {
		return err
	}
	defer in.Close()

	log.Debug("reading assets", zap.String("input", InputPath), zap.String("format", string(format)))
	err = inventory.ForEach(in, format, p.Process)
	stats := p.Stats()
	log.Debug("run finished", zap.Int("assets", stats.Assets), zap.Int("emitted", stats.Emitted))
	return err
}
