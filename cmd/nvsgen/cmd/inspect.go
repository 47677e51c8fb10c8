package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sensorflash/nvsgen/pkg/config"
	"github.com/sensorflash/nvsgen/pkg/partition"
)

var inspectVerify bool

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Decode an NVS partition image back into its YAML description",
	Long: `Decode an NVS partition image back into its YAML description.

With --verify, page header and entry checksums are recomputed and
mismatches reported; decoding still completes best-effort.

Example:
  nvsgen inspect nvs.bin --verify`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}

		var (
			data  *partition.Data
			diags []partition.Diagnostic
		)
		if inspectVerify {
			data, diags, err = partition.DecodeVerify(img, partition.WithLogger(logger))
		} else {
			data, err = partition.Decode(img, partition.WithLogger(logger))
		}
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(config.FromData(data, len(img)))
		if err != nil {
			return fmt.Errorf("failed to render description: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))

		for _, d := range diags {
			logger.Warn().Int("page", d.Page).Int("slot", d.Slot).Err(d.Err).Msg("checksum mismatch")
		}
		if len(diags) > 0 {
			return fmt.Errorf("image has %d checksum mismatches", len(diags))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectVerify, "verify", false, "Recompute and check page and entry checksums")
}
