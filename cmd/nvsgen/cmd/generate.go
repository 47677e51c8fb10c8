package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sensorflash/nvsgen/pkg/config"
	"github.com/sensorflash/nvsgen/pkg/partition"
)

var (
	generateConfig string
	generateOutput string
	generateSize   string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate an NVS partition image from a YAML description",
	Long: `Generate an NVS partition image from a YAML description.

Example:
  nvsgen generate --config nvs.yaml --output nvs.bin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(generateConfig)
		if err != nil {
			return err
		}

		size, err := cfg.PartitionSize()
		if generateSize != "" {
			size, err = config.ParseSize(generateSize)
		}
		if err != nil {
			return err
		}

		data, err := cfg.Data()
		if err != nil {
			return err
		}

		img, err := partition.Encode(data, size, partition.WithLogger(logger))
		if err != nil {
			return err
		}

		if err := os.WriteFile(generateOutput, img, 0644); err != nil {
			return fmt.Errorf("failed to write image: %w", err)
		}

		logger.Info().
			Str("output", generateOutput).
			Int("bytes", len(img)).
			Int("entries", data.Len()).
			Msg("partition image written")
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes (%d entries) to %s\n", len(img), data.Len(), generateOutput)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&generateConfig, "config", "c", "nvs.yaml", "Partition description file")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "nvs.bin", "Output image path")
	generateCmd.Flags().StringVar(&generateSize, "size", "", "Override the partition size from the description (e.g. 0x6000)")
}
