package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logger   zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nvsgen",
	Short: "Generate and inspect ESP-IDF NVS partition images",
	Long: `nvsgen builds NVS partition images that ESP-IDF firmware reads with
the standard nvs_flash API, and decodes existing images back into
their key-value form. Images are byte-for-byte compatible with the
ESP-IDF partition generator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
			Level(level).
			With().Timestamp().Logger()
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
}
