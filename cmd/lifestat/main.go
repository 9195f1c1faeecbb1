package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"lifestat/internal"
	"lifestat/internal/config"
)

// app carries what every subcommand needs after configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *internal.Logger
}

func main() {
	_ = godotenv.Load()

	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "lifestat",
		Short: "Reliability statistics: lifetime distribution fits and hypothesis tests",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = internal.NewLogger(cfg.LogLevel, os.Stderr).Named("cli")
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newCalcCmd(a),
		newPlotCmd(a),
		newMethodsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
