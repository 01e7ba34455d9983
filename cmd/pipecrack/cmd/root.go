package cmd

import (
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	configFile string
	dbURL      string
)

var rootCmd = &cobra.Command{
	Use:   "pipecrack",
	Short: "Brute-force solver for multi-stage classical-cipher pipelines",
	Long: `Pipecrack enumerates every parameter combination of a cipher-stage chain,
applies it to a ciphertext, and reports the combinations whose output
scores as English.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "results database URL (sqlite://path or postgres://...)")
}

func Execute() error {
	return rootCmd.Execute()
}
