package main

import (
	"github.com/spf13/cobra"

	"github.com/jackzampolin/redpen/internal/api"
	"github.com/jackzampolin/redpen/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "redpen",
	Short: "Grammar and spelling correction service backed by LLM providers",
	Long: `Redpen corrects grammar and spelling errors in sentences using an
LLM provider (Ollama by default) with strict JSON-schema output.

Each correction lists the wrong word, its replacement, and the reason,
plus the fully corrected sentence. Transient provider failures are
retried with exponential backoff; batches isolate per-sentence failures.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.redpen/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
