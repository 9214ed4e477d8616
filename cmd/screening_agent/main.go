// Package main provides the screening_agent command line: one-shot document
// analysis commands plus the HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	outputFile   string
	configFile   string
	logLevel     string
	logFormat    string
)

var rootCmd = &cobra.Command{
	Use:   "screening_agent",
	Short: "SearchFind document screening engine",
	Long: "SearchFind classifies recruiting documents, scores applications against job listings " +
		"and grades cover letters and job postings with deterministic heuristics.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&outputFormat, "format", "f", formatJSON, "Output format: json, yaml or text")
	flags.StringVarP(&outputFile, "out", "o", "", "Write output to this file instead of stdout")
	flags.StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")
	flags.StringVar(&logLevel, "log-level", "", "Log level override: debug, info, warn or error")
	flags.StringVar(&logFormat, "log-format", "", "Log format override: json or console")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
