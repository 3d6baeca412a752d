package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/novelquest/novelquest/internal/api"
	"github.com/novelquest/novelquest/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "novelquest",
	Short: "LLM-powered book recommendation assistant",
	Long: `NovelQuest is a conversational book recommendation assistant.

It composes a structured prompt from your request, sends it to an LLM
provider (Gemini by default), parses the response into book records,
and enriches each one with an Amazon search link and a cover image.

Sessions keep conversation history so follow-up requests refine the
previous recommendations.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.novelquest/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Load .env and set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
