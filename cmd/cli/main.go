package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	format string
	chatID string
)

var rootCmd = &cobra.Command{
	Use:   "digest-cli",
	Short: "A CLI to interact with the esports-digest server",
	Long: `A command-line interface for requesting schedules, brackets and player
stats from a running esports-digest server.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&format, "format", "markdown", "Text dialect to request: html, markdown or slack")
	rootCmd.PersistentFlags().StringVar(&chatID, "chat", "", "Register the request as coming from this destination id")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'\n", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
