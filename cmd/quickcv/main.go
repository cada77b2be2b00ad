// Package main provides the entry point for the QuickCV HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quickcv",
	Short: "QuickCV HTTP API Server",
	Long:  "QuickCV is a resume builder backend: template-based rendering, PDF export, AI content generation and a blog, exposed via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
