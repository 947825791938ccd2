// Package main provides the entry point for the skillsync CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "skillsync",
	Short: "Skill gap analysis engine",
	Long:  "Skillsync compares a user's reported skills against a skill taxonomy, using embedding search to map free-form career goals to taxonomy categories.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
