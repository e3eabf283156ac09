// Package main is the entry point for the roll-api server and CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "roll-api",
	Short: "Dice expression service",
	Long:  `roll-api evaluates dice notation expressions and serves them over a JSON HTTP API, with per-entity roll history.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(replCmd)
}
