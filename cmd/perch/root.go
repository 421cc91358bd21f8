package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "perch",
	Short: "Perch - HTTP bridge for MCP tool servers",
	Long: `Perch is a small HTTP bridge that sits in front of a Model Context
Protocol server and exposes its tools over plain GET endpoints.

Each inbound request becomes exactly one JSON-RPC 2.0 call upstream:
  - GET /tools lists the upstream tool catalog
  - GET /search runs the post search tool
  - GET /health reports liveness

Responses carry strong ETags so clients can cache them, every request is
rate limited per client, and the upstream bearer token is resolved through
a secrets chain on every call.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "perch.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
