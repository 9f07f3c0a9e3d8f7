package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/axellelanca/newsboard/internal/config"
	"github.com/spf13/cobra"
)

// Cfg is the global variable that will contain the loaded configuration
// It will be accessible to all Cobra commands throughout the application
var Cfg *config.Config

// RootCmd is the base command for the CLI application
// All other commands (run-server, migrate, stats, cleanup-views, seed) are
// added as subcommands
var RootCmd = &cobra.Command{
	Use:   "newsboard",
	Short: "A news and content backend",
	Long: `A news backend that serves articles and page content, tracks views
with deduplication, assembles threaded comments and exposes analytics.`,
}

// Execute is the main entry point for the Cobra application
// It is called from 'main.go' and handles command execution and error handling
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// init() sets up the configuration initialization hook so configuration is
// loaded before any command executes.
func init() {
	cobra.OnInitialize(initConfig)

	// Commands like 'run-server', 'migrate' or 'stats' register themselves
	// via their own init() functions. This keeps the packages decoupled and
	// prevents import cycles.
}

// initConfig loads the application configuration
// This function is called at the beginning of every Cobra command execution
// thanks to `cobra.OnInitialize(initConfig)` set up above
func initConfig() {
	var err error

	Cfg, err = config.LoadConfig()
	if err != nil {
		log.Printf("Warning: Problem loading configuration: %v. Using default values.", err)
	}
}
