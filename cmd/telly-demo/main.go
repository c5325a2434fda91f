// Telly-demo runs a small television style application built with telly.
//
// It shows a home menu of titles, a detail screen per title and a modal
// settings dialog, navigated with the arrow keys, enter and escape (or a
// remote control through evdev on Linux).
//
// Usage:
//
//	telly-demo run [flags]
//
// See 'telly-demo --help' for available commands.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/BrandonKowalski/telly/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "telly-demo",
	Short: "Demo application for the telly widget toolkit",
	Long: `Runs a remote control driven demo application on the terminal or in an
SDL window.

If no command is specified, the demo runs on the configured backend.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDemo,
}

func init() {
	// SDL must stay on the main thread.
	runtime.LockOSThread()

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("telly-demo %s\n", version.String())
	},
}
