package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vango-dev/vnp/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦  ╦╔╗╔╔═╗
  ╚╗╔╝║║║╠═╝
   ╚╝ ╝╚╝╩
`

func main() {
	if err := rootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vnp",
		Short: "Folder-routed page shell with cascading lifecycle hooks",
		Long: `vnp builds a single-page shell from a folder of pages.

Every folder holding a file named after itself is a page; its route is the
folder path, lower-cased, with Home mapped to "/". Navigation runs through
per-route hooks that can cascade from a parent route to its descendants.

  • Route table from Go source, a manifest, or an S3 bundle
  • Generated, typed page manifest
  • Cascading before/after/leave/already hooks
  • Debounced render transitions over WebSocket`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		routesCmd(),
		genCmd(),
		demoCmd(),
		versionCmd(),
	)
	return cmd
}

// printBanner prints the vnp ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
