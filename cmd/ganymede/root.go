package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ganymede",
	Short: "Mercator Ganymede - customer insights proxy",
	Long: `Mercator Ganymede is a server-side proxy that computes customer order
metrics for browser-side analytics sandboxes.

It authenticates callers with a shared secret, fetches the customer's
order history from a storefront admin API, and returns order count,
lifetime value, and a customer status classification. No customer data
is persisted; the service is stateless between requests.`,
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
	// An empty config path means fully environment-driven configuration.
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
}
