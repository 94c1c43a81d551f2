package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/ganymede/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration without starting the server",
	Long: `Load the configuration (file, environment overrides, and secret
references) and report any problems without starting the server.

Examples:
  ganymede validate --config /etc/ganymede/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		fmt.Println("✓ Configuration valid")
		fmt.Printf("  listen address: %s\n", cfg.Server.ListenAddress)
		fmt.Printf("  api version:    %s\n", cfg.Upstream.APIVersion)
		fmt.Printf("  tls enabled:    %v\n", cfg.TLS.Enabled)
		if cfg.Auth.SharedSecret == "" {
			fmt.Println("  warning: auth.shared_secret is not set")
		}
		if cfg.Upstream.AccessToken == "" || cfg.Upstream.ShopDomain == "" {
			fmt.Println("  warning: upstream credentials are not fully set")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
