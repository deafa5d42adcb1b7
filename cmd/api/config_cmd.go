package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xxayder/NFC-Check/internal/config"
)

func newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Validate the environment and print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			printConfig(cmd, cfg.Redacted())
			return nil
		},
	})

	return cmd
}

func printConfig(cmd *cobra.Command, cfg config.Config) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "PORT=%s\n", cfg.Port)
	fmt.Fprintf(out, "DATABASE_URL=%s\n", cfg.DatabaseURL)
	fmt.Fprintf(out, "ADMIN_KEY=%s\n", cfg.AdminKey)
	fmt.Fprintf(out, "REDIRECT_TEMPLATE=%s\n", cfg.RedirectTemplate)
	fmt.Fprintf(out, "LOG_LEVEL=%s\n", cfg.LogLevel)
	fmt.Fprintf(out, "LOG_FILE=%s\n", cfg.LogFile)
	fmt.Fprintf(out, "CORS_ORIGINS=%s\n", strings.Join(cfg.CORSOrigins, ","))
	fmt.Fprintf(out, "STORE_TIMEOUT=%s\n", cfg.StoreTimeout)
	fmt.Fprintf(out, "DB_MAX_CONNS=%d\n", cfg.DBMaxConns)
	fmt.Fprintf(out, "ADMIN_RATE_LIMIT=%g\n", cfg.AdminRateLimit)
	fmt.Fprintf(out, "ADMIN_RATE_BURST=%d\n", cfg.AdminRateBurst)
	fmt.Fprintf(out, "MAX_BODY_BYTES=%d\n", cfg.MaxBodyBytes)
	fmt.Fprintf(out, "TRUST_PROXY=%t\n", cfg.TrustProxy)
}
