package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// newRootCommand builds the nfc-check command tree. Running the root command
// without a subcommand starts the server.
func newRootCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:           "nfc-check",
		Short:         "NFC tag redirect and daily visit counter",
		Long:          "nfc-check resolves NFC tag scans into redirects, counts at most one visit per tag per day, and records business transactions.",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return loadEnvFile(envFile, cmd.Flags().Changed("env-file"))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newConfigCommand())

	return cmd
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing default file is ignored; a
// missing file that was named explicitly is an error.
func loadEnvFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load env file %s: %w", path, err)
}
