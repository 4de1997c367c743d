// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

// Package cli implements the lambdasecret command.
package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/xmidt-org/lambdasecret/internal/logging"
	"go.uber.org/zap"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	envFile   string
	logLevel  string
	logFormat string
}

// NewRootCommand creates the lambdasecret command tree.
func NewRootCommand() *cobra.Command {
	var rf rootFlags
	root := &cobra.Command{
		Use:   "lambdasecret",
		Short: "Fetch secrets through the AWS Lambda Secrets Manager extension",
		Long: `lambdasecret fetches a secret from the AWS Lambda Secrets Manager extension,
retrying with full jitter backoff while the extension starts up or is briefly
unavailable.  Outside of Lambda, --direct fetches from the Secrets Manager API.

Exit Codes:
  0   - Success
  1   - General error
  2   - CLI usage error (invalid arguments or flags)
  3   - Panic or unexpected system error
  10  - Invalid configuration
  11  - The secret source was unavailable
  12  - The request was rejected (e.g. not found, access denied)
  13  - The response or secret could not be interpreted
  130 - Interrupted`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&rf.envFile, "env-file", "", "a .env file to load before reading the environment (default: .env, if present)")
	pf.StringVar(&rf.logLevel, "log-level", "warn", "the minimum log level: debug, info, warn, or error")
	pf.StringVar(&rf.logFormat, "log-format", logging.FormatJSON, "the log format: json or console")

	root.AddCommand(newGetCommand(&rf))
	return root
}

// Execute runs the command tree with the given arguments.
func Execute(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// loadEnv loads a .env file into the process environment.  An explicitly
// named file must exist, while the default .env is optional.
func (rf *rootFlags) loadEnv() error {
	if len(rf.envFile) > 0 {
		if err := godotenv.Load(rf.envFile); err != nil {
			return usageError{err: err}
		}

		return nil
	}

	_ = godotenv.Load()
	return nil
}

func (rf *rootFlags) logger(cmd *cobra.Command) (*zap.Logger, error) {
	return logging.New(
		logging.Config{
			Level:  rf.logLevel,
			Format: rf.logFormat,
		},
		cmd.ErrOrStderr(),
	)
}
