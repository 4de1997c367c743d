// SPDX-FileCopyrightText: 2024 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"
	"github.com/xmidt-org/lambdasecret/direct"
	"github.com/xmidt-org/lambdasecret/extension"
	"github.com/xmidt-org/lambdasecret/payload"
	"github.com/xmidt-org/lambdasecret/retry"
	"go.uber.org/zap"
)

type getFlags struct {
	extension.Options

	host   string
	port   int
	direct bool
	region string
	field  string
}

func newGetCommand(rf *rootFlags) *cobra.Command {
	var gf getFlags
	cmd := &cobra.Command{
		Use:   "get <secret>",
		Short: "Fetch a secret and print it to stdout",
		Long: `Fetch a secret and print it to stdout.

The extension is reached on localhost, at the port named by
PARAMETERS_SECRETS_EXTENSION_HTTP_PORT or 2773.  The session token is read
from AWS_SESSION_TOKEN.`,
		Example: `  lambdasecret get db-password
  lambdasecret get db-credentials --field password --retries 5
  lambdasecret get db-credentials --direct --region us-east-1`,
		Args: requireSecretName,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, rf, &gf, args[0])
		},
	}

	f := cmd.Flags()
	f.DurationVar(&gf.Timeout, "timeout", retry.DefaultTimeout, "the deadline for each attempt")
	f.IntVar(&gf.Retries, "retries", retry.DefaultAttempts, "the maximum number of attempts, including the first")
	f.DurationVar(&gf.BaseBackoff, "base-backoff", retry.DefaultBaseBackoff, "the base of the full jitter backoff between attempts")
	f.StringVar(&gf.VersionID, "version-id", "", "fetch a specific version of the secret")
	f.StringVar(&gf.VersionStage, "version-stage", "", "fetch the version with this staging label, e.g. AWSPREVIOUS")
	f.StringVar(&gf.host, "host", extension.DefaultHost, "the extension's host")
	f.IntVar(&gf.port, "port", 0, "the extension's port (default: $"+extension.PortEnv+" or 2773)")
	f.BoolVar(&gf.direct, "direct", false, "fetch from the Secrets Manager API instead of the extension")
	f.StringVar(&gf.region, "region", "", "the AWS region used with --direct (default: the SDK's region resolution)")
	f.StringVar(&gf.field, "field", "", "print a single field of a JSON secret, using a gjson path such as database.password")

	return cmd
}

// requireSecretName validates that exactly one secret name argument is provided.
func requireSecretName(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) < 1:
		return usageError{err: fmt.Errorf(`missing required argument: <secret>

Usage: %s

Example:
  %s db-password`, cmd.UseLine(), cmd.CommandPath())}

	case len(args) > 1:
		return usageError{err: fmt.Errorf("accepts 1 arg(s), received %d", len(args))}

	case len(args[0]) == 0:
		return usageError{err: fmt.Errorf("the secret name cannot be empty")}

	default:
		return nil
	}
}

func runGet(cmd *cobra.Command, rf *rootFlags, gf *getFlags, name string) error {
	if err := rf.loadEnv(); err != nil {
		return err
	}

	logger, err := rf.logger(cmd)
	if err != nil {
		return err
	}

	defer logger.Sync() //nolint:errcheck

	var r payload.Resolved
	if gf.direct {
		r, err = fetchDirect(cmd.Context(), logger, gf, name)
	} else {
		r, err = fetchExtension(cmd.Context(), cmd, logger, gf, name)
	}

	if err != nil {
		return err
	}

	return printSecret(cmd, r, gf.field)
}

func fetchExtension(ctx context.Context, cmd *cobra.Command, logger *zap.Logger, gf *getFlags, name string) (payload.Resolved, error) {
	cfg, err := extension.ConfigFromEnv()
	if err != nil {
		return payload.Resolved{}, err
	}

	cfg.Host = gf.host
	if cmd.Flags().Changed("port") {
		cfg.Port = gf.port
	}

	cfg.Logger = logger
	c, err := extension.New(cfg)
	if err != nil {
		return payload.Resolved{}, err
	}

	return c.Fetch(ctx, name, gf.Options)
}

func fetchDirect(ctx context.Context, logger *zap.Logger, gf *getFlags, name string) (payload.Resolved, error) {
	var optFns []func(*config.LoadOptions) error
	if len(gf.region) > 0 {
		optFns = append(optFns, config.WithRegion(gf.region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return payload.Resolved{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return direct.NewFromConfig(awsCfg, logger).Fetch(
		ctx,
		name,
		direct.Options{
			VersionID:    gf.VersionID,
			VersionStage: gf.VersionStage,
		},
	)
}

func printSecret(cmd *cobra.Command, r payload.Resolved, field string) error {
	out := cmd.OutOrStdout()
	if len(field) == 0 {
		_, err := fmt.Fprintln(out, r.Raw())
		return err
	}

	v, ok := r.Get(field)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoField, field)
	}

	_, err := fmt.Fprintln(out, v)
	return err
}
