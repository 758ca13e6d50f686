// Copyright (C) 2025, Lux Industries, Inc.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/luxfi/registry"
	"github.com/luxfi/registry/config"
	"github.com/luxfi/registry/validators"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var regErr *registry.Error
	if errors.As(err, &regErr) {
		return int(regErr.Code)
	}
	return 1
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "registry",
		Short: "Validator registry - canonical validator indices",
		Long: `Builds the canonical validator registry for an epoch from a validator file.

Every node building the registry from the same validator set assigns the same
index to every validator. Use the digest command to compare registries across nodes.`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.ConfigFileKey, "", "Config file (json, yaml or toml)")
	flags.String(config.LogLevelKey, "info", "Log level (debug, info, warn, error)")
	flags.StringP(config.ValidatorsFileKey, "f", "", "Validator file (yaml)")
	flags.Int64P(config.EpochKey, "e", config.CurrentEpoch, "Epoch to load, -1 for the current epoch")
	flags.Uint64(config.QuorumNumKey, 2, "Quorum numerator")
	flags.Uint64(config.QuorumDenKey, 3, "Quorum denominator")

	rootCmd.AddCommand(
		newShowCmd(),
		newIndexOfCmd(),
		newIDOfCmd(),
		newDigestCmd(),
		newQuorumCmd(),
	)
	return rootCmd
}

type loaded struct {
	cfg      config.Config
	logger   *zap.Logger
	epoch    uint64
	registry *registry.Registry[string]
}

func load(cmd *cobra.Command) (*loaded, error) {
	v, err := config.BuildViper(cmd.Flags())
	if err != nil {
		return nil, err
	}
	cfg, err := config.NewConfig(v)
	if err != nil {
		return nil, &registry.Error{Code: registry.CodeInvalidInput, Message: "invalid configuration", Err: err}
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, err
	}

	state, err := validators.LoadFile(cfg.ValidatorsFile)
	if err != nil {
		return nil, &registry.Error{Code: registry.CodeInvalidInput, Message: "invalid validator file", Err: err}
	}
	store, err := validators.NewStore(logger, state, strings.Compare, cfg.CacheSize, prometheus.NewRegistry(), 0)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	l := &loaded{cfg: cfg, logger: logger}
	if cfg.Epoch == config.CurrentEpoch {
		l.epoch, l.registry, err = store.Current(ctx)
	} else {
		l.epoch = uint64(cfg.Epoch)
		l.registry, err = store.Registry(ctx, l.epoch)
	}
	if err != nil {
		return nil, &registry.Error{Code: registry.CodeInvalidInput, Message: "failed to build registry", Err: err}
	}

	logger.Debug(
		"Loaded validator registry",
		zap.String("file", cfg.ValidatorsFile),
		zap.Uint64("epoch", l.epoch),
		zap.Int("validators", l.registry.Len()),
	)
	return l, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	return zapCfg.Build()
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the validators in index order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := load(cmd)
			if err != nil {
				return err
			}
			digest, err := l.registry.Digest()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Epoch: %d\n", l.epoch)
			fmt.Fprintf(out, "%-6s %-24s %s\n", "INDEX", "ID", "WEIGHT")
			for idx, vdr := range l.registry.All() {
				fmt.Fprintf(out, "%-6s %-24s %d\n", idx, vdr.ID, vdr.Weight)
			}
			fmt.Fprintf(out, "Total weight: %s\n", l.registry.TotalWeight().Dec())
			fmt.Fprintf(out, "Digest: %s\n", digest.Hex())
			return nil
		},
	}
}

func newIndexOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index-of ID",
		Short: "Print the index of a validator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := load(cmd)
			if err != nil {
				return err
			}
			idx, ok := l.registry.IndexOf(args[0])
			if !ok {
				return &registry.Error{
					Code:    registry.CodeNotFound,
					Message: fmt.Sprintf("%q is not a validator in epoch %d", args[0], l.epoch),
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), idx)
			return nil
		},
	}
}

func newIDOfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "id-of INDEX",
		Short: "Print the validator at an index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return &registry.Error{Code: registry.CodeInvalidInput, Message: "invalid index", Err: err}
			}
			l, err := load(cmd)
			if err != nil {
				return err
			}
			vdr, err := l.registry.Validator(registry.ValidatorIndex(n))
			if err != nil {
				return &registry.Error{Code: registry.CodeInvalidInput, Message: "invalid index", Err: err}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", vdr.ID, vdr.Weight)
			return nil
		},
	}
}

func newDigestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "digest",
		Short: "Print the registry digest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, err := load(cmd)
			if err != nil {
				return err
			}
			digest, err := l.registry.Digest()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), digest.Hex())
			return nil
		},
	}
}

func newQuorumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quorum ID...",
		Short: "Check whether a set of validators reaches quorum",
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := load(cmd)
			if err != nil {
				return err
			}
			signers, err := l.registry.SignersOf(args...)
			if err != nil {
				return &registry.Error{Code: registry.CodeNotFound, Message: "unknown signer", Err: err}
			}
			signed, err := l.registry.SignedWeight(signers)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signers: %s\n", signers)
			fmt.Fprintf(out, "Signed weight: %s / %s\n", signed.Dec(), l.registry.TotalWeight().Dec())

			err = l.registry.VerifyQuorum(signers, l.cfg.QuorumNum, l.cfg.QuorumDen)
			if errors.Is(err, registry.ErrInsufficientWeight) {
				return &registry.Error{Code: registry.CodeQuorumNotReached, Message: "quorum not reached", Err: err}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Quorum reached (%d/%d)\n", l.cfg.QuorumNum, l.cfg.QuorumDen)
			return nil
		},
	}
}
