// Copyright (C) 2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("registry", pflag.ContinueOnError)
	fs.String(ConfigFileKey, "", "")
	fs.String(LogLevelKey, defaultLogLevel, "")
	fs.String(ValidatorsFileKey, "", "")
	fs.Int64(EpochKey, CurrentEpoch, "")
	fs.Uint64(QuorumNumKey, defaultQuorumNum, "")
	fs.Uint64(QuorumDenKey, defaultQuorumDen, "")
	return fs
}

func TestNewConfigFromFlags(t *testing.T) {
	require := require.New(t)

	fs := newFlagSet()
	require.NoError(fs.Parse([]string{
		"--validators-file", "/tmp/validators.yaml",
		"--epoch", "4",
		"--log-level", "debug",
	}))

	v, err := BuildViper(fs)
	require.NoError(err)
	cfg, err := NewConfig(v)
	require.NoError(err)

	require.Equal("/tmp/validators.yaml", cfg.ValidatorsFile)
	require.Equal(int64(4), cfg.Epoch)
	require.Equal(zapcore.DebugLevel, cfg.ZapLevel())
	require.Equal(uint64(2), cfg.QuorumNum)
	require.Equal(uint64(3), cfg.QuorumDen)
	require.Equal(defaultCacheSize, cfg.CacheSize)
}

func TestNewConfigFromFile(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.json")
	require.NoError(os.WriteFile(configPath, []byte(`{
		"validators-file": "${REGISTRY_TEST_DIR}/validators.yaml",
		"quorum-num": 3,
		"quorum-den": 4
	}`), 0o600))
	t.Setenv("REGISTRY_TEST_DIR", dir)

	fs := newFlagSet()
	require.NoError(fs.Parse([]string{"--config-file", configPath, "--quorum-num", "1"}))

	v, err := BuildViper(fs)
	require.NoError(err)
	cfg, err := NewConfig(v)
	require.NoError(err)

	require.Equal(filepath.Join(dir, "validators.yaml"), cfg.ValidatorsFile)
	// Flags take precedence over the config file
	require.Equal(uint64(1), cfg.QuorumNum)
	require.Equal(uint64(4), cfg.QuorumDen)
	require.Equal(int64(CurrentEpoch), cfg.Epoch)
}

func TestNewConfigFromEnv(t *testing.T) {
	require := require.New(t)

	t.Setenv("REGISTRY_VALIDATORS_FILE", "/etc/validators.yaml")
	v, err := BuildViper(newFlagSet())
	require.NoError(err)
	cfg, err := NewConfig(v)
	require.NoError(err)
	require.Equal("/etc/validators.yaml", cfg.ValidatorsFile)
}

func TestValidate(t *testing.T) {
	valid := Config{
		LogLevel:       "info",
		ValidatorsFile: "validators.yaml",
		Epoch:          CurrentEpoch,
		QuorumNum:      2,
		QuorumDen:      3,
		CacheSize:      1,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{name: "bad log level", modify: func(c *Config) { c.LogLevel = "loud" }},
		{name: "missing validators file", modify: func(c *Config) { c.ValidatorsFile = "" }},
		{name: "negative epoch", modify: func(c *Config) { c.Epoch = -2 }},
		{name: "zero quorum denominator", modify: func(c *Config) { c.QuorumDen = 0 }},
		{name: "quorum above one", modify: func(c *Config) { c.QuorumNum = 4 }},
		{name: "zero cache size", modify: func(c *Config) { c.CacheSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.modify(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestBuildViperMissingConfigFile(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--config-file", filepath.Join(t.TempDir(), "missing.json")}))

	_, err := BuildViper(fs)
	require.Error(t, err)
}
