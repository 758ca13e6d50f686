// Copyright (C) 2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"
)

const (
	defaultLogLevel  = "info"
	defaultQuorumNum = 2
	defaultQuorumDen = 3
	defaultCacheSize = 16

	// CurrentEpoch selects the epoch the validator file marks as current.
	CurrentEpoch = -1
)

var errMissingValidatorsFile = errors.New("validators file not set")

// Config is the registry tool configuration
type Config struct {
	LogLevel       string `mapstructure:"log-level" json:"log-level"`
	ValidatorsFile string `mapstructure:"validators-file" json:"validators-file"`
	Epoch          int64  `mapstructure:"epoch" json:"epoch"`
	QuorumNum      uint64 `mapstructure:"quorum-num" json:"quorum-num"`
	QuorumDen      uint64 `mapstructure:"quorum-den" json:"quorum-den"`
	CacheSize      int    `mapstructure:"cache-size" json:"cache-size"`
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.ValidatorsFile == "" {
		return errMissingValidatorsFile
	}
	if c.Epoch < CurrentEpoch {
		return fmt.Errorf("invalid epoch %d", c.Epoch)
	}
	if c.QuorumDen == 0 || c.QuorumNum > c.QuorumDen {
		return fmt.Errorf("invalid quorum %d/%d", c.QuorumNum, c.QuorumDen)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("invalid cache size %d", c.CacheSize)
	}
	return nil
}

// ZapLevel returns the parsed log level. Validate must have passed.
func (c *Config) ZapLevel() zapcore.Level {
	level, _ := zapcore.ParseLevel(c.LogLevel)
	return level
}
