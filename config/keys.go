// Copyright (C) 2024, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

const (
	// Command line option keys
	ConfigFileKey = "config-file"

	// Environment variable prefix. Keys map to REGISTRY_<KEY>, with hyphens
	// replaced by underscores.
	EnvPrefix = "REGISTRY"

	// Top-level configuration keys
	LogLevelKey       = "log-level"
	ValidatorsFileKey = "validators-file"
	EpochKey          = "epoch"
	QuorumNumKey      = "quorum-num"
	QuorumDenKey      = "quorum-den"
	CacheSizeKey      = "cache-size"
)
