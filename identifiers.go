// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"bytes"

	"github.com/luxfi/geth/common"
	"github.com/luxfi/ids"
)

// CompareNodeIDs orders node IDs by their bytes
func CompareNodeIDs(a, b ids.NodeID) int {
	return bytes.Compare(a[:], b[:])
}

// NewNodeIDRegistry builds a registry keyed by node ID
func NewNodeIDRegistry(weights map[ids.NodeID]uint64) (*Registry[ids.NodeID], error) {
	return FromMap(weights, CompareNodeIDs)
}

// CompareAddresses orders addresses by their bytes
func CompareAddresses(a, b common.Address) int {
	return bytes.Compare(a[:], b[:])
}

// NewAddressRegistry builds a registry keyed by account address
func NewAddressRegistry(weights map[common.Address]uint64) (*Registry[common.Address], error) {
	return FromMap(weights, CompareAddresses)
}
