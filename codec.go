// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"fmt"

	"github.com/luxfi/crypto"
	"github.com/luxfi/geth/common"
	"github.com/luxfi/geth/rlp"
)

// Bytes returns the RLP encoding of the validators in index order. VID must be
// RLP-encodable.
func (r *Registry[VID]) Bytes() ([]byte, error) {
	return rlp.EncodeToBytes(r.validators)
}

// Digest returns the Keccak-256 hash of Bytes. Two registries with the same
// digest assign identical indices and weights.
func (r *Registry[VID]) Digest() (common.Hash, error) {
	b, err := r.Bytes()
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(crypto.Keccak256Hash(b)), nil
}

// ParseFunc decodes a registry produced by Bytes. The encoded order must be the
// order compare produces.
func ParseFunc[VID comparable](b []byte, compare func(a, b VID) int) (*Registry[VID], error) {
	var validators []Validator[VID]
	if err := rlp.DecodeBytes(b, &validators); err != nil {
		return nil, fmt.Errorf("failed to decode registry: %w", err)
	}

	r, err := NewFunc(validators, compare)
	if err != nil {
		return nil, err
	}
	for i, vdr := range validators {
		if r.validators[i].ID != vdr.ID {
			return nil, fmt.Errorf("%w: %v encoded at %d, expected at %d",
				ErrNonCanonicalEncoding, vdr.ID, i, r.indexByID[vdr.ID])
		}
	}
	return r, nil
}
