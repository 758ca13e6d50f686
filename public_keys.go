// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/luxfi/crypto/bls"
)

var errNilPublicKey = errors.New("nil public key")

// PublicKeyValidator is a validator identified by its BLS public key
type PublicKeyValidator struct {
	PublicKey *bls.PublicKey
	Weight    uint64
}

// NewPublicKeyRegistry builds a registry keyed by compressed public key bytes,
// so indices follow the byte order of the keys.
func NewPublicKeyRegistry(validators []PublicKeyValidator) (*Registry[string], error) {
	keyed := make([]Validator[string], len(validators))
	for i, vdr := range validators {
		if vdr.PublicKey == nil {
			return nil, fmt.Errorf("%w at position %d", errNilPublicKey, i)
		}
		keyed[i] = Validator[string]{
			ID:     string(bls.PublicKeyToCompressedBytes(vdr.PublicKey)),
			Weight: vdr.Weight,
		}
	}
	return NewFunc(keyed, strings.Compare)
}

// IndexOfPublicKey returns the index of pk in a registry built by
// NewPublicKeyRegistry.
func IndexOfPublicKey(r *Registry[string], pk *bls.PublicKey) (ValidatorIndex, bool) {
	if pk == nil {
		return 0, false
	}
	return r.IndexOf(string(bls.PublicKeyToCompressedBytes(pk)))
}

// PublicKeyOf parses the public key at idx in a registry built by
// NewPublicKeyRegistry.
func PublicKeyOf(r *Registry[string], idx ValidatorIndex) (*bls.PublicKey, error) {
	vdr, err := r.Validator(idx)
	if err != nil {
		return nil, err
	}
	return bls.PublicKeyFromCompressedBytes([]byte(vdr.ID))
}
