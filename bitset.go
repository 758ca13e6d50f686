// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/luxfi/math/set"
)

// Signers is a set of validator indices, such as the signers of an aggregate
// signature or the voters of a round. The zero value and a nil *Signers are
// empty sets.
type Signers struct {
	bits set.Bits
	init bool
}

// NewSigners creates a signer set holding indices
func NewSigners(indices ...ValidatorIndex) *Signers {
	s := &Signers{bits: set.NewBits(), init: true}
	for _, idx := range indices {
		s.Add(idx)
	}
	return s
}

// SignersFromBytes parses a signer set produced by Bytes
func SignersFromBytes(b []byte) *Signers {
	return &Signers{bits: set.BitsFromBytes(b), init: true}
}

// Add adds idx to the set
func (s *Signers) Add(idx ValidatorIndex) {
	if !s.init {
		s.bits = set.NewBits()
		s.init = true
	}
	s.bits.Add(int(idx))
}

// Contains returns true if idx is in the set
func (s *Signers) Contains(idx ValidatorIndex) bool {
	if s.empty() {
		return false
	}
	return s.bits.Contains(int(idx))
}

// Len returns the number of indices in the set
func (s *Signers) Len() int {
	if s.empty() {
		return 0
	}
	return s.bits.Len()
}

// BitLen returns the highest index in the set plus one, or 0 for an empty set.
func (s *Signers) BitLen() int {
	if s.empty() {
		return 0
	}
	return s.bits.BitLen()
}

// Bytes returns the big-endian encoding of the set
func (s *Signers) Bytes() []byte {
	if s.empty() {
		return []byte{}
	}
	return s.bits.Bytes()
}

// Indices returns the indices in the set in ascending order
func (s *Signers) Indices() []ValidatorIndex {
	indices := make([]ValidatorIndex, 0, s.Len())
	for i := 0; i < s.BitLen(); i++ {
		if s.bits.Contains(i) {
			indices = append(indices, ValidatorIndex(i))
		}
	}
	return indices
}

// empty reports whether s has no backing bit set yet
func (s *Signers) empty() bool {
	return s == nil || !s.init
}

func (s *Signers) String() string {
	return fmt.Sprintf("%v", s.Indices())
}

// SignersOf returns the signer set for ids. Every ID must be a validator.
func (r *Registry[VID]) SignersOf(ids ...VID) (*Signers, error) {
	s := NewSigners()
	for _, id := range ids {
		idx, ok := r.IndexOf(id)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownValidator, id)
		}
		s.Add(idx)
	}
	return s, nil
}

// SignedWeight returns the total weight of the validators in signers. A nil
// signers has zero weight.
func (r *Registry[VID]) SignedWeight(signers *Signers) (*uint256.Int, error) {
	if signers.BitLen() > r.Len() {
		return nil, fmt.Errorf("%w: bit set length %d exceeds validator count %d",
			ErrIndexOutOfRange, signers.BitLen(), r.Len())
	}

	weight := new(uint256.Int)
	for _, idx := range signers.Indices() {
		weight.Add(weight, uint256.NewInt(r.validators[idx].Weight))
	}
	return weight, nil
}

// VerifyQuorum checks that signers hold at least quorumNum/quorumDen of the
// registry's total weight.
func (r *Registry[VID]) VerifyQuorum(signers *Signers, quorumNum, quorumDen uint64) error {
	signed, err := r.SignedWeight(signers)
	if err != nil {
		return err
	}
	return VerifyWeight(signed, &r.totalWeight, quorumNum, quorumDen)
}
