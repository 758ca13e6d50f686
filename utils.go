// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"fmt"

	"github.com/holiman/uint256"
)

// VerifyWeight checks signed / total >= quorumNum / quorumDen.
func VerifyWeight(signed, total *uint256.Int, quorumNum, quorumDen uint64) error {
	if quorumDen == 0 || quorumNum > quorumDen {
		return fmt.Errorf("%w: %d / %d", ErrInvalidQuorum, quorumNum, quorumDen)
	}
	if signed.IsZero() {
		return fmt.Errorf("%w: signed weight is 0", ErrInsufficientWeight)
	}

	// Rearranged: quorumNum * total <= quorumDen * signed. Weights are sums of
	// at most 2^32 uint64 values, so neither product can overflow 256 bits.
	lhs := new(uint256.Int).Mul(total, uint256.NewInt(quorumNum))
	rhs := new(uint256.Int).Mul(signed, uint256.NewInt(quorumDen))
	if lhs.Gt(rhs) {
		return fmt.Errorf("%w: signed weight %s / total weight %s < quorum %d / %d",
			ErrInsufficientWeight, signed.Dec(), total.Dec(), quorumNum, quorumDen)
	}
	return nil
}
