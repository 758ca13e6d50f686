// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import "strconv"

// ValidatorIndex is the position of a validator in a registry, ordered by ID.
// It is only meaningful for the registry that produced it.
type ValidatorIndex uint32

func (i ValidatorIndex) String() string {
	return strconv.FormatUint(uint64(i), 10)
}
