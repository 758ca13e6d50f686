// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"cmp"
	"fmt"
	"iter"
	"maps"
	"math"
	"slices"

	"github.com/holiman/uint256"
)

// Validator is a validator ID paired with its voting weight
type Validator[VID any] struct {
	ID     VID
	Weight uint64
}

// Registry assigns every validator a dense index in [0, Len()) following the
// ascending order of validator IDs. A Registry is immutable once built and is
// safe for concurrent reads.
type Registry[VID comparable] struct {
	validators  []Validator[VID]
	indexByID   map[VID]ValidatorIndex
	totalWeight uint256.Int
}

// New builds a registry for IDs with a natural ordering.
func New[VID cmp.Ordered](validators []Validator[VID]) (*Registry[VID], error) {
	return NewFunc(validators, cmp.Compare[VID])
}

// FromMap builds a registry from a weight map.
func FromMap[VID comparable](weights map[VID]uint64, compare func(a, b VID) int) (*Registry[VID], error) {
	validators := make([]Validator[VID], 0, len(weights))
	for id, weight := range maps.All(weights) {
		validators = append(validators, Validator[VID]{ID: id, Weight: weight})
	}
	return NewFunc(validators, compare)
}

// NewFunc builds a registry ordering IDs with compare, which must define a
// total order consistent with ==. The input is copied and may be in any order.
//
// Two IDs that are equal, or that compare as equal, are rejected with
// ErrDuplicateValidator.
func NewFunc[VID comparable](validators []Validator[VID], compare func(a, b VID) int) (*Registry[VID], error) {
	if compare == nil {
		return nil, ErrNilCompare
	}
	if uint64(len(validators)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyValidators, len(validators))
	}

	sorted := slices.Clone(validators)
	slices.SortFunc(sorted, func(a, b Validator[VID]) int {
		return compare(a.ID, b.ID)
	})

	r := &Registry[VID]{
		validators: sorted,
		indexByID:  make(map[VID]ValidatorIndex, len(sorted)),
	}
	for i, vdr := range sorted {
		if i > 0 && compare(sorted[i-1].ID, vdr.ID) == 0 {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateValidator, vdr.ID)
		}
		if _, ok := r.indexByID[vdr.ID]; ok {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateValidator, vdr.ID)
		}
		r.indexByID[vdr.ID] = ValidatorIndex(i)
		r.totalWeight.Add(&r.totalWeight, uint256.NewInt(vdr.Weight))
	}
	return r, nil
}

// Len returns the number of validators
func (r *Registry[VID]) Len() int {
	return len(r.validators)
}

// IndexOf returns the index of id, or false if id is not a validator.
func (r *Registry[VID]) IndexOf(id VID) (ValidatorIndex, bool) {
	idx, ok := r.indexByID[id]
	return idx, ok
}

// Contains reports whether id is a validator
func (r *Registry[VID]) Contains(id VID) bool {
	_, ok := r.indexByID[id]
	return ok
}

// IDOf returns the ID at idx. Indices are minted by this registry, so an index
// outside [0, Len()) is a programming error and panics.
func (r *Registry[VID]) IDOf(idx ValidatorIndex) VID {
	return r.mustGet(idx).ID
}

// WeightOf returns the weight of the validator at idx. It panics under the same
// conditions as IDOf.
func (r *Registry[VID]) WeightOf(idx ValidatorIndex) uint64 {
	return r.mustGet(idx).Weight
}

// Validator returns the validator at idx. Use it instead of IDOf when the index
// comes from untrusted input.
func (r *Registry[VID]) Validator(idx ValidatorIndex) (Validator[VID], error) {
	if int(idx) >= len(r.validators) {
		return Validator[VID]{}, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, idx, len(r.validators))
	}
	return r.validators[idx], nil
}

func (r *Registry[VID]) mustGet(idx ValidatorIndex) Validator[VID] {
	if int(idx) >= len(r.validators) {
		panic(fmt.Sprintf("validator index %d out of range [0, %d)", idx, len(r.validators)))
	}
	return r.validators[idx]
}

// TotalWeight returns the sum of all validator weights
func (r *Registry[VID]) TotalWeight() *uint256.Int {
	return new(uint256.Int).Set(&r.totalWeight)
}

// IDs returns the validator IDs in index order
func (r *Registry[VID]) IDs() []VID {
	ids := make([]VID, len(r.validators))
	for i, vdr := range r.validators {
		ids[i] = vdr.ID
	}
	return ids
}

// All iterates over the validators in index order
func (r *Registry[VID]) All() iter.Seq2[ValidatorIndex, Validator[VID]] {
	return func(yield func(ValidatorIndex, Validator[VID]) bool) {
		for i, vdr := range r.validators {
			if !yield(ValidatorIndex(i), vdr) {
				return
			}
		}
	}
}
