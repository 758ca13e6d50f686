// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validators

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/luxfi/registry"
)

var (
	_ State[string] = (*StaticState[string])(nil)

	ErrUnknownEpoch = errors.New("unknown epoch")
)

// State provides the validator set in effect for each epoch
type State[VID comparable] interface {
	// GetCurrentEpoch returns the epoch currently in effect
	GetCurrentEpoch(ctx context.Context) (uint64, error)

	// GetValidatorSet returns the validators of epoch in any order
	GetValidatorSet(ctx context.Context, epoch uint64) ([]registry.Validator[VID], error)
}

// StaticState is a State backed by fixed, in-memory validator sets
type StaticState[VID comparable] struct {
	current uint64
	sets    map[uint64][]registry.Validator[VID]
}

// NewStaticState creates a StaticState. The sets are copied.
func NewStaticState[VID comparable](current uint64, sets map[uint64][]registry.Validator[VID]) *StaticState[VID] {
	copied := make(map[uint64][]registry.Validator[VID], len(sets))
	for epoch, set := range sets {
		copied[epoch] = slices.Clone(set)
	}
	return &StaticState[VID]{
		current: current,
		sets:    copied,
	}
}

// GetCurrentEpoch implements the State interface
func (s *StaticState[VID]) GetCurrentEpoch(context.Context) (uint64, error) {
	return s.current, nil
}

// GetValidatorSet implements the State interface
func (s *StaticState[VID]) GetValidatorSet(_ context.Context, epoch uint64) ([]registry.Validator[VID], error) {
	set, ok := s.sets[epoch]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEpoch, epoch)
	}
	return slices.Clone(set), nil
}

// Epochs returns the known epochs in ascending order
func (s *StaticState[VID]) Epochs() []uint64 {
	return slices.Sorted(maps.Keys(s.sets))
}

// File is the on-disk layout of a validator file:
//
//	current: 2
//	epochs:
//	  - epoch: 2
//	    validators:
//	      - id: NodeID-Alice
//	        weight: 4
type File struct {
	Current uint64      `yaml:"current"`
	Epochs  []FileEpoch `yaml:"epochs"`
}

type FileEpoch struct {
	Epoch      uint64          `yaml:"epoch"`
	Validators []FileValidator `yaml:"validators"`
}

type FileValidator struct {
	ID     string `yaml:"id"`
	Weight uint64 `yaml:"weight"`
}

// LoadFile reads a validator file. Duplicate validator IDs are kept so that
// building the epoch's registry reports them.
func LoadFile(path string) (*StaticState[string], error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read validator file: %w", err)
	}
	return ParseFile(b)
}

// ParseFile parses the contents of a validator file
func ParseFile(b []byte) (*StaticState[string], error) {
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse validator file: %w", err)
	}

	sets := make(map[uint64][]registry.Validator[string], len(f.Epochs))
	for _, e := range f.Epochs {
		if _, ok := sets[e.Epoch]; ok {
			return nil, fmt.Errorf("epoch %d listed twice", e.Epoch)
		}
		set := make([]registry.Validator[string], len(e.Validators))
		for i, v := range e.Validators {
			set[i] = registry.Validator[string]{ID: v.ID, Weight: v.Weight}
		}
		sets[e.Epoch] = set
	}
	if _, ok := sets[f.Current]; !ok && len(sets) > 0 {
		return nil, fmt.Errorf("%w: current epoch %d has no validator set", ErrUnknownEpoch, f.Current)
	}
	return &StaticState[string]{current: f.Current, sets: sets}, nil
}
