// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validators

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/registry"
)

const testFile = `
current: 2
epochs:
  - epoch: 1
    validators:
      - id: Bob
        weight: 5
      - id: Alice
        weight: 4
  - epoch: 2
    validators:
      - id: Bob
        weight: 5
      - id: Carol
        weight: 3
      - id: Alice
        weight: 4
`

func TestLoadFile(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "validators.yaml")
	require.NoError(os.WriteFile(path, []byte(testFile), 0o600))

	state, err := LoadFile(path)
	require.NoError(err)
	require.Equal([]uint64{1, 2}, state.Epochs())

	current, err := state.GetCurrentEpoch(context.Background())
	require.NoError(err)
	require.Equal(uint64(2), current)

	set, err := state.GetValidatorSet(context.Background(), 2)
	require.NoError(err)
	require.Equal([]registry.Validator[string]{
		{ID: "Bob", Weight: 5},
		{ID: "Carol", Weight: 3},
		{ID: "Alice", Weight: 4},
	}, set)

	_, err = state.GetValidatorSet(context.Background(), 3)
	require.ErrorIs(err, ErrUnknownEpoch)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(err, os.ErrNotExist)
}

func TestParseFileErrors(t *testing.T) {
	tests := []struct {
		name        string
		contents    string
		expectedErr error
	}{
		{
			name:     "invalid yaml",
			contents: "epochs: [",
		},
		{
			name: "epoch listed twice",
			contents: `
epochs:
  - epoch: 1
  - epoch: 1
`,
		},
		{
			name: "current epoch missing",
			contents: `
current: 7
epochs:
  - epoch: 1
`,
			expectedErr: ErrUnknownEpoch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFile([]byte(tt.contents))
			require.Error(t, err)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}

func TestStaticStateCopiesSets(t *testing.T) {
	require := require.New(t)

	set := []registry.Validator[string]{{ID: "a", Weight: 1}}
	state := NewStaticState(0, map[uint64][]registry.Validator[string]{0: set})
	set[0].ID = "z"

	got, err := state.GetValidatorSet(context.Background(), 0)
	require.NoError(err)
	require.Equal("a", got[0].ID)

	got[0].ID = "y"
	again, err := state.GetValidatorSet(context.Background(), 0)
	require.NoError(err)
	require.Equal("a", again[0].ID)
}
