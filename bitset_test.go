// Copyright (C) 2019-2025, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestSigners(t *testing.T) {
	require := require.New(t)

	s := NewSigners(3, 0)
	s.Add(9)
	require.True(s.Contains(0))
	require.True(s.Contains(3))
	require.True(s.Contains(9))
	require.False(s.Contains(1))
	require.Equal(3, s.Len())
	require.Equal(10, s.BitLen())
	require.Equal([]ValidatorIndex{0, 3, 9}, s.Indices())

	parsed := SignersFromBytes(s.Bytes())
	require.Equal(s.Indices(), parsed.Indices())

	empty := NewSigners()
	require.Zero(empty.Len())
	require.Zero(empty.BitLen())
	require.Empty(empty.Indices())
}

func TestZeroSigners(t *testing.T) {
	require := require.New(t)

	var nilSigners *Signers
	require.False(nilSigners.Contains(0))
	require.Zero(nilSigners.Len())
	require.Zero(nilSigners.BitLen())
	require.Empty(nilSigners.Bytes())
	require.Empty(nilSigners.Indices())

	var s Signers
	require.False(s.Contains(0))
	require.Zero(s.Len())
	require.Empty(s.Bytes())

	s.Add(2)
	require.True(s.Contains(2))
	require.Equal(3, s.BitLen())
	require.Equal([]ValidatorIndex{2}, s.Indices())
}

func newTestRegistry(t *testing.T) *Registry[string] {
	r, err := New([]Validator[string]{
		{ID: "Bob", Weight: 5},
		{ID: "Carol", Weight: 3},
		{ID: "Alice", Weight: 4},
	})
	require.NoError(t, err)
	return r
}

func TestSignedWeight(t *testing.T) {
	require := require.New(t)
	r := newTestRegistry(t)

	signers, err := r.SignersOf("Carol", "Alice")
	require.NoError(err)
	require.Equal([]ValidatorIndex{0, 2}, signers.Indices())

	weight, err := r.SignedWeight(signers)
	require.NoError(err)
	require.Equal(uint256.NewInt(7), weight)

	_, err = r.SignersOf("Alice", "Mallory")
	require.ErrorIs(err, ErrUnknownValidator)

	_, err = r.SignedWeight(NewSigners(3))
	require.ErrorIs(err, ErrIndexOutOfRange)

	for _, signers := range []*Signers{nil, {}} {
		weight, err := r.SignedWeight(signers)
		require.NoError(err)
		require.True(weight.IsZero())
	}
	require.ErrorIs(r.VerifyQuorum(nil, 2, 3), ErrInsufficientWeight)
}

func TestVerifyQuorum(t *testing.T) {
	r := newTestRegistry(t)

	tests := []struct {
		name        string
		signers     []string
		expectedErr error
	}{
		{
			name:    "all signers",
			signers: []string{"Alice", "Bob", "Carol"},
		},
		{
			name:    "exactly two thirds",
			signers: []string{"Alice", "Bob"},
		},
		{
			name:        "below two thirds",
			signers:     []string{"Alice", "Carol"},
			expectedErr: ErrInsufficientWeight,
		},
		{
			name:        "no signers",
			expectedErr: ErrInsufficientWeight,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signers, err := r.SignersOf(tt.signers...)
			require.NoError(t, err)
			require.ErrorIs(t, r.VerifyQuorum(signers, 2, 3), tt.expectedErr)
		})
	}
}
