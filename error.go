// Copyright (C) 2019-2025, Lux Industries Inc All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateValidator   = errors.New("duplicate validator")
	ErrTooManyValidators    = errors.New("too many validators")
	ErrNilCompare           = errors.New("nil compare function")
	ErrIndexOutOfRange      = errors.New("validator index out of range")
	ErrUnknownValidator     = errors.New("unknown validator")
	ErrInsufficientWeight   = errors.New("insufficient weight")
	ErrInvalidQuorum        = errors.New("invalid quorum")
	ErrNonCanonicalEncoding = errors.New("non-canonical registry encoding")
)

// Error codes reported by tools built on the registry.
const (
	CodeInvalidInput int32 = iota + 1
	CodeNotFound
	CodeQuorumNotReached
)

// Error is a registry error carrying a numeric code
type Error struct {
	Code    int32
	Message string
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("registry error %d: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("registry error %d: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}
