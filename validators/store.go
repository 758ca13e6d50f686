// Copyright (C) 2022-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package validators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/luxfi/registry"
	"github.com/luxfi/registry/cache"
	"github.com/luxfi/registry/utils"
)

// DefaultRetryTimeout bounds how long a Store retries a failing State.
const DefaultRetryTimeout = 5 * time.Second

var errNilState = errors.New("nil validator state")

// Store hands out one immutable registry per epoch. Registries are built on
// first use and cached, so every caller asking for an epoch sees the same
// instance while it stays cached.
type Store[VID comparable] struct {
	logger       *zap.Logger
	state        State[VID]
	compare      func(a, b VID) int
	registries   *cache.LRUCache[uint64, *registry.Registry[VID]]
	metrics      *StoreMetrics
	retryTimeout time.Duration
}

// NewStore creates a Store keeping up to cacheSize epochs. A retryTimeout of
// zero uses DefaultRetryTimeout.
func NewStore[VID comparable](
	logger *zap.Logger,
	state State[VID],
	compare func(a, b VID) int,
	cacheSize int,
	registerer prometheus.Registerer,
	retryTimeout time.Duration,
) (*Store[VID], error) {
	if state == nil {
		return nil, errNilState
	}
	if compare == nil {
		return nil, registry.ErrNilCompare
	}
	registries, err := cache.NewLRUCache[uint64, *registry.Registry[VID]](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create registry cache: %w", err)
	}
	metrics, err := newStoreMetrics(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	if retryTimeout == 0 {
		retryTimeout = DefaultRetryTimeout
	}
	return &Store[VID]{
		logger:       logger,
		state:        state,
		compare:      compare,
		registries:   registries,
		metrics:      metrics,
		retryTimeout: retryTimeout,
	}, nil
}

// Registry returns the registry for epoch. Concurrent callers for an uncached
// epoch share one build, which runs under the first caller's ctx.
func (s *Store[VID]) Registry(ctx context.Context, epoch uint64) (*registry.Registry[VID], error) {
	s.metrics.lookups.Inc()
	return s.registries.Get(epoch, func(epoch uint64) (*registry.Registry[VID], error) {
		return s.build(ctx, epoch)
	}, false)
}

// Current returns the current epoch and its registry
func (s *Store[VID]) Current(ctx context.Context) (uint64, *registry.Registry[VID], error) {
	epoch, err := s.state.GetCurrentEpoch(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to get current epoch: %w", err)
	}
	r, err := s.Registry(ctx, epoch)
	if err != nil {
		return 0, nil, err
	}
	return epoch, r, nil
}

// Invalidate drops the cached registry for epoch. Holders of the old registry
// keep a valid, unchanged value. A build for epoch already in flight is not
// cached; the next lookup builds again.
func (s *Store[VID]) Invalidate(epoch uint64) {
	s.registries.Remove(epoch)
}

func (s *Store[VID]) build(ctx context.Context, epoch uint64) (*registry.Registry[VID], error) {
	var r *registry.Registry[VID]
	operation := func() error {
		validators, err := s.state.GetValidatorSet(ctx, epoch)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return backoff.Permanent(fmt.Errorf("%w: %w", ctxErr, err))
			}
			if errors.Is(err, ErrUnknownEpoch) {
				return backoff.Permanent(err)
			}
			return err
		}
		r, err = registry.NewFunc(validators, s.compare)
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}
	if err := utils.WithRetriesTimeout(ctx, s.logger, operation, s.retryTimeout); err != nil {
		s.metrics.buildFailures.Inc()
		s.logger.Error(
			"Failed to build validator registry",
			zap.Uint64("epoch", epoch),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to build registry for epoch %d: %w", epoch, err)
	}

	s.metrics.builds.Inc()
	s.metrics.validators.Set(float64(r.Len()))
	s.logger.Debug(
		"Built validator registry",
		zap.Uint64("epoch", epoch),
		zap.Int("validators", r.Len()),
		zap.String("totalWeight", r.TotalWeight().Dec()),
	)
	return r, nil
}
