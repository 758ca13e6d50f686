// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// WithRetriesTimeout uses an exponential backoff to run the operation until it
// succeeds, the timeout limit has been reached or ctx is done. Errors wrapped
// with backoff.Permanent stop the retries immediately. When ctx ends the wait,
// ctx.Err() is returned.
func WithRetriesTimeout(
	ctx context.Context,
	logger *zap.Logger,
	operation backoff.Operation,
	timeout time.Duration,
) error {
	expBackOff := backoff.NewExponentialBackOff(
		backoff.WithMaxElapsedTime(timeout),
	)
	notify := func(err error, duration time.Duration) {
		logger.Warn(
			"operation failed, retrying...",
			zap.Duration("retryIn", duration),
			zap.Error(err),
		)
	}
	return backoff.RetryNotify(operation, backoff.WithContext(expBackOff, ctx), notify)
}
