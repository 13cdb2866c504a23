// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package inifile

import (
	"context"
	"os"
	"time"

	"zombiezen.com/go/log"
)

// A backoffStrategy can be called repeatedly to obtain the durations to wait
// between attempts. A negative duration means to stop trying.
type backoffStrategy interface {
	Duration() time.Duration
}

// exponentialBackoff doubles the delay after each attempt, up to max.
type exponentialBackoff struct {
	delay    time.Duration
	max      time.Duration
	attempts int // retries left
}

func (b *exponentialBackoff) Duration() time.Duration {
	if b.attempts <= 0 {
		return -1
	}
	b.attempts--
	d := b.delay
	b.delay *= 2
	if b.delay > b.max {
		b.delay = b.max
	}
	return d
}

// retry calls f until it returns a nil error, the strategy gives up or ctx is
// Done, in which case it returns the last error from f. f is called at least
// once.
//
// The operation should be a verb phrase like "replacing foo.ini" for logging.
func retry(ctx context.Context, operation string, strategy backoffStrategy, f func() error) error {
	var t *time.Timer
	for {
		err := f()
		if err == nil {
			return nil
		}
		d := strategy.Duration()
		if d < 0 {
			return err
		}
		log.Warnf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
		if t == nil {
			t = time.NewTimer(d)
			defer t.Stop()
		} else {
			t.Reset(d)
		}
		select {
		case <-t.C:
		case <-ctx.Done():
			return err
		}
	}
}

// replaceFile renames src to dst. Another process holding dst open (an
// editor or a virus scanner on Windows) makes the rename fail for a moment,
// so failures are retried a few times.
func replaceFile(ctx context.Context, src, dst string) error {
	b := &exponentialBackoff{
		delay:    10 * time.Millisecond,
		max:      200 * time.Millisecond,
		attempts: 5,
	}
	return retry(ctx, "replacing "+dst, b, func() error {
		return os.Rename(src, dst)
	})
}
