// Package cache stores computed analytics payloads keyed by a fingerprint of
// their inputs. Entries never go stale: a changed input produces a new key.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service is the cache contract used by the analytics service.
type Service interface {
	// Get decodes the value stored at key into dest, or returns ErrCacheMiss.
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Noop never stores anything. It is used when no cache is configured.
type Noop struct{}

func (Noop) Get(context.Context, string, any) error                { return ErrCacheMiss }
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error               { return nil }
func (Noop) Close() error                                          { return nil }
