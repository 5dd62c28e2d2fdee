// Package chain supplies the execution context the registry consumes but never
// derives itself: who is calling and the current logical height.
package chain

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/dyluth/primer/pkg/registry"
	"github.com/redis/go-redis/v9"
)

// Clock yields logical heights. Every call returns a height strictly greater
// than any previously returned by the same clock.
type Clock interface {
	Height(ctx context.Context) (registry.Height, error)
}

// Counter is an in-process Clock.
type Counter struct {
	last atomic.Uint64
}

// NewCounter returns a Counter whose first height is last+1.
func NewCounter(last registry.Height) *Counter {
	c := &Counter{}
	c.last.Store(uint64(last))
	return c
}

// Height advances the counter and returns the new height.
func (c *Counter) Height(ctx context.Context) (registry.Height, error) {
	return registry.Height(c.last.Add(1)), nil
}

// RedisClock is a Clock shared by every process using the same instance.
// Heights are taken with INCR on primer:{instance}:height.
type RedisClock struct {
	rdb redis.Cmdable
	key string
}

// NewRedisClock returns a clock for the given instance.
func NewRedisClock(rdb redis.Cmdable, instanceName string) (*RedisClock, error) {
	if instanceName == "" {
		return nil, fmt.Errorf("instance name cannot be empty")
	}

	return &RedisClock{
		rdb: rdb,
		key: registry.HeightKey(instanceName),
	}, nil
}

// Height advances the shared clock and returns the new height.
func (c *RedisClock) Height(ctx context.Context) (registry.Height, error) {
	n, err := c.rdb.Incr(ctx, c.key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to advance logical clock: %w", err)
	}
	return registry.Height(n), nil
}
