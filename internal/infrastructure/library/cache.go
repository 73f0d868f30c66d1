// Package library decorates the sample library with a short-TTL in-memory
// cache so high-volume classification does not read the sample table on
// every document. TTL zero disables caching entirely and every call reads
// through.
package library

import (
	"context"
	"sync"
	"time"

	"github.com/vkarpenko/freightgate/internal/core/domain"
	"github.com/vkarpenko/freightgate/internal/core/ports"
)

type Cache struct {
	source ports.SampleLibrary
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	samples []domain.LabeledSample
	loaded  time.Time
}

func NewCache(source ports.SampleLibrary, ttl time.Duration) *Cache {
	return &Cache{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// ActiveSamples serves from cache while fresh. A failed refresh is returned
// to the caller; stale data is never served in its place, matching the
// library port's fresh-read contract.
func (c *Cache) ActiveSamples(ctx context.Context) ([]domain.LabeledSample, error) {
	if c.ttl <= 0 {
		return c.source.ActiveSamples(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.samples != nil && c.now().Sub(c.loaded) < c.ttl {
		return c.samples, nil
	}

	samples, err := c.source.ActiveSamples(ctx)
	if err != nil {
		return nil, err
	}
	c.samples = samples
	c.loaded = c.now()
	return samples, nil
}

// Invalidate drops the cached snapshot so the next read hits the source.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.samples = nil
	c.mu.Unlock()
}
