package annotation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/genomic-vcf-service/internal/domain"
)

// CachedSource decorates an annotation source with a two-tier cache: an
// in-memory LRU for hot identifiers and an optional Redis tier shared
// across instances. Only successful lookups are cached; a Redis outage
// degrades to the inner source, never to a request failure.
type CachedSource struct {
	inner  domain.AnnotationSource
	logger *logrus.Logger

	memory *lru.Cache[string, cachedEntry]

	redisClient *redis.Client
	redisTTL    time.Duration
}

type cachedEntry struct {
	Status    domain.ClinVarStatus `json:"status"`
	Frequency float64              `json:"frequency"`
}

// NewCachedSource wraps inner with an LRU of the given size. Redis is
// attached separately via WithRedis.
func NewCachedSource(inner domain.AnnotationSource, lruSize int, logger *logrus.Logger) (*CachedSource, error) {
	if lruSize <= 0 {
		lruSize = 4096
	}
	memory, err := lru.New[string, cachedEntry](lruSize)
	if err != nil {
		return nil, fmt.Errorf("creating annotation LRU: %w", err)
	}

	return &CachedSource{
		inner:  inner,
		logger: logger,
		memory: memory,
	}, nil
}

// WithRedis attaches a Redis tier. The URL follows the go-redis scheme
// (redis://host:port/db). Returns the source for chaining.
func (c *CachedSource) WithRedis(redisURL string, ttl time.Duration, dialTimeout time.Duration) (*CachedSource, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis URL: %w", err)
	}
	opts.DialTimeout = dialTimeout

	c.redisClient = redis.NewClient(opts)
	c.redisTTL = ttl
	return c, nil
}

// Lookup consults memory, then Redis, then the inner source.
func (c *CachedSource) Lookup(ctx context.Context, variantID string) (domain.ClinVarStatus, float64, error) {
	if entry, ok := c.memory.Get(variantID); ok {
		return entry.Status, entry.Frequency, nil
	}

	if entry, ok := c.redisGet(ctx, variantID); ok {
		c.memory.Add(variantID, entry)
		return entry.Status, entry.Frequency, nil
	}

	status, frequency, err := c.inner.Lookup(ctx, variantID)
	if err != nil {
		return "", 0, err
	}

	entry := cachedEntry{Status: status, Frequency: frequency}
	c.memory.Add(variantID, entry)
	c.redisSet(ctx, variantID, entry)

	return status, frequency, nil
}

// IsCancerRiskGene delegates to the inner source. Category membership is
// cheap and local; only Lookup is worth caching.
func (c *CachedSource) IsCancerRiskGene(gene string) bool {
	return c.inner.IsCancerRiskGene(gene)
}

// IsPharmacogenomicGene delegates to the inner source.
func (c *CachedSource) IsPharmacogenomicGene(gene string) bool {
	return c.inner.IsPharmacogenomicGene(gene)
}

func (c *CachedSource) redisKey(variantID string) string {
	return "annotation:" + variantID
}

func (c *CachedSource) redisGet(ctx context.Context, variantID string) (cachedEntry, bool) {
	if c.redisClient == nil {
		return cachedEntry{}, false
	}

	raw, err := c.redisClient.Get(ctx, c.redisKey(variantID)).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.WithError(err).Debug("Redis annotation get failed")
		}
		return cachedEntry{}, false
	}

	var entry cachedEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.logger.WithError(err).Warn("Discarding corrupt Redis annotation entry")
		return cachedEntry{}, false
	}
	return entry, true
}

func (c *CachedSource) redisSet(ctx context.Context, variantID string, entry cachedEntry) {
	if c.redisClient == nil {
		return
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.redisClient.Set(ctx, c.redisKey(variantID), raw, c.redisTTL).Err(); err != nil {
		c.logger.WithError(err).Debug("Redis annotation set failed")
	}
}

// Purge drops all in-memory cached entries.
func (c *CachedSource) Purge() {
	c.memory.Purge()
}

// Close releases the Redis client when attached.
func (c *CachedSource) Close() error {
	if c.redisClient != nil {
		return c.redisClient.Close()
	}
	return nil
}
