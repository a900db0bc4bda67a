package coconet

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedHarmonizer wraps a Harmonizer with a Redis response cache.
// Harmonization calls are expensive on the service side and fully
// deterministic at temperature zero, so repeated requests for the same
// melody are served from cache.
type CachedHarmonizer struct {
	inner  Harmonizer
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewCachedHarmonizer(inner Harmonizer, addr, prefix string, ttl time.Duration) *CachedHarmonizer {
	return &CachedHarmonizer{
		inner:  inner,
		client: redis.NewClient(&redis.Options{Addr: addr}),
		prefix: prefix,
		ttl:    ttl,
	}
}

var _ Harmonizer = &CachedHarmonizer{}

func (c *CachedHarmonizer) key(req HarmonizeRequest) string {
	parts := make([]string, len(req.Melody))
	for i, p := range req.Melody {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("%s:harmonize:%d:%g:%s", c.prefix, req.NumVoices, req.Temperature, strings.Join(parts, ","))
}

func (c *CachedHarmonizer) Harmonize(ctx context.Context, req HarmonizeRequest) (*HarmonizeResponse, error) {
	key := c.key(req)
	if data, err := c.client.Get(ctx, key).Bytes(); err == nil {
		cached := &HarmonizeResponse{}
		if err := json.Unmarshal(data, cached); err == nil {
			return cached, nil
		}
		// corrupt entry, fall through and overwrite
	}

	resp, err := c.inner.Harmonize(ctx, req)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(resp); err == nil {
		// cache write failures are not worth failing the call over
		c.client.Set(ctx, key, data, c.ttl)
	}
	return resp, nil
}

func (c *CachedHarmonizer) Status(ctx context.Context) (*Status, error) {
	return c.inner.Status(ctx)
}

func (c *CachedHarmonizer) Close() error {
	return c.client.Close()
}
