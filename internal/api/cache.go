package api

import (
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry struct {
	body []byte
	at   time.Time
}

// ResponseCache keeps the most recent serialized response per
// location/date key. Entries are valid for the TTL and simply overwritten
// by the next successful fetch; the key space is bounded by the three
// locations times the dates clients actually ask about, so nothing is
// evicted.
type ResponseCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
	sf      singleflight.Group
}

func NewResponseCache(ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.at) >= c.ttl {
		return nil, false
	}
	return e.body, true
}

func (c *ResponseCache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{body: body, at: c.now()}
}

// GetOrFetch serves a fresh entry if one exists, otherwise runs fetch and
// stores its result. Concurrent misses on the same key are coalesced into
// a single fetch. A failed fetch leaves the cache untouched and is
// returned to every coalesced caller.
func (c *ResponseCache) GetOrFetch(key string, fetch func() ([]byte, error)) ([]byte, error) {
	if body, ok := c.Get(key); ok {
		return body, nil
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		// A coalesced caller may arrive just after the winner stored
		// the entry.
		if body, ok := c.Get(key); ok {
			return body, nil
		}
		body, err := fetch()
		if err != nil {
			return nil, err
		}
		c.Set(key, body)
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

// cacheKey matches the original wire contract: the location alone, or
// location_date when a date was requested.
func cacheKey(location, date string) string {
	if date == "" {
		return location
	}
	return location + "_" + date
}
