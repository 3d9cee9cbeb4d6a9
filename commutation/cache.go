package commutation

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/meenmo/lifelib/mortality"
)

// Default is the process-wide cache used by the formula library when the
// caller does not supply one.
var Default = NewCache()

type key struct {
	curve *mortality.Curve
	rate  uint64
}

// Cache memoises Build per (curve, rate). Concurrent first requests for the
// same key share one pass; later reads take only a read lock.
//
// Entries live until Forget or Reset drops them. A caller that builds many
// configs should hold its own Cache and let it go with them.
type Cache struct {
	mu     sync.RWMutex
	tables map[key]*Table
	group  singleflight.Group
	builds atomic.Int64
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{tables: map[key]*Table{}}
}

// Get returns the table of curve at rate i, building it on first use.
func (c *Cache) Get(curve *mortality.Curve, i float64) (*Table, error) {
	if curve == nil || math.IsNaN(i) {
		return Build(curve, i)
	}

	// i + 0 folds -0 onto 0.
	k := key{curve: curve, rate: math.Float64bits(i + 0)}
	if t, ok := c.lookup(k); ok {
		return t, nil
	}

	v, err, _ := c.group.Do(fmt.Sprintf("%p/%x", curve, k.rate), func() (any, error) {
		if t, ok := c.lookup(k); ok {
			return t, nil
		}
		t, err := Build(curve, i)
		if err != nil {
			return nil, err
		}
		c.builds.Add(1)

		c.mu.Lock()
		c.tables[k] = t
		c.mu.Unlock()
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}

func (c *Cache) lookup(k key) (*Table, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[k]
	return t, ok
}

// Len is the number of cached tables.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}

// Builds counts the backward passes the cache has run.
func (c *Cache) Builds() int64 { return c.builds.Load() }

// Forget drops every table built on curve and reports how many went.
func (c *Cache) Forget(curve *mortality.Curve) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for k := range c.tables {
		if k.curve == curve {
			delete(c.tables, k)
			n++
		}
	}
	return n
}

// Reset drops every cached table. Builds keeps counting.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.tables)
}
