// Package entitycache keeps remote entities and list pages in a normalized
// client-side cache. Entities are stored once per (kind, id) and merged on
// update, so every cached list that references an entity observes new field
// values without a re-fetch. List pages are cached per query-parameter
// snapshot and invalidated wholesale when a mutation touches their kind.
package entitycache

import (
	"container/list"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/noizee/storefront/internal/listquery"
	"github.com/noizee/storefront/internal/metrics"
)

// Key identifies a normalized entity.
type Key struct {
	Kind string
	ID   string
}

// Fields is a flat snapshot of an entity's scalar fields.
type Fields map[string]interface{}

// Config controls cache capacity and expiry.
type Config struct {
	// Name tags metrics and log lines.
	Name string
	// MaxEntities bounds the normalized entity map; the least recently used
	// entry is evicted beyond it. Zero means unbounded.
	MaxEntities int
	// TTL expires entries based on last access. Zero means no expiry.
	TTL time.Duration
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Expired   int64
	Entities  int
	Lists     int
}

type entityEntry struct {
	key        Key
	fields     Fields
	accessedAt time.Time
	lruElement *list.Element
}

type listEntry struct {
	ids        []Key
	count      int
	accessedAt time.Time
}

// Cache is safe for concurrent use.
type Cache struct {
	name string
	cfg  Config

	mu       sync.Mutex
	entities map[Key]*entityEntry
	lru      *list.List
	lists    map[string]map[string]*listEntry // kind -> query key -> entry
	stats    Stats
}

// New creates an empty cache.
func New(cfg Config) *Cache {
	if cfg.Name == "" {
		cfg.Name = "entities"
	}
	return &Cache{
		name:     cfg.Name,
		cfg:      cfg,
		entities: make(map[Key]*entityEntry),
		lru:      list.New(),
		lists:    make(map[string]map[string]*listEntry),
	}
}

// Put replaces the cached snapshot of an entity.
func (c *Cache) Put(kind, id string, fields Fields) {
	c.upsert(Key{Kind: kind, ID: id}, fields, false)
}

// Merge folds fields into the cached snapshot, creating it when absent. This
// is the identity-based normalization update mutations rely on.
func (c *Cache) Merge(kind, id string, fields Fields) {
	c.upsert(Key{Kind: kind, ID: id}, fields, true)
}

func (c *Cache) upsert(key Key, fields Fields, merge bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if entry, ok := c.entities[key]; ok {
		if merge {
			for k, v := range fields {
				entry.fields[k] = v
			}
		} else {
			entry.fields = copyFields(fields)
		}
		entry.accessedAt = now
		c.lru.MoveToFront(entry.lruElement)
		return
	}

	if c.cfg.MaxEntities > 0 && len(c.entities) >= c.cfg.MaxEntities {
		c.evictOldestLocked()
	}

	entry := &entityEntry{key: key, fields: copyFields(fields), accessedAt: now}
	entry.lruElement = c.lru.PushFront(entry)
	c.entities[key] = entry
}

// Get returns a copy of the cached entity snapshot.
func (c *Cache) Get(kind, id string) (Fields, bool) {
	key := Key{Kind: kind, ID: id}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entities[key]
	if !ok {
		c.stats.Misses++
		metrics.RecordCacheLookup(c.name, false)
		return nil, false
	}
	if c.expiredLocked(entry.accessedAt) {
		c.removeEntityLocked(entry)
		c.stats.Misses++
		c.stats.Expired++
		metrics.RecordCacheLookup(c.name, false)
		metrics.RecordCacheEviction(c.name, "ttl")
		return nil, false
	}

	entry.accessedAt = time.Now()
	c.lru.MoveToFront(entry.lruElement)
	c.stats.Hits++
	metrics.RecordCacheLookup(c.name, true)
	return copyFields(entry.fields), true
}

// Evict drops an entity snapshot without touching cached lists. The next
// read of the entity goes to the network; lists keep their keys and pick up
// the fresh snapshot. Used when a change notification carries no field data.
func (c *Cache) Evict(kind, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entities[Key{Kind: kind, ID: id}]; ok {
		c.removeEntityLocked(entry)
	}
}

// Delete removes an entity and invalidates every cached list of its kind,
// since positions and counts are stale once a member disappears.
func (c *Cache) Delete(kind, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entities[Key{Kind: kind, ID: id}]; ok {
		c.removeEntityLocked(entry)
	}
	delete(c.lists, kind)
}

// PutList caches one page of a list query: the member keys and the
// server-reported total count.
func (c *Cache) PutList(kind string, p listquery.Params, ids []Key, count int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	byQuery, ok := c.lists[kind]
	if !ok {
		byQuery = make(map[string]*listEntry)
		c.lists[kind] = byQuery
	}
	byQuery[ListKey(p)] = &listEntry{
		ids:        append([]Key(nil), ids...),
		count:      count,
		accessedAt: time.Now(),
	}
}

// GetList returns a cached list page for the exact parameter snapshot.
func (c *Cache) GetList(kind string, p listquery.Params) (ids []Key, count int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.lists[kind][ListKey(p)]
	if !found {
		c.stats.Misses++
		metrics.RecordCacheLookup(c.name+"_lists", false)
		return nil, 0, false
	}
	if c.expiredLocked(entry.accessedAt) {
		delete(c.lists[kind], ListKey(p))
		c.stats.Misses++
		c.stats.Expired++
		metrics.RecordCacheLookup(c.name+"_lists", false)
		return nil, 0, false
	}

	entry.accessedAt = time.Now()
	c.stats.Hits++
	metrics.RecordCacheLookup(c.name+"_lists", true)
	return append([]Key(nil), entry.ids...), entry.count, true
}

// InvalidateLists drops every cached page of the kind. Entity snapshots stay.
func (c *Cache) InvalidateLists(kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.lists, kind)
}

// Clear empties the whole cache. Called on logout so a later session cannot
// observe the previous session's data.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entities = make(map[Key]*entityEntry)
	c.lru = list.New()
	c.lists = make(map[string]map[string]*listEntry)
}

// CleanExpired removes every TTL-expired entry and reports how many.
func (c *Cache) CleanExpired() int {
	if c.cfg.TTL <= 0 {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	cleaned := 0
	for _, entry := range c.entities {
		if c.expiredLocked(entry.accessedAt) {
			c.removeEntityLocked(entry)
			cleaned++
		}
	}
	for kind, byQuery := range c.lists {
		for key, entry := range byQuery {
			if c.expiredLocked(entry.accessedAt) {
				delete(byQuery, key)
				cleaned++
			}
		}
		if len(byQuery) == 0 {
			delete(c.lists, kind)
		}
	}
	c.stats.Expired += int64(cleaned)
	return cleaned
}

// Stats returns a copy of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entities = len(c.entities)
	for _, byQuery := range c.lists {
		s.Lists += len(byQuery)
	}
	return s
}

func (c *Cache) expiredLocked(accessedAt time.Time) bool {
	return c.cfg.TTL > 0 && time.Since(accessedAt) >= c.cfg.TTL
}

func (c *Cache) evictOldestLocked() {
	oldest := c.lru.Back()
	if oldest == nil {
		return
	}
	c.removeEntityLocked(oldest.Value.(*entityEntry))
	c.stats.Evictions++
	metrics.RecordCacheEviction(c.name, "lru")
}

func (c *Cache) removeEntityLocked(entry *entityEntry) {
	if entry.lruElement != nil {
		c.lru.Remove(entry.lruElement)
	}
	delete(c.entities, entry.key)
}

// ListKey canonicalizes a parameter snapshot into a cache key. Filter keys
// are sorted so equal filter maps always produce equal keys. The generation
// is deliberately excluded: it identifies controller state, not the query.
func ListKey(p listquery.Params) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "limit=%d&offset=%d", p.Limit, p.Offset)
	if p.SortField != "" {
		fmt.Fprintf(&sb, "&sort=%s:%s", p.SortField, p.SortDirection)
	}
	keys := make([]string, 0, len(p.Filters))
	for k := range p.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&sb, "&f.%s=%v", k, p.Filters[k])
	}
	return sb.String()
}

func copyFields(in Fields) Fields {
	out := make(Fields, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
