// Package cache memoizes parse results per document version.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/daeuniverse/daed-sub000/internal/manager"
	"github.com/daeuniverse/daed-sub000/internal/symbols"
)

type EventType int

const (
	Parsed  EventType = iota // A new version was parsed.
	Evicted                  // The document was closed.
)

// Event describes a single change in the cache.
type Event struct {
	Type    EventType
	URI     string
	Version int32
}

type entry struct {
	version int32
	result  symbols.ParseResult
}

// Cache holds at most one parse result per document URI. An entry is
// replaced as a whole when a newer version is requested.
type Cache struct {
	parse   func(text string) symbols.ParseResult
	entries *xsync.MapOf[string, entry]
	parses  atomic.Int64

	mu          sync.Mutex
	subscribers map[int]chan Event
	nextSubID   int
}

func New(parse func(text string) symbols.ParseResult) *Cache {
	return &Cache{
		parse:       parse,
		entries:     xsync.NewMapOf[string, entry](),
		subscribers: make(map[int]chan Event),
	}
}

// Get returns the parse result for the document's current version, parsing
// only when the cached version differs.
func (c *Cache) Get(doc manager.Document) symbols.ParseResult {
	parsed := false
	e, _ := c.entries.Compute(doc.URI, func(old entry, loaded bool) (entry, bool) {
		if loaded && old.version == doc.Version {
			return old, false
		}
		parsed = true
		c.parses.Add(1)
		return entry{version: doc.Version, result: c.parse(doc.Text)}, false
	})
	if parsed {
		c.emit(Event{Type: Parsed, URI: doc.URI, Version: doc.Version})
	}
	return e.result
}

// Evict drops the entry of a closed document.
func (c *Cache) Evict(uri string) {
	if _, ok := c.entries.LoadAndDelete(uri); ok {
		c.emit(Event{Type: Evicted, URI: uri})
	}
}

// Version returns the cached version of a URI.
func (c *Cache) Version(uri string) (int32, bool) {
	e, ok := c.entries.Load(uri)
	return e.version, ok
}

// Lookup returns the cached result of a URI without parsing.
func (c *Cache) Lookup(uri string) (symbols.ParseResult, bool) {
	e, ok := c.entries.Load(uri)
	return e.result, ok
}

// Parses returns how many parses the cache has performed.
func (c *Cache) Parses() int64 {
	return c.parses.Load()
}

// Range calls fn for every cached result until fn returns false.
func (c *Cache) Range(fn func(uri string, result symbols.ParseResult) bool) {
	c.entries.Range(func(uri string, e entry) bool {
		return fn(uri, e.result)
	})
}

// Subscribe returns a channel of cache events that is closed when ctx is
// done. Events are dropped for subscribers that are not keeping up.
func (c *Cache) Subscribe(ctx context.Context) <-chan Event {
	c.mu.Lock()
	ch := make(chan Event, 16)
	sid := c.nextSubID
	c.nextSubID++
	c.subscribers[sid] = ch
	c.mu.Unlock()

	go func() {
		<-ctx.Done()
		c.mu.Lock()
		delete(c.subscribers, sid)
		close(ch)
		c.mu.Unlock()
	}()
	return ch
}

func (c *Cache) emit(event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, ch := range c.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
