package cache

import (
	"fmt"
	"sync"
	"time"

	cache_pkg "github.com/patrickmn/go-cache"
)

const (
	DefaultMaxEntrySize = 10000
	DefaultMaxSize      = 100000
)

// Config contains configuration for the replay cache. Sizes are counted in
// records; a negative size disables that limit.
type Config struct {
	TTL             time.Duration `json:"ttl" yaml:"ttl" default:"5m"`
	CleanupInterval time.Duration `json:"cleanup_interval" yaml:"cleanup_interval" default:"10m"`
	MaxEntrySize    int           `json:"max_entry_size" yaml:"max_entry_size" default:"10000"`
	MaxSize         int           `json:"max_size" yaml:"max_size" default:"100000"`
}

type entry struct {
	value any
	size  int
}

// Handler stores batches generated from an explicit seed so that repeated
// requests return the same records while they stay cached.
type Handler struct {
	client       *cache_pkg.Cache
	maxEntrySize int
	maxSize      int

	mu      sync.Mutex
	entries map[string]*entry
	size    int
}

func New(config *Config) (*Handler, error) {
	ttl, cleanup := 5*time.Minute, 10*time.Minute
	maxEntrySize, maxSize := DefaultMaxEntrySize, DefaultMaxSize
	if config != nil {
		if config.TTL > 0 {
			ttl = config.TTL
		}
		if config.CleanupInterval > 0 {
			cleanup = config.CleanupInterval
		}
		if config.MaxEntrySize != 0 {
			maxEntrySize = config.MaxEntrySize
		}
		if config.MaxSize != 0 {
			maxSize = config.MaxSize
		}
	}

	h := &Handler{
		client:       cache_pkg.New(ttl, cleanup),
		maxEntrySize: maxEntrySize,
		maxSize:      maxSize,
		entries:      make(map[string]*entry),
	}
	h.client.OnEvicted(h.evicted)
	return h, nil
}

// Key builds the cache key of a seeded batch
func Key(logType string, count int, seed uint64) string {
	return fmt.Sprintf("%s/%d/%d", logType, count, seed)
}

// Get returns the cached value for key, if present and not expired
func (h *Handler) Get(key string) (any, bool) {
	value, found := h.client.Get(key)
	if !found {
		return nil, false
	}
	e, ok := value.(*entry)
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the default expiration. It reports false
// and stores nothing when size exceeds the entry limit or the remaining budget.
func (h *Handler) Set(key string, value any, size int) bool {
	if h.maxEntrySize >= 0 && size > h.maxEntrySize {
		return false
	}
	if h.set(key, value, size) {
		return true
	}
	// expired entries keep their budget until removed
	h.client.DeleteExpired()
	return h.set(key, value, size)
}

func (h *Handler) set(key string, value any, size int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	used := h.size
	if old, ok := h.entries[key]; ok {
		used -= old.size
	}
	if h.maxSize >= 0 && used+size > h.maxSize {
		return false
	}

	e := &entry{value: value, size: size}
	h.client.SetDefault(key, e)
	h.entries[key] = e
	h.size = used + size
	return true
}

func (h *Handler) evicted(key string, value any) {
	e, ok := value.(*entry)
	if !ok {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	// a replaced entry was already released by set
	if h.entries[key] == e {
		delete(h.entries, key)
		h.size -= e.size
	}
}

// Len returns the number of cached entries, including expired ones not yet cleaned up
func (h *Handler) Len() int {
	return h.client.ItemCount()
}

// Size returns the number of records held by cached entries
func (h *Handler) Size() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

func (h *Handler) Ping() (bool, error) {
	return true, nil
}
