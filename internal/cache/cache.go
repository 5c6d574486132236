package cache

import (
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

type entry struct {
	data      any
	createdAt time.Time
	ttl       time.Duration
}

func (e entry) fresh(now time.Time) bool {
	return now.Sub(e.createdAt) <= e.ttl
}

// Cache - key/value хранилище с истечением по времени.
// Просроченные записи удаляются лениво, при чтении; фоновой очистки нет.
type Cache struct {
	mu         sync.Mutex
	items      map[string]entry
	now        func() time.Time
	defaultTTL time.Duration
}

type Option func(*Cache)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		c.now = now
	}
}

func WithDefaultTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.defaultTTL = ttl
		}
	}
}

func New(opts ...Option) *Cache {
	c := &Cache{
		items:      make(map[string]entry),
		now:        time.Now,
		defaultTTL: DefaultTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !e.fresh(c.now()) {
		delete(c.items, key)
		return nil, false
	}
	return e.data, true
}

// Set записывает значение и сбрасывает его время жизни. ttl <= 0 - значение по умолчанию.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = entry{
		data:      value,
		createdAt: c.now(),
		ttl:       ttl,
	}
}

func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
}

// Clear сбрасывает все записи кэша.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]entry)
}

// Len считает и просроченные, но ещё не вычитанные записи.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Get - типизированное чтение. Значение другого типа считается промахом.
func Get[T any](c *Cache, key string) (T, bool) {
	var zero T

	v, ok := c.Get(key)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
