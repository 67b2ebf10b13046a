package generator

import (
	"fmt"
	"strings"
	"sync"

	"github.com/de-tools/csat-atlas/pkg/models/domain"
)

type entry struct {
	once    sync.Once
	records []domain.DailyRecord
	err     error
}

// Cache memoizes generated series per settings. Each entry is computed once
// and never written again, so the returned slices are shared between callers
// and must be treated as read-only.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*entry)}
}

func (c *Cache) Get(s Settings) ([]domain.DailyRecord, error) {
	key := cacheKey(s)

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{}
		c.entries[key] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.records, e.err = Generate(s)
	})
	return e.records, e.err
}

// Len returns the number of memoized settings.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func cacheKey(s Settings) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%s|%d|%g|%g|%g",
		s.Start.Format("2006-01-02"), s.End.Format("2006-01-02"), s.Seed, s.Mean, s.StdDev, s.WeekendDelta)
	for _, w := range s.Windows {
		fmt.Fprintf(&b, "|%d-%d:%d-%d:%g", w.Year, w.Month, w.FirstDay, w.LastDay, w.Delta)
	}
	return b.String()
}
