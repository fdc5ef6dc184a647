package ratelimit

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// SiteMap lazily materializes one state value per log-site key. Keys are
// arbitrary comparable identities. Unbounded by default; [WithMaxSites]
// bounds it with least-recently-used eviction.
type SiteMap[V any] struct {
	create  func() V
	bounded *lru.Cache[any, V]
	sites   sync.Map
}

// NewSiteMap returns a map whose missing entries are populated by
// create.
func NewSiteMap[V any](create func() V, opts ...Option) *SiteMap[V] {
	m := &SiteMap[V]{create: create}

	if cfg := makeConfig(opts...); cfg.maxSites > 0 {
		cache, err := lru.New[any, V](cfg.maxSites)
		if err != nil {
			panic("ratelimit: " + err.Error())
		}

		m.bounded = cache
	}

	return m
}

// Get returns the state for key, creating it on first use. Concurrent
// first uses observe a single shared instance.
func (m *SiteMap[V]) Get(key any) V {
	if m.bounded != nil {
		if v, ok := m.bounded.Get(key); ok {
			return v
		}

		v := m.create()
		if prev, ok, _ := m.bounded.PeekOrAdd(key, v); ok {
			return prev
		}

		return v
	}

	if v, ok := m.sites.Load(key); ok {
		return v.(V) //nolint:forcetypeassert
	}

	v, _ := m.sites.LoadOrStore(key, m.create())

	return v.(V) //nolint:forcetypeassert
}

// Len returns the number of sites currently tracked.
func (m *SiteMap[V]) Len() int {
	if m.bounded != nil {
		return m.bounded.Len()
	}

	n := 0

	m.sites.Range(func(any, any) bool {
		n++

		return true
	})

	return n
}
