package cache

import "sync"

// DailySummary is the cached aggregate for one calendar day plus the global
// outstanding receivables total.
type DailySummary struct {
	Date             string `json:"date"`
	SalesTotal       int64  `json:"sales_total"`
	OutstandingTotal int64  `json:"outstanding_total"`
}

// ReportCache is an in-memory cache of daily summaries keyed by date
// (YYYY-MM-DD). Writers to the sale or payment tables must call Invalidate
// after a successful commit; the outstanding total embedded in every entry
// makes any entry stale after any write, so invalidation drops them all.
type ReportCache struct {
	entries map[string]DailySummary
	mu      sync.RWMutex
}

// NewReportCache creates an empty report cache
func NewReportCache() *ReportCache {
	return &ReportCache{
		entries: make(map[string]DailySummary),
	}
}

// Get returns the cached summary for a date, if present
func (c *ReportCache) Get(date string) (DailySummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.entries[date]
	return s, ok
}

// Put stores a computed summary
func (c *ReportCache) Put(s DailySummary) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[s.Date] = s
}

// Invalidate drops every cached entry
func (c *ReportCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]DailySummary)
}

// Len reports the number of cached entries
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
