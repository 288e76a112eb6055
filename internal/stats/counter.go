// Package stats aggregates verdicts and categorical counts across one
// dataset pass.
package stats

import "sort"

// Counter counts string keys while remembering first-insertion order, so
// that ranking ties resolve the same way on every run over the same input.
type Counter struct {
	counts map[string]int
	order  []string
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add increments the count for key.
func (c *Counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}

	c.counts[key]++
}

// Get returns the count for key, zero when absent.
func (c *Counter) Get(key string) int {
	return c.counts[key]
}

// Len returns the number of distinct keys.
func (c *Counter) Len() int {
	return len(c.order)
}

// Entry is one ranked key with its count.
type Entry struct {
	Key   string
	Count int
}

// Items returns every entry in first-insertion order.
func (c *Counter) Items() []Entry {
	entries := make([]Entry, 0, len(c.order))
	for _, key := range c.order {
		entries = append(entries, Entry{Key: key, Count: c.counts[key]})
	}

	return entries
}

// MostCommon returns entries ranked by descending count; ties keep
// first-insertion order. n <= 0 returns every entry.
func (c *Counter) MostCommon(n int) []Entry {
	entries := c.Items()

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}

	return entries
}

// Map returns a plain key to count copy, for serialization.
func (c *Counter) Map() map[string]int {
	m := make(map[string]int, len(c.counts))
	for key, count := range c.counts {
		m[key] = count
	}

	return m
}
