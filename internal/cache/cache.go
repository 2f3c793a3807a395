// Package cache implements the Source Cache (spec.md C1): a concurrency-safe
// map from absolute file path to the most recently read source text.
//
// The teacher's own content store (internal/core/file_content_store.go)
// reaches for a lock-free sync.Map plus an atomic snapshot plus a
// single-writer update channel, because it must survive a live file
// watcher re-indexing thousands of files concurrently with searches.
// spec.md §4.1 draws a much narrower contract — "a single reader-writer
// lock over the mapping... entries are immutable once inserted" — and
// explicitly rules out the file-watching case that justified the
// teacher's heavier machinery (spec.md §1 Non-goals: no incremental
// re-indexing). So this is the plain sync.RWMutex the contract asks for,
// not the teacher's full apparatus; see DESIGN.md.
package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Entry is one cached file: its absolute path, its text, and a content
// hash used only to let Insert recognize a no-op write cheaply (the
// teacher's FileContent.FastHash idea from file_content_store.go).
type Entry struct {
	Path string
	Text string
	Hash uint64
}

// Source is the Source Cache. The zero value is not usable; use New.
type Source struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// New returns an empty Source cache.
func New() *Source {
	return &Source{entries: make(map[string]Entry)}
}

// Get performs a non-blocking, shared-mode lookup. The returned bool is
// false when path has never been inserted (or was since invalidated).
func (s *Source) Get(path string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[path]
	if !ok {
		return "", false
	}
	return e.Text, true
}

// Insert replaces (or installs) the entry for path. Entries are
// value-replaced, never mutated in place, so a concurrent Get can never
// observe a torn entry (spec.md §4.1): the write swaps in a brand new
// Entry value under the exclusive lock, and no code anywhere holds a
// pointer into the map that Insert could mutate underneath a reader.
func (s *Source) Insert(path, text string) {
	h := xxhash.Sum64String(text)
	s.mu.Lock()
	if old, ok := s.entries[path]; ok && old.Hash == h && old.Text == text {
		s.mu.Unlock()
		return
	}
	s.entries[path] = Entry{Path: path, Text: text, Hash: h}
	s.mu.Unlock()
}

// Invalidate drops the entry for path, if any. It is the only form of
// removal; the cache never expires entries on its own.
func (s *Source) Invalidate(path string) {
	s.mu.Lock()
	delete(s.entries, path)
	s.mu.Unlock()
}

// Snapshot returns a shallow copy of every cached path's current text.
// Grounded on original_source/src/cache.rs's AstCache::get_all: a simple
// diagnostic/test primitive, not part of the spec's tool surface, with no
// caller that depends on read-after-write ordering across entries.
func (s *Source) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.entries))
	for path, e := range s.entries {
		out[path] = e.Text
	}
	return out
}

// Len reports the number of cached entries.
func (s *Source) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
