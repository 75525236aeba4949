package vars

import (
	"fmt"
	"iter"
	"slices"

	"github.com/segmentio/fasthash/fnv1a"
)

// Bucket sizing hints for the three scope lifetimes. Go maps manage their
// own buckets; the hints size the initial allocation and anchor the
// simulated bucket distribution reported by [Set.Stats].
const (
	globalScopeBuckets = 523
	targetScopeBuckets = 23
	smallScopeBuckets  = 13
)

// Set is a mutable, name-keyed collection of bindings for one scope. A Set
// exclusively owns its bindings: callers outside the engine must treat the
// bindings it yields as read-only.
type Set struct {
	table   map[string]*Binding
	buckets int
}

func newSet(buckets int) *Set {
	return &Set{
		table:   make(map[string]*Binding, buckets/4),
		buckets: buckets,
	}
}

// Lookup returns the binding for name, or nil if the set has none.
func (s *Set) Lookup(name string) *Binding {
	return s.table[name]
}

// Len returns the number of bindings in the set.
func (s *Set) Len() int {
	return len(s.table)
}

// insert stores b, replacing any binding with the same name.
func (s *Set) insert(b *Binding) {
	s.table[b.Name] = b
}

// remove deletes the binding for name, reporting whether one existed.
func (s *Set) remove(name string) bool {
	if _, ok := s.table[name]; !ok {
		return false
	}

	delete(s.table, name)

	return true
}

// All returns an iterator over the bindings in the set, in no particular
// order. It exists for debug and introspection consumers, which must not
// mutate the yielded bindings.
func (s *Set) All() iter.Seq[*Binding] {
	return func(yield func(*Binding) bool) {
		for _, b := range s.table {
			if !yield(b) {
				return
			}
		}
	}
}

// Names returns the binding names in the set, sorted.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.table))
	for name := range s.table {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// TableStats describes the shape of a set's hash table for diagnostics.
type TableStats struct {
	Entries  int
	Buckets  int
	Used     int
	MaxChain int
}

// String renders the stats in the database dump format.
func (t TableStats) String() string {
	return fmt.Sprintf("%d entries in %d/%d buckets, longest chain %d",
		t.Entries, t.Used, t.Buckets, t.MaxChain)
}

// Stats computes bucket-distribution diagnostics for the set. The runtime
// map's internal layout is not observable, so the distribution is derived
// by hashing each name into the set's nominal bucket count.
func (s *Set) Stats() TableStats {
	stats := TableStats{
		Entries: len(s.table),
		Buckets: s.buckets,
	}

	chains := make(map[uint64]int, len(s.table))

	for name := range s.table {
		slot := fnv1a.HashString64(name) % uint64(s.buckets)

		chains[slot]++
		if chains[slot] > stats.MaxChain {
			stats.MaxChain = chains[slot]
		}
	}

	stats.Used = len(chains)

	return stats
}
