// Package store implements the canonical in-memory entity collection:
// an ordered slice owning all records of one entity type, with create,
// update and delete commands and max-plus-one identifier allocation.
package store

import (
	"github.com/thoas/go-funk"
)

// Record is the constraint for entities kept in a Collection:
// a value type carrying an integer identity.
type Record[E any] interface {
	Identity() int
	WithIdentity(id int) E
}

// Collection owns the ordered canonical list of one entity type.
// Records keep their insertion order; edits never re-sort.
type Collection[E Record[E]] struct {
	records []E
}

// New returns an empty collection.
func New[E Record[E]]() *Collection[E] {
	return &Collection[E]{}
}

// NextID computes the identifier for the next created record:
// 1 for an empty collection, max of the present ids plus one otherwise.
// It is recomputed from the current records at each call, so deletions
// below the maximum never free an id for reuse.
func NextID[E Record[E]](records []E) int {
	if len(records) == 0 {
		return 1
	}

	ids := make([]int, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.Identity())
	}

	return funk.MaxInt(ids) + 1
}

// Add assigns the next free id to the candidate, appends it and returns
// the stored record. The candidate's own id field is ignored.
func (c *Collection[E]) Add(candidate E) E {
	record := candidate.WithIdentity(NextID(c.records))
	c.records = append(c.records, record)

	return record
}

// Update replaces the record whose id matches the given one, keeping its
// position. All other records and their order stay untouched. When no id
// matches the collection is unchanged.
func (c *Collection[E]) Update(record E) {
	for i, present := range c.records {
		if present.Identity() == record.Identity() {
			c.records[i] = record
			return
		}
	}
}

// Delete removes the record with the given id. Absent id is a no-op.
func (c *Collection[E]) Delete(id int) {
	for i, present := range c.records {
		if present.Identity() == id {
			c.records = append(c.records[:i], c.records[i+1:]...)
			return
		}
	}
}

// Replace swaps the whole collection content for the given records.
// Used once, when the remote seed arrives.
func (c *Collection[E]) Replace(records []E) {
	c.records = append([]E(nil), records...)
}

// Find returns the record with the given id.
func (c *Collection[E]) Find(id int) (E, bool) {
	for _, present := range c.records {
		if present.Identity() == id {
			return present, true
		}
	}

	var zero E

	return zero, false
}

// Snapshot returns a copy of the current ordered record list.
func (c *Collection[E]) Snapshot() []E {
	return append([]E(nil), c.records...)
}

// Len returns the number of records.
func (c *Collection[E]) Len() int {
	return len(c.records)
}
