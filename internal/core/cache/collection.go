package cache

import (
	"slices"
	"sync"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// Placement decides where a newly inserted entity goes.
type Placement int

const (
	Append Placement = iota
	Prepend
)

// Collection is an ordered set of entities keyed by id. Every write bumps a
// per-entity revision so a late revert can tell whether it would overwrite
// a newer write.
type Collection[T domain.Entity] struct {
	mu        sync.RWMutex
	kind      domain.Kind
	placement Placement
	less      func(a, b T) int
	order     []string
	items     map[string]T
	revs      map[string]uint64
	pending   map[string]struct{}
	rev       uint64
	onChange  func(domain.Kind)
}

func newCollection[T domain.Entity](kind domain.Kind, placement Placement, less func(a, b T) int, onChange func(domain.Kind)) *Collection[T] {
	return &Collection[T]{
		kind:      kind,
		placement: placement,
		less:      less,
		items:     make(map[string]T),
		revs:      make(map[string]uint64),
		pending:   make(map[string]struct{}),
		onChange:  onChange,
	}
}

func (c *Collection[T]) Kind() domain.Kind { return c.kind }

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// List returns the entities in display order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// Find returns every entity matching pred, in display order.
func (c *Collection[T]) Find(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, id := range c.order {
		if item := c.items[id]; pred(item) {
			out = append(out, item)
		}
	}
	return out
}

func (c *Collection[T]) IsPending(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.pending[id]
	return ok
}

// Replace swaps the whole collection for a server snapshot. Staged entries
// that are still awaiting confirmation are dropped along with everything
// else; their Pending handles become no-ops on revert.
func (c *Collection[T]) Replace(items []T) {
	sorted := slices.Clone(items)
	if c.less != nil {
		slices.SortStableFunc(sorted, c.less)
	}

	c.mu.Lock()
	c.order = make([]string, 0, len(sorted))
	c.items = make(map[string]T, len(sorted))
	c.revs = make(map[string]uint64, len(sorted))
	c.pending = make(map[string]struct{})
	for _, item := range sorted {
		id := item.EntityID()
		if _, dup := c.items[id]; !dup {
			c.order = append(c.order, id)
		}
		c.items[id] = item
		c.rev++
		c.revs[id] = c.rev
	}
	c.mu.Unlock()
	c.changed()
}

// Upsert inserts item or replaces the entity with the same id in place.
func (c *Collection[T]) Upsert(item T) {
	c.mu.Lock()
	c.put(item)
	delete(c.pending, item.EntityID())
	c.mu.Unlock()
	c.changed()
}

// Patch applies fn to a copy of the entity and stores the result. If fn
// returns an error nothing is written.
func (c *Collection[T]) Patch(id string, fn func(*T) error) (T, error) {
	c.mu.Lock()
	item, ok := c.items[id]
	if !ok {
		c.mu.Unlock()
		var zero T
		return zero, domain.NewNotFoundError(c.kind, id)
	}
	if err := fn(&item); err != nil {
		c.mu.Unlock()
		var zero T
		return zero, err
	}
	c.put(item)
	c.mu.Unlock()
	c.changed()
	return item, nil
}

func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	ok := c.remove(id)
	c.mu.Unlock()
	if ok {
		c.changed()
	}
	return ok
}

func (c *Collection[T]) reset() {
	c.mu.Lock()
	c.order = nil
	c.items = make(map[string]T)
	c.revs = make(map[string]uint64)
	c.pending = make(map[string]struct{})
	c.mu.Unlock()
}

// put must be called with mu held.
func (c *Collection[T]) put(item T) uint64 {
	id := item.EntityID()
	if _, ok := c.items[id]; !ok {
		c.order = slices.Insert(c.order, c.position(item), id)
	}
	c.items[id] = item
	c.rev++
	c.revs[id] = c.rev
	return c.rev
}

// position is where a new entity goes in order. Sorted collections insert
// by less: after equal keys for Append, before them for Prepend. Existing
// entities keep their slot when rewritten.
func (c *Collection[T]) position(item T) int {
	if c.less == nil {
		if c.placement == Prepend {
			return 0
		}
		return len(c.order)
	}
	for i, id := range c.order {
		cmp := c.less(item, c.items[id])
		if cmp < 0 || (cmp == 0 && c.placement == Prepend) {
			return i
		}
	}
	return len(c.order)
}

// remove must be called with mu held.
func (c *Collection[T]) remove(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	delete(c.revs, id)
	delete(c.pending, id)
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return true
}

func (c *Collection[T]) changed() {
	if c.onChange != nil {
		c.onChange(c.kind)
	}
}
