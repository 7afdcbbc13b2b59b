package cache

import (
	"slices"
	"sync"

	"github.com/AchilleasB/hotel-companion/sync-service/internal/core/domain"
)

// Pending is a tentative write. Exactly one of Commit or Revert takes
// effect; later calls are ignored.
type Pending[T domain.Entity] struct {
	once    sync.Once
	c       *Collection[T]
	id      string
	rev     uint64
	prior   T
	existed bool
}

// Stage applies item tentatively and marks it pending.
func (c *Collection[T]) Stage(item T) *Pending[T] {
	c.mu.Lock()
	id := item.EntityID()
	prior, existed := c.items[id]
	rev := c.put(item)
	c.pending[id] = struct{}{}
	c.mu.Unlock()
	c.changed()

	return &Pending[T]{c: c, id: id, rev: rev, prior: prior, existed: existed}
}

// StagePatch is the tentative form of Patch.
func (c *Collection[T]) StagePatch(id string, fn func(*T) error) (*Pending[T], error) {
	c.mu.Lock()
	prior, ok := c.items[id]
	if !ok {
		c.mu.Unlock()
		return nil, domain.NewNotFoundError(c.kind, id)
	}
	next := prior
	if err := fn(&next); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	rev := c.put(next)
	c.pending[id] = struct{}{}
	c.mu.Unlock()
	c.changed()

	return &Pending[T]{c: c, id: id, rev: rev, prior: prior, existed: true}, nil
}

// Commit replaces the tentative entity with the server's version. The
// server may assign a different id than the staged one. Sorted collections
// re-place the confirmed entity by its own sort key; unsorted ones keep the
// staged display position.
func (p *Pending[T]) Commit(confirmed T) {
	p.once.Do(func() {
		c := p.c
		c.mu.Lock()
		newID := confirmed.EntityID()
		if newID != p.id {
			if _, taken := c.items[newID]; !taken && c.less == nil {
				if i := slices.Index(c.order, p.id); i >= 0 {
					c.order[i] = newID
					delete(c.items, p.id)
					delete(c.revs, p.id)
					delete(c.pending, p.id)
					c.items[newID] = confirmed
					c.rev++
					c.revs[newID] = c.rev
					c.mu.Unlock()
					c.changed()
					return
				}
			}
			c.remove(p.id)
		}
		c.put(confirmed)
		delete(c.pending, newID)
		c.mu.Unlock()
		c.changed()
	})
}

// Revert undoes the tentative write. If the entity was written again
// after Stage (a refresh or a later confirmed action), that newer state
// wins and Revert leaves it alone.
func (p *Pending[T]) Revert() {
	p.once.Do(func() {
		c := p.c
		c.mu.Lock()
		if c.revs[p.id] != p.rev {
			c.mu.Unlock()
			return
		}
		if p.existed {
			c.items[p.id] = p.prior
			c.rev++
			c.revs[p.id] = c.rev
			delete(c.pending, p.id)
		} else {
			c.remove(p.id)
		}
		c.mu.Unlock()
		c.changed()
	})
}

// ID is the id the entity was staged under.
func (p *Pending[T]) ID() string { return p.id }
