package strand

import "fmt"

// CollisionGroupPool hands out collision groups, round-robin through Next or
// by position through Arc. Shapes sharing a group never collide with each
// other but still collide with everything else.
type CollisionGroupPool struct {
	groups []uint
	next   int
}

// NewCollisionGroupPool creates n consecutive groups starting at base
// Group 0 means "no group" to the engine and is rejected
func NewCollisionGroupPool(base uint, n int) (*CollisionGroupPool, error) {
	if base == 0 {
		return nil, fmt.Errorf("%w: collision group base must be non-zero", ErrInvalidParams)
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: collision group pool size %d < 1", ErrInvalidParams, n)
	}

	groups := make([]uint, n)
	for i := range groups {
		groups[i] = base + uint(i)
	}
	return &CollisionGroupPool{groups: groups}, nil
}

// Next returns the next group in rotation
func (p *CollisionGroupPool) Next() uint {
	g := p.groups[p.next]
	p.next = (p.next + 1) % len(p.groups)
	return g
}

// Arc returns the group for slot i of count slots laid out in order, so the
// pool is split into contiguous runs and neighbouring slots share a group
func (p *CollisionGroupPool) Arc(i, count int) uint {
	if count < 1 || i < 0 {
		return p.groups[0]
	}
	i = min(i, count-1)
	return p.groups[i*len(p.groups)/count]
}

// Len returns the pool size
func (p *CollisionGroupPool) Len() int {
	return len(p.groups)
}

// Contains reports whether g belongs to the pool
func (p *CollisionGroupPool) Contains(g uint) bool {
	for _, x := range p.groups {
		if x == g {
			return true
		}
	}
	return false
}
