package reactphysics3d

import (
	"fmt"
	"sync"
)

// Pool is a fixed-capacity block allocator. Every block is carved out of
// one backing slice up front; Allocate and Release only move slot indices on
// and off a free stack, so the simulation hot path never touches the heap.
//
// Release zeroes the block before returning it to the free stack, so
// destruction and deallocation cannot be separated. A released pointer must
// not be used again until the pool hands it back out.
//
// The pool itself is safe for concurrent use; the blocks it hands out are
// owned exclusively by the caller until released.
type Pool[T any] struct {
	mu     sync.Mutex
	name   string
	blocks []T
	free   []int      // LIFO stack of free slot indices
	slot   map[*T]int // block address to slot, for release validation
	inUse  []bool
}

// NewPool allocates a pool of capacity blocks. The name only appears in
// panic messages and log output.
func NewPool[T any](name string, capacity int) *Pool[T] {
	if capacity <= 0 {
		panic(fmt.Sprintf("pool %q: capacity must be positive, got %d", name, capacity))
	}
	p := &Pool[T]{
		name:   name,
		blocks: make([]T, capacity),
		free:   make([]int, capacity),
		slot:   make(map[*T]int, capacity),
		inUse:  make([]bool, capacity),
	}
	for i := range p.blocks {
		p.free[i] = capacity - 1 - i
		p.slot[&p.blocks[i]] = i
	}
	return p
}

// Allocate hands out a zeroed block. Exhaustion means the pool was sized
// below the scene's peak live-object count, which is a configuration fault,
// so it panics rather than degrade silently.
func (p *Pool[T]) Allocate() *T {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.free) == 0 {
		panic(fmt.Sprintf("pool %q: exhausted at capacity %d", p.name, len(p.blocks)))
	}
	i := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.inUse[i] = true
	return &p.blocks[i]
}

// Release zeroes the block and returns it to the free stack. Releasing a
// pointer the pool does not own, or releasing the same block twice, is a
// caller bug and panics.
func (p *Pool[T]) Release(block *T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.slot[block]
	if !ok {
		panic(fmt.Sprintf("pool %q: release of a block the pool does not own", p.name))
	}
	if !p.inUse[i] {
		panic(fmt.Sprintf("pool %q: double release of slot %d", p.name, i))
	}
	var zero T
	p.blocks[i] = zero
	p.inUse[i] = false
	p.free = append(p.free, i)
}

// Owns reports whether block was handed out by this pool and has not been
// released since.
func (p *Pool[T]) Owns(block *T) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.slot[block]
	return ok && p.inUse[i]
}

// Capacity returns the fixed number of blocks the pool holds.
func (p *Pool[T]) Capacity() int {
	return len(p.blocks)
}

// InUse returns how many blocks are allocated right now.
func (p *Pool[T]) InUse() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.blocks) - len(p.free)
}

// Available returns how many blocks remain allocatable.
func (p *Pool[T]) Available() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}
