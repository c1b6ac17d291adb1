package blockpool

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOutOfMemory is returned when the free list is empty and the pool has
	// already reached its configured chunk limit. The pool does not self-heal:
	// the same Alloc keeps failing until blocks are freed.
	ErrOutOfMemory = errors.New("blockpool: out of memory")

	// ErrChunkSpaceExhausted is returned when growing one more chunk would
	// overflow the 32-bit slot index space.
	ErrChunkSpaceExhausted = errors.New("blockpool: slot index space exhausted")
)

// freeListEnd terminates the intrusive free list.
const freeListEnd int32 = -1

// Pool is a fixed-size block allocator for values of type T.
//
// Storage is organized as chunks, each a single contiguous []T of chunkSize
// elements (one bulk allocation per chunk). Unused blocks are threaded into a
// LIFO free list held as slot indices in the next table, so Alloc and Free
// are O(1) and allocate nothing on the happy path.
//
// A Pool is not safe for concurrent use; see the package documentation.
type Pool[T any] struct {
	chunkSize int
	maxChunks int
	finalizer func(*T)

	chunks [][]T
	// next[slot] is the next free slot id while slot is on the free list.
	// Slot ids are global: slot = chunkIndex*chunkSize + offset.
	next     []int32
	freeHead int32

	allocs uint64
	frees  uint64
}

// Ref is a borrowed handle to one occupied block. The pool retains ownership
// of the backing chunk memory; the caller owns the slot until it is returned
// through Free or Destroy.
type Ref[T any] struct {
	ptr  *T
	slot int32
}

// Value returns the block's value pointer, or nil after the Ref was freed.
func (r *Ref[T]) Value() *T {
	return r.ptr
}

// New creates a pool and eagerly allocates its first chunk, so the first
// Alloc never pays the chunk-split cost.
func New[T any](opts ...Option[T]) (*Pool[T], error) {
	cfg := defaultConfig[T]()
	for _, opt := range opts {
		opt(cfg)
	}

	p := &Pool[T]{
		chunkSize: cfg.chunkSize,
		maxChunks: cfg.maxChunks,
		finalizer: cfg.finalizer,
		freeHead:  freeListEnd,
	}

	if err := p.grow(); err != nil {
		return nil, err
	}
	return p, nil
}

// Alloc takes one block off the free list and returns a handle to it. The
// block's value is the zero value of T. If the free list is empty a new chunk
// is allocated and split first; that is the only path that can fail.
func (p *Pool[T]) Alloc() (*Ref[T], error) {
	if p.freeHead == freeListEnd {
		if err := p.grow(); err != nil {
			return nil, err
		}
	}

	slot := p.freeHead
	p.freeHead = p.next[slot]
	p.allocs++

	return &Ref[T]{ptr: p.blockAt(slot), slot: slot}, nil
}

// Free returns a block to the head of the free list. The slot's value is
// cleared first so the pool does not pin references held by the old value.
// A nil or already-freed Ref is a no-op.
func (p *Pool[T]) Free(r *Ref[T]) {
	if r == nil || r.ptr == nil {
		return
	}

	var zero T
	*r.ptr = zero

	p.next[r.slot] = p.freeHead
	p.freeHead = r.slot
	p.frees++
	r.ptr = nil
}

// Create allocates a block and initializes it with v.
func (p *Pool[T]) Create(v T) (*Ref[T], error) {
	r, err := p.Alloc()
	if err != nil {
		return nil, err
	}
	*r.ptr = v
	return r, nil
}

// Destroy runs the configured finalizer on the block's value, then recycles
// the block. A nil or already-freed Ref is a no-op.
func (p *Pool[T]) Destroy(r *Ref[T]) {
	if r == nil || r.ptr == nil {
		return
	}
	if p.finalizer != nil {
		p.finalizer(r.ptr)
	}
	p.Free(r)
}

// ChunkSize returns the number of blocks per chunk.
func (p *Pool[T]) ChunkSize() int {
	return p.chunkSize
}

// Stats reports a snapshot of the pool's occupancy.
func (p *Pool[T]) Stats() Stats {
	capacity := len(p.chunks) * p.chunkSize
	live := int(p.allocs - p.frees)
	return Stats{
		Chunks:   len(p.chunks),
		Capacity: capacity,
		Live:     live,
		Free:     capacity - live,
		Allocs:   p.allocs,
		Frees:    p.frees,
	}
}

// Stats describes a pool's occupancy at one point in time.
type Stats struct {
	Chunks   int    // allocated chunks
	Capacity int    // total blocks across all chunks
	Live     int    // blocks currently handed out
	Free     int    // blocks on the free list
	Allocs   uint64 // lifetime Alloc count
	Frees    uint64 // lifetime Free count
}

// grow allocates one more chunk and threads its blocks onto the free list in
// slot order, the last block linking to the previous head.
func (p *Pool[T]) grow() error {
	if p.maxChunks > 0 && len(p.chunks) >= p.maxChunks {
		return fmt.Errorf("%w: %d chunks of %d blocks in use",
			ErrOutOfMemory, len(p.chunks), p.chunkSize)
	}
	if len(p.next)+p.chunkSize > math.MaxInt32 {
		return ErrChunkSpaceExhausted
	}

	base := int32(len(p.next))
	p.chunks = append(p.chunks, make([]T, p.chunkSize))

	for i := 0; i < p.chunkSize-1; i++ {
		p.next = append(p.next, base+int32(i)+1)
	}
	p.next = append(p.next, p.freeHead)
	p.freeHead = base

	return nil
}

func (p *Pool[T]) blockAt(slot int32) *T {
	chunk := int(slot) / p.chunkSize
	offset := int(slot) % p.chunkSize
	return &p.chunks[chunk][offset]
}
