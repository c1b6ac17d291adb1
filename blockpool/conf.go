package blockpool

// DefaultChunkSize is the number of blocks allocated per chunk unless
// overridden with WithChunkSize.
const DefaultChunkSize = 64

// Option is a functional option for configuring a Pool.
type Option[T any] func(*config[T])

type config[T any] struct {
	chunkSize int
	maxChunks int
	finalizer func(*T)
}

func defaultConfig[T any]() *config[T] {
	return &config[T]{
		chunkSize: DefaultChunkSize,
	}
}

// WithChunkSize sets the number of blocks carved out of each chunk.
// Larger chunks mean fewer bulk allocations but coarser growth steps.
func WithChunkSize[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n > 0 {
			cfg.chunkSize = n
		}
	}
}

// WithMaxChunks caps how many chunks the pool may allocate. Once the cap is
// reached and the free list is empty, Alloc fails with ErrOutOfMemory.
// Zero (the default) means unbounded growth.
func WithMaxChunks[T any](n int) Option[T] {
	return func(cfg *config[T]) {
		if n > 0 {
			cfg.maxChunks = n
		}
	}
}

// WithFinalizer sets the function Destroy runs on a block's value before the
// block is recycled. Free never runs it.
func WithFinalizer[T any](fn func(*T)) Option[T] {
	return func(cfg *config[T]) {
		cfg.finalizer = fn
	}
}
