// Package blockpool provides a fixed-size block allocator: a growing set of
// chunks, each sliced into same-sized slots for values of one type, recycled
// through an intrusive LIFO free list.
//
// The pool hands out and takes back single blocks in O(1). When the free list
// is empty a whole new chunk is allocated in one bulk request and split into
// blocks, so allocation never fails merely because the current chunk is full.
// Chunks are never shrunk or returned individually; the whole pool is released
// together when it becomes unreachable.
//
// # Basic Usage
//
//	pool, err := blockpool.New[Node]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ref, err := pool.Alloc()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ref.Value().Key = 42
//	pool.Free(ref)
//
// # Construct / Destroy
//
// Create combines allocation with initialization, Destroy runs the configured
// finalizer before recycling the block:
//
//	pool, _ := blockpool.New(blockpool.WithFinalizer(func(n *Node) {
//	    n.close()
//	}))
//	ref, _ := pool.Create(Node{Key: 1})
//	pool.Destroy(ref)
//
// # Configuration Options
//
//   - WithChunkSize(n): blocks per chunk (default 64)
//   - WithMaxChunks(n): cap on chunk count; Alloc returns ErrOutOfMemory once
//     the cap is reached and the free list is empty (default unbounded)
//   - WithFinalizer(fn): called exactly once per block by Destroy
//
// # Concurrency
//
// A Pool is NOT safe for concurrent use. Callers that share one pool across
// goroutines must supply their own synchronization. This is a deliberate
// trade-off: the pool targets single-owner hot paths where a mutex per
// Alloc/Free would dominate the cost of the operation itself.
//
// Freeing the same Ref twice is a contract violation and is not detected.
package blockpool
