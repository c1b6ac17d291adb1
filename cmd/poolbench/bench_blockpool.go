package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/poolkit-dev/poolkit/blockpool"
	"github.com/poolkit-dev/poolkit/timing"
)

// payload approximates a small cache entry, the sweet spot for a block pool.
type payload struct {
	key     int64
	value   int64
	weight  int32
	flags   uint32
	created int64
}

func newBlockpoolCmd() *cobra.Command {
	var (
		rounds    int
		batch     int
		chunkSize int
	)

	cmd := &cobra.Command{
		Use:   "blockpool",
		Short: "Alloc/free churn through the block pool, compared against the heap",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlockpoolBench(rounds, batch, chunkSize)
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 1000, "alloc/free rounds to run")
	cmd.Flags().IntVar(&batch, "batch", 512, "blocks allocated per round")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", blockpool.DefaultChunkSize, "blocks per pool chunk")

	return cmd
}

type blockpoolRun struct {
	name  string
	ops   int
	total time.Duration
}

func runBlockpoolBench(rounds, batch, chunkSize int) error {
	ops := rounds * batch

	bar := makeProgressBar(2, "Running allocators")

	poolRun, stats, err := churnPool(rounds, batch, chunkSize)
	if err != nil {
		return err
	}
	_ = bar.Add(1)

	heapRun := churnHeap(rounds, batch)
	_ = bar.Add(1)
	_ = bar.Finish()
	fmt.Println()

	renderBlockpoolResults([]blockpoolRun{poolRun, heapRun}, ops)
	colorPrintf(green, "✓ pool settled at %d chunks (%s blocks capacity) for %s allocations\n",
		stats.Chunks, formatNumber(stats.Capacity), formatNumber(ops))
	return nil
}

// churnPool allocates batch blocks and frees them again each round, keeping
// the pool's footprint bounded by one batch.
func churnPool(rounds, batch, chunkSize int) (blockpoolRun, blockpool.Stats, error) {
	pool, err := blockpool.New(blockpool.WithChunkSize[payload](chunkSize))
	if err != nil {
		return blockpoolRun{}, blockpool.Stats{}, err
	}

	refs := make([]*blockpool.Ref[payload], batch)
	watch := timing.New()

	for round := 0; round < rounds; round++ {
		for i := 0; i < batch; i++ {
			r, err := pool.Create(payload{key: int64(i), value: int64(i) * 2})
			if err != nil {
				return blockpoolRun{}, blockpool.Stats{}, err
			}
			refs[i] = r
		}
		for i := batch - 1; i >= 0; i-- {
			pool.Free(refs[i])
		}
	}

	_ = watch.Stop()
	return blockpoolRun{
		name:  "blockpool",
		ops:   rounds * batch,
		total: watch.Elapsed(),
	}, pool.Stats(), nil
}

// churnHeap is the baseline: the same churn through plain heap allocation,
// letting the GC reclaim each batch.
func churnHeap(rounds, batch int) blockpoolRun {
	ptrs := make([]*payload, batch)
	watch := timing.New()

	for round := 0; round < rounds; round++ {
		for i := 0; i < batch; i++ {
			ptrs[i] = &payload{key: int64(i), value: int64(i) * 2}
		}
		for i := 0; i < batch; i++ {
			ptrs[i] = nil
		}
	}

	_ = watch.Stop()
	return blockpoolRun{
		name:  "heap (new + GC)",
		ops:   rounds * batch,
		total: watch.Elapsed(),
	}
}

func renderBlockpoolResults(runs []blockpoolRun, ops int) {
	printSectionHeader("BLOCK POOL VS HEAP",
		fmt.Sprintf("%s allocate/free pairs per allocator", formatNumber(ops)))

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Allocator", "Total Time", "ns/op")

	for _, r := range runs {
		nsPerOp := float64(r.total.Nanoseconds()) / float64(r.ops)
		_ = table.Append(
			r.name,
			r.total.Round(time.Microsecond).String(),
			fmt.Sprintf("%.1f", nsPerOp),
		)
	}

	if err := table.Render(); err != nil {
		colorPrintLn(red, "error rendering results table:", err)
	}
}
