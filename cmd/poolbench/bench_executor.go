package main

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/poolkit-dev/poolkit/executor"
	"github.com/poolkit-dev/poolkit/timing"
)

func newExecutorCmd() *cobra.Command {
	var (
		tasks   int
		workers []int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "executor",
		Short: "Submit square-number tasks and measure throughput per worker count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExecutorBench(tasks, workers, verbose)
		},
	}

	cmd.Flags().IntVar(&tasks, "tasks", 100_000, "number of tasks to submit")
	cmd.Flags().IntSliceVar(&workers, "workers", []int{1, 2, 4, 8}, "worker counts to compare")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log task failures and timings")

	return cmd
}

type executorRun struct {
	workers    int
	total      time.Duration
	throughput float64
}

func runExecutorBench(tasks int, workers []int, verbose bool) error {
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	expected := expectedSquareSum(tasks)
	runs := make([]executorRun, 0, len(workers))

	bar := makeProgressBar(len(workers), "Benchmarking worker counts")
	for _, w := range workers {
		run, sum, err := runSquares(tasks, w, log)
		if err != nil {
			return err
		}
		if sum != expected {
			return fmt.Errorf("aggregate mismatch with %d workers: got %d, want %d", w, sum, expected)
		}
		runs = append(runs, run)
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()

	renderExecutorResults(runs, tasks)
	colorPrintf(green, "✓ all %s task aggregates verified (sum = %s)\n",
		formatNumber(tasks), formatNumber(int(expected)))
	return nil
}

// runSquares drives one executor: submit tasks computing i*i, then collect
// every future and sum the results.
func runSquares(tasks, workers int, log *zap.Logger) (executorRun, int64, error) {
	defer timing.Track(log, fmt.Sprintf("executor-bench-%dw", workers))()

	e := executor.New(workers, executor.WithLogger(log))
	defer func() { _ = e.Close(0) }()

	watch := timing.New()

	futures := make([]*executor.Future[int64], 0, tasks)
	for i := 0; i < tasks; i++ {
		i := i
		f, err := executor.Submit(e, func() (int64, error) {
			n := int64(i)
			return n * n, nil
		})
		if err != nil {
			return executorRun{}, 0, err
		}
		futures = append(futures, f)
	}

	var sum int64
	for _, f := range futures {
		v, err := f.Get()
		if err != nil {
			return executorRun{}, 0, err
		}
		sum += v
	}

	_ = watch.Stop()
	total := watch.Elapsed()

	return executorRun{
		workers:    workers,
		total:      total,
		throughput: float64(tasks) / total.Seconds(),
	}, sum, nil
}

func expectedSquareSum(tasks int) int64 {
	var sum int64
	for i := 0; i < tasks; i++ {
		n := int64(i)
		sum += n * n
	}
	return sum
}

func renderExecutorResults(runs []executorRun, tasks int) {
	printSectionHeader("EXECUTOR THROUGHPUT",
		fmt.Sprintf("%s square-number tasks per run", formatNumber(tasks)))

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Workers", "Total Time", "Tasks/sec")

	for _, r := range runs {
		_ = table.Append(
			fmt.Sprintf("%d", r.workers),
			r.total.Round(time.Millisecond).String(),
			formatNumber(int(r.throughput)),
		)
	}

	if err := table.Render(); err != nil {
		colorPrintLn(red, "error rendering results table:", err)
	}
}
