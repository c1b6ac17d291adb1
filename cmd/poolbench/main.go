// Command poolbench exercises the poolkit primitives under load and renders
// throughput tables, replacing ad-hoc benchmark mains with one CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	root := &cobra.Command{
		Use:          "poolbench",
		Short:        "Benchmarks for the poolkit executor and block pool",
		SilenceUsage: true,
	}

	root.AddCommand(newExecutorCmd(), newBlockpoolCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger returns a development logger when verbose is set, a no-op logger
// otherwise.
func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return l
}
