package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/joshuapare/veckit/vec"
	"github.com/joshuapare/veckit/vec/alloc"
	"github.com/joshuapare/veckit/vec/metrics"
)

// fixedBound is the inline capacity used by --strategy fixed.
const fixedBound = 1024

var (
	pushStrategy string
	pushLimit    int
	pushMetrics  bool
)

func init() {
	rootCmd.AddCommand(newPushCmd())
}

func newPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push <count>",
		Short: "Push integers into a vector and report its growth",
		Long: `The push command appends 0..count-1 to an empty vector of int64 and
prints every capacity change followed by a summary.

Strategies:
  heap    growable arena on the Go heap (default)
  fixed   inline arena of 1024 elements
  mapped  arena in an anonymous memory mapping

Example:
  vecctl push 100
  vecctl push 2000 --strategy fixed
  vecctl push 1000000 --strategy mapped --limit 4194304 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(args)
		},
	}

	cmd.Flags().StringVarP(&pushStrategy, "strategy", "s", "heap", "Storage strategy: heap, fixed or mapped")
	cmd.Flags().IntVar(&pushLimit, "limit", 0, "Cap any single arena at this many bytes (0 = no cap)")
	cmd.Flags().BoolVar(&pushMetrics, "metrics", false, "Print allocator metrics in Prometheus text format")

	return cmd
}

type growStep struct {
	From int `json:"from"`
	To   int `json:"to"`
	Size int `json:"size"`
}

type pushResult struct {
	Strategy string     `json:"strategy"`
	Size     int        `json:"size"`
	Capacity int        `json:"capacity"`
	Bytes    int        `json:"bytes"`
	Grows    []growStep `json:"grows"`
	Error    string     `json:"error,omitempty"`
}

func runPush(args []string) error {
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return fmt.Errorf("invalid count %q: must be a non-negative integer", args[0])
	}

	res := &pushResult{Strategy: pushStrategy, Grows: []growStep{}}
	opts := []alloc.Option{
		alloc.WithObserver(alloc.LogObserver(nil)),
		alloc.WithLimit(pushLimit),
	}

	reg := prometheus.NewRegistry()
	if pushMetrics {
		opts = append(opts, alloc.WithObserver(metrics.New(reg)))
	}

	printVerbose("Pushing %s elements (%s strategy)\n", grouped(n), pushStrategy)

	var pushErr error
	switch pushStrategy {
	case "heap":
		v := vec.NewHeap[int64](opts...)
		defer v.Release()
		pushErr = fill(&v, n, res)
	case "fixed":
		v, err := vec.NewFixed[int64, [fixedBound]int64](opts...)
		if err != nil {
			return err
		}
		defer v.Release()
		pushErr = fill(&v, n, res)
	case "mapped":
		v := vec.NewMapped[int64](opts...)
		defer v.Release()
		pushErr = fill(&v, n, res)
	default:
		return fmt.Errorf("unknown strategy %q (want heap, fixed or mapped)", pushStrategy)
	}
	if pushErr != nil {
		res.Error = pushErr.Error()
	}

	if jsonOut {
		if err := printJSON(res); err != nil {
			return err
		}
	} else {
		printPushResult(res)
	}

	if pushMetrics {
		if err := writeMetrics(reg); err != nil {
			return err
		}
	}
	return pushErr
}

// fill pushes 0..n-1 into v and records the final shape in res. It stops at
// the first failure.
func fill[S any, P vec.Storage[int64, S]](v *vec.Vector[int64, S, P], n int, res *pushResult) error {
	var err error
	for i := range n {
		before := v.Cap()
		if err = v.PushBack(int64(i)); err != nil {
			break
		}
		if v.Cap() != before {
			res.Grows = append(res.Grows, growStep{From: before, To: v.Cap(), Size: i})
		}
	}
	res.Size = v.Size()
	res.Capacity = v.Cap()
	res.Bytes = v.Cap() * 8
	return err
}

func printPushResult(res *pushResult) {
	printInfo("%s\n", render(headerStyle, "Growth ("+res.Strategy+"):"))
	if len(res.Grows) == 0 {
		printInfo("  (none)\n")
	}
	for _, g := range res.Grows {
		printInfo("  %s -> %s at size %s\n", grouped(g.From), grouped(g.To), grouped(g.Size))
	}

	printInfo("\n%s\n", render(headerStyle, "Summary:"))
	printInfo("  %s %s\n", render(labelStyle, "Size:    "), grouped(res.Size))
	printInfo("  %s %s\n", render(labelStyle, "Capacity:"), grouped(res.Capacity))
	printInfo("  %s %s\n", render(labelStyle, "Storage: "), humanize.Bytes(uint64(res.Bytes)))
}

func writeMetrics(reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	printInfo("\n")
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(os.Stdout, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
