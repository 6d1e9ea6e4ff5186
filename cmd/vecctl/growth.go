package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/veckit/internal/buf"
	"github.com/joshuapare/veckit/vec"
)

var (
	growthFrom  int
	growthSteps int
	growthBits  bool
)

func init() {
	rootCmd.AddCommand(newGrowthCmd())
}

func newGrowthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "growth",
		Short: "Print the capacity growth sequence",
		Long: `The growth command prints the capacities a full vector moves through,
starting from --from, where each step is 2*capacity+1. With --bits the
capacities are those of a bit-packed vector, rounded up to whole bytes.

Example:
  vecctl growth --steps 10
  vecctl growth --from 100 --steps 5 --bits`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrowth()
		},
	}

	cmd.Flags().IntVar(&growthFrom, "from", 0, "Starting capacity")
	cmd.Flags().IntVar(&growthSteps, "steps", 8, "Number of growth steps")
	cmd.Flags().BoolVar(&growthBits, "bits", false, "Use bit-vector capacities")

	return cmd
}

// growthSequence returns the capacities after each of steps growths from
// capacity from. It stops early rather than overflow.
func growthSequence(from, steps int, bits bool) []int {
	out := make([]int, 0, steps)
	c := from
	for range steps {
		next, err := vec.GrowthCapacity(c)
		if err != nil {
			break
		}
		if bits {
			rounded, ok := buf.MulOverflowSafe(buf.CeilDiv(next, 8), 8)
			if !ok {
				break
			}
			next = rounded
		}
		c = next
		out = append(out, c)
	}
	return out
}

func runGrowth() error {
	if growthFrom < 0 || growthSteps < 0 {
		return fmt.Errorf("--from and --steps must be non-negative")
	}
	if growthBits && growthFrom%8 != 0 {
		return fmt.Errorf("bit-vector capacity %d is not a whole number of bytes", growthFrom)
	}

	seq := growthSequence(growthFrom, growthSteps, growthBits)
	if jsonOut {
		return printJSON(map[string]any{"from": growthFrom, "capacities": seq})
	}

	printInfo("%s\n", render(headerStyle, "Growth sequence:"))
	prev := growthFrom
	for i, c := range seq {
		printInfo("  %2d. %s -> %s\n", i+1, grouped(prev), grouped(c))
		prev = c
	}
	return nil
}
