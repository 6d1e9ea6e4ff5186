package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/veckit/vec"
	"github.com/joshuapare/veckit/vec/alloc"
)

var (
	bitsPops     int
	bitsSets     []string
	bitsStrategy string
)

func init() {
	rootCmd.AddCommand(newBitsCmd())
}

func newBitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bits <pattern>",
		Short: "Build a bit-packed vector and manipulate it",
		Long: `The bits command pushes each character of pattern ('0' or '1') into a
bit-packed vector, then pops bits from the end and assigns individual bits.
Pops are applied before assignments. Assignments are bounds-checked.

Example:
  vecctl bits 10010
  vecctl bits 10010 --pop 2 --set 2=1
  vecctl bits 1111111111 --strategy fixed --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBits(args)
		},
	}

	cmd.Flags().IntVar(&bitsPops, "pop", 0, "Number of bits to pop from the end")
	cmd.Flags().StringArrayVar(&bitsSets, "set", nil, "Assign a bit as index=0|1 (repeatable)")
	cmd.Flags().StringVarP(&bitsStrategy, "strategy", "s", "heap", "Storage strategy: heap or fixed (8 bytes)")

	return cmd
}

type bitAssign struct {
	pos int
	val bool
}

type bitsResult struct {
	Bits     string `json:"bits"`
	Size     int    `json:"size"`
	Capacity int    `json:"capacity"`
	Bytes    string `json:"bytes"`
}

func runBits(args []string) error {
	pattern := args[0]
	for i, c := range pattern {
		if c != '0' && c != '1' {
			return fmt.Errorf("invalid pattern character %q at offset %d", c, i)
		}
	}
	sets, err := parseAssigns(bitsSets)
	if err != nil {
		return err
	}
	if bitsPops < 0 || bitsPops > len(pattern) {
		return fmt.Errorf("cannot pop %d bits from a pattern of %d", bitsPops, len(pattern))
	}

	opts := []alloc.Option{alloc.WithObserver(alloc.LogObserver(nil))}

	var res bitsResult
	switch bitsStrategy {
	case "heap":
		b := vec.NewBools(opts...)
		defer b.Release()
		res, err = applyBits(&b, pattern, bitsPops, sets)
	case "fixed":
		b, ferr := vec.NewFixedBits[[8]byte](opts...)
		if ferr != nil {
			return ferr
		}
		defer b.Release()
		res, err = applyBits(&b, pattern, bitsPops, sets)
	default:
		return fmt.Errorf("unknown strategy %q (want heap or fixed)", bitsStrategy)
	}
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(res)
	}

	printInfo("%s\n", render(headerStyle, "Bits:"))
	printInfo("  %s\n", colorBits(res.Bits))
	printInfo("  %s %s\n", render(labelStyle, "Size:    "), grouped(res.Size))
	printInfo("  %s %s\n", render(labelStyle, "Capacity:"), grouped(res.Capacity))
	printInfo("  %s %s\n", render(labelStyle, "Bytes:   "), res.Bytes)
	return nil
}

// applyBits builds the vector described by pattern, pops and assignments.
func applyBits[S any, P vec.Storage[byte, S]](b *vec.Bits[S, P], pattern string, pops int, sets []bitAssign) (bitsResult, error) {
	for _, c := range pattern {
		if err := b.PushBack(c == '1'); err != nil {
			return bitsResult{}, err
		}
	}
	for range pops {
		b.PopBack()
	}
	for _, s := range sets {
		if err := b.Set(s.pos, s.val); err != nil {
			return bitsResult{}, err
		}
	}

	hex := make([]string, 0, b.ByteLen())
	for _, x := range b.Bytes() {
		hex = append(hex, fmt.Sprintf("%02x", x))
	}
	return bitsResult{
		Bits:     b.String(),
		Size:     b.Size(),
		Capacity: b.Cap(),
		Bytes:    strings.Join(hex, " "),
	}, nil
}

func parseAssigns(raw []string) ([]bitAssign, error) {
	out := make([]bitAssign, 0, len(raw))
	for _, r := range raw {
		idx, val, ok := strings.Cut(r, "=")
		if !ok {
			return nil, fmt.Errorf("invalid assignment %q: want index=0|1", r)
		}
		pos, err := strconv.Atoi(idx)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment index %q: %w", idx, err)
		}
		v, err := strconv.ParseBool(val)
		if err != nil {
			return nil, fmt.Errorf("invalid assignment value %q: %w", val, err)
		}
		out = append(out, bitAssign{pos: pos, val: v})
	}
	return out, nil
}

func colorBits(bits string) string {
	if noColor {
		return bits
	}
	var sb strings.Builder
	for _, c := range bits {
		if c == '1' {
			sb.WriteString(render(setBitStyle, "1"))
		} else {
			sb.WriteString(render(labelStyle, "0"))
		}
	}
	return sb.String()
}
