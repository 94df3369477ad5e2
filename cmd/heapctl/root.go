package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/heap/alloc"
)

var (
	// Global flags
	heapSize string
	useMmap  bool
)

var rootCmd = &cobra.Command{
	Use:   "heapctl",
	Short: "Exercise and inspect a heapkit allocator",
	Long: `heapctl drives a heapkit free-list allocator over a session-scoped
memory region. It provides an interactive shell for issuing allocation
commands and a scripted demo, with block-level inspection and usage
statistics.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().
		StringVar(&heapSize, "size", "1M", "Region capacity (bytes, with optional K/M suffix)")
	rootCmd.PersistentFlags().
		BoolVar(&useMmap, "mmap", false, "Back the region with an anonymous memory mapping")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newAllocator builds the region and allocator from the global flags.
func newAllocator() (*alloc.FreeList, func() error, error) {
	capacity, err := parseSize(heapSize)
	if err != nil {
		return nil, nil, err
	}

	var r *heap.Region
	if useMmap {
		r, err = heap.Map(capacity)
	} else {
		r, err = heap.New(capacity)
	}
	if err != nil {
		return nil, nil, err
	}

	fl, err := alloc.New(r)
	if err != nil {
		_ = r.Close()
		return nil, nil, err
	}
	return fl, r.Close, nil
}

// parseSize parses a byte count with an optional K or M suffix.
func parseSize(s string) (int, error) {
	mult := 1
	upper := strings.ToUpper(strings.TrimSpace(s))
	switch {
	case strings.HasSuffix(upper, "M"):
		mult = 1 << 20
		upper = strings.TrimSuffix(upper, "M")
	case strings.HasSuffix(upper, "K"):
		mult = 1 << 10
		upper = strings.TrimSuffix(upper, "K")
	}
	n, err := strconv.Atoi(upper)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * mult, nil
}

// printStats renders the total/used/free summary plus block counts.
func printStats(out io.Writer, fl *alloc.FreeList) {
	s := fl.Stats()
	fmt.Fprintf(out, "Memory Statistics:\n")
	fmt.Fprintf(out, "  Total:        %d bytes\n", s.Capacity)
	fmt.Fprintf(out, "  Used:         %d bytes\n", s.Used)
	fmt.Fprintf(out, "  Free:         %d bytes\n", s.Free)
	fmt.Fprintf(out, "  Blocks:       %d (%d free)\n", s.Blocks, s.FreeBlocks)
	fmt.Fprintf(out, "  Largest free: %d bytes\n", s.LargestFree)
}

// printBlocks dumps the block chain in address order.
func printBlocks(out io.Writer, fl *alloc.FreeList) {
	fmt.Fprintf(out, "%-10s %-10s %s\n", "REF", "SIZE", "STATE")
	for _, b := range fl.Blocks() {
		state := "used"
		if b.Free {
			state = "free"
		}
		fmt.Fprintf(out, "%-10d %-10d %s\n", b.Ref, b.Size, state)
	}
}
