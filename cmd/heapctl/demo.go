package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newDemoCmd())
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted allocation exercise",
		Long: `The demo command allocates a few blocks, frees one in the middle,
reallocates into the hole, and prints statistics along the way. It finishes
with an integrity check of the block chain.

Example:
  heapctl demo --size 1K`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
}

func runDemo() error {
	fl, cleanup, err := newAllocator()
	if err != nil {
		return err
	}
	defer cleanup() //nolint:errcheck // best-effort region release

	fmt.Println("Testing memory allocation...")

	p1, _, err := fl.Alloc(100)
	if err != nil {
		return err
	}
	p2, _, err := fl.Alloc(200)
	if err != nil {
		return err
	}
	p3, _, err := fl.Alloc(50)
	if err != nil {
		return err
	}
	fmt.Printf("  Allocated 3 blocks (refs %d, %d, %d)\n", p1, p2, p3)
	printStats(os.Stdout, fl)

	fmt.Println("  Freeing the middle block...")
	fl.Free(p2)

	p4, _, err := fl.Alloc(150)
	if err != nil {
		return err
	}
	fmt.Printf("  150-byte allocation landed at ref %d (first fit)\n", p4)
	printStats(os.Stdout, fl)

	fmt.Println("  Freeing everything...")
	fl.Free(p1)
	fl.Free(p3)
	fl.Free(p4)
	printStats(os.Stdout, fl)

	if err := fl.Check(); err != nil {
		return err
	}
	fmt.Println("Memory test completed!")
	return nil
}
