package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/heapkit/heap/alloc"
)

func init() {
	rootCmd.AddCommand(newShellCmd())
}

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive allocator shell",
		Long: `The shell command starts an interactive session against a fresh
region. Allocations are tracked by numeric handle so they can be freed or
resized later.

Example:
  heapctl shell --size 64K
  > alloc 100
  #1 = ref 8 (100 bytes)
  > mem
  > free 1
  > exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// session holds the live allocations of one shell run, keyed by handle.
type session struct {
	fl     *alloc.FreeList
	refs   map[int]alloc.Ref
	nextID int
}

func runShell(in io.Reader, out io.Writer) error {
	fl, cleanup, err := newAllocator()
	if err != nil {
		return err
	}
	defer cleanup() //nolint:errcheck // best-effort region release

	s := &session{fl: fl, refs: make(map[int]alloc.Ref), nextID: 1}

	fmt.Fprintf(out, "heapkit shell - %d byte region\n", fl.Stats().Capacity)
	fmt.Fprintf(out, "Type 'help' for commands, 'mem' for memory stats.\n\n")

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}

		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "exit", "quit":
			return nil
		case "help":
			shellHelp(out)
		case "echo":
			fmt.Fprintln(out, strings.Join(fields[1:], " "))
		case "mem":
			printStats(out, s.fl)
		case "blocks":
			printBlocks(out, s.fl)
		case "alloc":
			s.cmdAlloc(out, fields[1:])
		case "calloc":
			s.cmdCalloc(out, fields[1:])
		case "realloc":
			s.cmdRealloc(out, fields[1:])
		case "free":
			s.cmdFree(out, fields[1:])
		default:
			fmt.Fprintf(out, "Unknown command: %s\n", fields[0])
			fmt.Fprintf(out, "Type 'help' for available commands.\n")
		}
	}
}

func shellHelp(out io.Writer) {
	fmt.Fprint(out, `Available commands:
  help                  - Show this help message
  mem                   - Show memory statistics
  blocks                - Dump the block chain
  alloc <bytes>         - Allocate a block, returns a handle
  calloc <count> <size> - Allocate zeroed elements
  realloc <id> <bytes>  - Resize an allocation
  free <id>             - Free an allocation
  echo <text>           - Echo text back
  exit                  - Leave the shell
`)
}

func (s *session) cmdAlloc(out io.Writer, args []string) {
	size, ok := parseI32(out, args, 0, "alloc <bytes>")
	if !ok {
		return
	}
	ref, buf, err := s.fl.Alloc(size)
	if err != nil {
		fmt.Fprintf(out, "alloc failed: %v\n", err)
		return
	}
	id := s.track(ref)
	fmt.Fprintf(out, "#%d = ref %d (%d bytes)\n", id, ref, len(buf))
}

func (s *session) cmdCalloc(out io.Writer, args []string) {
	count, ok := parseI32(out, args, 0, "calloc <count> <size>")
	if !ok {
		return
	}
	elem, ok := parseI32(out, args, 1, "calloc <count> <size>")
	if !ok {
		return
	}
	ref, buf, err := s.fl.AllocZeroed(count, elem)
	if err != nil {
		fmt.Fprintf(out, "calloc failed: %v\n", err)
		return
	}
	id := s.track(ref)
	fmt.Fprintf(out, "#%d = ref %d (%d bytes, zeroed)\n", id, ref, len(buf))
}

func (s *session) cmdRealloc(out io.Writer, args []string) {
	id, ok := parseI32(out, args, 0, "realloc <id> <bytes>")
	if !ok {
		return
	}
	size, ok := parseI32(out, args, 1, "realloc <id> <bytes>")
	if !ok {
		return
	}
	ref, exists := s.refs[int(id)]
	if !exists {
		fmt.Fprintf(out, "no allocation #%d\n", id)
		return
	}
	newRef, buf, err := s.fl.Realloc(ref, size)
	if err != nil {
		fmt.Fprintf(out, "realloc failed: %v (original untouched)\n", err)
		return
	}
	if size == 0 {
		delete(s.refs, int(id))
		fmt.Fprintf(out, "#%d freed\n", id)
		return
	}
	s.refs[int(id)] = newRef
	fmt.Fprintf(out, "#%d = ref %d (%d bytes)\n", id, newRef, len(buf))
}

func (s *session) cmdFree(out io.Writer, args []string) {
	id, ok := parseI32(out, args, 0, "free <id>")
	if !ok {
		return
	}
	ref, exists := s.refs[int(id)]
	if !exists {
		fmt.Fprintf(out, "no allocation #%d\n", id)
		return
	}
	s.fl.Free(ref)
	delete(s.refs, int(id))
	fmt.Fprintf(out, "#%d freed\n", id)
}

func (s *session) track(ref alloc.Ref) int {
	id := s.nextID
	s.nextID++
	s.refs[id] = ref
	return id
}

func parseI32(out io.Writer, args []string, i int, usage string) (int32, bool) {
	if i >= len(args) {
		fmt.Fprintf(out, "usage: %s\n", usage)
		return 0, false
	}
	n, err := strconv.ParseInt(args[i], 10, 32)
	if err != nil {
		fmt.Fprintf(out, "not a number: %s\n", args[i])
		return 0, false
	}
	return int32(n), true
}
