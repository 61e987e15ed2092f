package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/heapkit/heap/script"
	"github.com/joshuapare/heapkit/pkg/heap"
	"github.com/spf13/cobra"
)

var (
	runHeapSize      int
	runValidateEvery int
	runDump          bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().IntVar(&runHeapSize, "heap-size", 1<<20, "Heap segment size in bytes")
	cmd.Flags().
		IntVar(&runValidateEvery, "validate-every", 1, "Audit heap invariants every N operations (0 = final audit only)")
	cmd.Flags().BoolVar(&runDump, "dump", false, "Dump the block layout after the replay")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>...",
		Short: "Replay allocation trace scripts against a fresh heap",
		Long: `The run command reserves a heap segment, replays each trace script
against it, and audits the heap invariants as it goes. Every script runs on
a freshly initialized heap.

Script format (one request per line, '#' starts a comment):
  a <id> <size>   allocate <size> bytes as <id>
  r <id> <size>   resize <id> to <size> bytes
  f <id>          release <id>

Example:
  heapctl run trace.script
  heapctl run --heap-size 65536 --validate-every 50 *.script`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScripts(args)
		},
	}
}

func runScripts(paths []string) error {
	for _, path := range paths {
		if err := runOne(path); err != nil {
			return err
		}
	}
	return nil
}

func runOne(path string) error {
	printVerbose("Parsing script: %s\n", path)
	s, err := script.ParseFile(path)
	if err != nil {
		return err
	}

	h, err := heap.New(runHeapSize, heap.Options{})
	if err != nil {
		return fmt.Errorf("reserve %d byte heap: %w", runHeapSize, err)
	}
	defer h.Close()

	r := script.NewRunner(h.Core())
	r.ValidateEvery = runValidateEvery
	res, err := r.Run(s)
	if err != nil {
		return err
	}

	printInfo("%s: %d ops, peak %d of %d bytes in use (%.1f%%)\n",
		path, res.Ops, res.PeakUsed, h.Size(),
		100*float64(res.PeakUsed)/float64(h.Size()))
	if verbose {
		st := h.Stats()
		printVerbose("  alloc=%d free=%d realloc=%d splits=%d merges=%d free-blocks=%d\n",
			st.AllocCalls, st.FreeCalls, st.ReallocCalls, st.Splits, st.Merges, st.FreeBlocks)
	}
	if runDump {
		h.Dump(os.Stdout)
	}
	return nil
}
