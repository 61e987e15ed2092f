package main

import (
	"fmt"

	"github.com/joshuapare/heapkit/heap/script"
	"github.com/joshuapare/heapkit/internal/format"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <script>...",
		Short: "Summarize allocation trace scripts without replaying them",
		Long: `The stats command parses each trace script and reports its operation
mix and memory demand: how many bytes the trace would hold live at its
peak, counting rounded payloads plus one header word per block. No heap is
reserved and no payload bytes move; use it to size --heap-size for run.

Example:
  heapctl stats trace.script
  heapctl stats *.script`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return statsScripts(args)
		},
	}
}

// TraceStats summarizes one parsed trace.
type TraceStats struct {
	Allocs   int
	Reallocs int
	Frees    int

	MaxLive    int // most blocks live at once
	PeakDemand int // peak of live rounded payloads plus headers, in bytes
	FinalLive  int // blocks still live after the last operation
}

func statsScripts(paths []string) error {
	for _, path := range paths {
		printVerbose("Parsing script: %s\n", path)
		s, err := script.ParseFile(path)
		if err != nil {
			return err
		}
		st, err := traceStats(s)
		if err != nil {
			return err
		}
		printInfo("%s: %d ops (%d alloc, %d realloc, %d free)\n",
			path, len(s.Ops), st.Allocs, st.Reallocs, st.Frees)
		printInfo("  peak demand %d bytes across %d blocks, %d still live at end\n",
			st.PeakDemand, st.MaxLive, st.FinalLive)
	}
	return nil
}

// traceStats walks a trace without a heap, tracking the rounded size bound
// to each live ID. Demand counts what the trace asks for; an allocator adds
// fragmentation on top, so peak demand is a lower bound on the heap size the
// trace needs.
func traceStats(s *script.Script) (*TraceStats, error) {
	st := &TraceStats{}
	live := make(map[int]int)
	demand := 0

	for _, op := range s.Ops {
		switch op.Kind {
		case script.OpAlloc:
			if _, ok := live[op.ID]; ok {
				return nil, fmt.Errorf("%s line %d: id %d already live", s.Name, op.Line, op.ID)
			}
			st.Allocs++
			size := format.RoundPayload(op.Size)
			live[op.ID] = size
			demand += format.HeaderSize + size
		case script.OpRealloc:
			old, ok := live[op.ID]
			if !ok {
				return nil, fmt.Errorf("%s line %d: id %d not live", s.Name, op.Line, op.ID)
			}
			st.Reallocs++
			if op.Size == 0 {
				delete(live, op.ID)
				demand -= format.HeaderSize + old
				break
			}
			size := format.RoundPayload(op.Size)
			live[op.ID] = size
			demand += size - old
		case script.OpFree:
			old, ok := live[op.ID]
			if !ok {
				return nil, fmt.Errorf("%s line %d: id %d not live", s.Name, op.Line, op.ID)
			}
			st.Frees++
			delete(live, op.ID)
			demand -= format.HeaderSize + old
		}
		if len(live) > st.MaxLive {
			st.MaxLive = len(live)
		}
		if demand > st.PeakDemand {
			st.PeakDemand = demand
		}
	}
	st.FinalLive = len(live)
	return st, nil
}
