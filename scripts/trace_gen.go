// Command trace_gen emits random allocation trace scripts for heapctl run.
//
// Generated traces keep a bounded set of live IDs and bias toward
// allocation early and release late, so a trace exercises growth,
// fragmentation, and drain phases against a fixed-size heap.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
)

func main() {
	var (
		ops     = flag.Int("ops", 200, "operations to generate")
		maxLive = flag.Int("max-live", 16, "maximum simultaneously live blocks")
		maxSize = flag.Int("max-size", 512, "largest request size in bytes")
		seed    = flag.Int64("seed", 1, "random seed")
	)
	flag.Parse()

	rng := rand.New(rand.NewSource(*seed))
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	fmt.Fprintf(out, "# generated: ops=%d max-live=%d max-size=%d seed=%d\n",
		*ops, *maxLive, *maxSize, *seed)

	live := map[int]bool{}
	nextID := 0
	for i := 0; i < *ops; i++ {
		// Allocation probability falls as the trace progresses.
		allocBias := 1.0 - float64(i)/float64(*ops)
		switch {
		case len(live) == 0 || (len(live) < *maxLive && rng.Float64() < allocBias):
			id := nextID
			nextID++
			live[id] = true
			fmt.Fprintf(out, "a %d %d\n", id, 1+rng.Intn(*maxSize))
		case rng.Float64() < 0.3:
			id := pickLive(rng, live)
			fmt.Fprintf(out, "r %d %d\n", id, 1+rng.Intn(*maxSize))
		default:
			id := pickLive(rng, live)
			delete(live, id)
			fmt.Fprintf(out, "f %d\n", id)
		}
	}
	// Drain whatever is still live so the trace ends on an empty heap.
	ids := make([]int, 0, len(live))
	for id := range live {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		fmt.Fprintf(out, "f %d\n", id)
	}
}

func pickLive(rng *rand.Rand, live map[int]bool) int {
	ids := make([]int, 0, len(live))
	for id := range live {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids[rng.Intn(len(ids))]
}
