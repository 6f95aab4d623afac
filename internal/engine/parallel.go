package engine

import "sync"

// span is one contiguous slice of the input batch assigned to a worker.
type span struct {
	start, end int // [start, end)
}

// splitSpans divides n items into at most workers contiguous spans of
// near-equal size. Spans cover the input exactly once and in order, which
// is what keeps merged results identical to a sequential pass.
func splitSpans(n, workers int) []span {
	if n == 0 {
		return nil
	}
	if workers > n {
		workers = n
	}
	spans := make([]span, 0, workers)
	size := n / workers
	rem := n % workers
	start := 0
	for i := 0; i < workers; i++ {
		end := start + size
		if i < rem {
			end++
		}
		spans = append(spans, span{start: start, end: end})
		start = end
	}
	return spans
}

// fanOut runs fn once per span on its own goroutine and blocks until all
// complete. fn receives the span index so workers can write partial results
// into disjoint slots; the final merge then concatenates slots in span
// order. There is no mid-batch cancellation: the join is synchronous.
func (p *Processor) fanOut(n int, fn func(slot int, sp span)) []span {
	spans := splitSpans(n, p.workers)
	if len(spans) <= 1 {
		for i, sp := range spans {
			fn(i, sp)
		}
		return spans
	}

	var wg sync.WaitGroup
	for i, sp := range spans {
		wg.Add(1)
		go func(slot int, sp span) {
			defer wg.Done()
			fn(slot, sp)
		}(i, sp)
	}
	wg.Wait()
	return spans
}
