// Package engine is the log processing core: parsing, schema validation,
// aggregate statistics, predicate filtering, and a combined batch pass.
//
// Every operation is a pure function of its input batch. The Processor
// holds no per-call state, so one instance can serve concurrent callers;
// the only tuning knob is the worker count used to fan out over contiguous
// slices of the input.
package engine

import (
	"runtime"

	"github.com/valyala/fastjson"
)

// Processor runs the five batch operations. The zero value is not usable;
// construct with NewProcessor.
type Processor struct {
	workers int
	pool    fastjson.ParserPool
}

// NewProcessor returns a Processor that fans out over the given number of
// workers. workers <= 0 selects the available hardware parallelism.
func NewProcessor(workers int) *Processor {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Processor{workers: workers}
}

// Workers returns the configured fan-out width.
func (p *Processor) Workers() int {
	return p.workers
}
