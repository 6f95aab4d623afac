// Package pipeline is the orchestration layer around the processing core:
// it loads batches from files, runs them through the engine, applies the
// alerting threshold, and writes reports. All file and network concerns
// live here; the core never touches either.
package pipeline

import (
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fluxbit/logfold/internal/config"
	"github.com/fluxbit/logfold/internal/engine"
	"github.com/fluxbit/logfold/internal/model"
)

// Pipeline wires the processing core to its configuration and metrics.
// Safe for concurrent use: it holds no per-batch state.
type Pipeline struct {
	proc    *engine.Processor
	cfg     config.Config
	metrics *Metrics
}

// New builds a Pipeline. metrics may be nil to disable instrumentation.
func New(cfg config.Config, metrics *Metrics) *Pipeline {
	return &Pipeline{
		proc:    engine.NewProcessor(cfg.Workers),
		cfg:     cfg,
		metrics: metrics,
	}
}

// Processor exposes the underlying core for callers that need the
// individual operations rather than the full batch pass.
func (p *Pipeline) Processor() *engine.Processor {
	return p.proc
}

// Result is the outcome of one processed batch.
type Result struct {
	BatchID    string         `json:"batch_id"`
	Lines      int            `json:"lines"`
	Stats      model.LogStats `json:"stats"`
	Rejections []string       `json:"rejections"`
	ElapsedMS  float64        `json:"elapsed_ms"`
}

// ProcessBatch runs validation and statistics over the batch, logs an
// alert when the rejection count exceeds the configured threshold, and
// summarizes recurring error messages.
func (p *Pipeline) ProcessBatch(lines []string) (*Result, error) {
	start := time.Now()

	stats, rejections, err := p.proc.BatchProcess(lines)
	elapsed := time.Since(start)

	if p.metrics != nil {
		p.metrics.observeBatch(len(lines), rejections, elapsed)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		BatchID:   uuid.NewString(),
		Lines:     len(lines),
		Stats:     stats,
		ElapsedMS: float64(elapsed.Microseconds()) / 1000.0,
	}
	for _, rej := range rejections {
		res.Rejections = append(res.Rejections, rej.Message())
	}

	log.Printf("Processed %d logs in %.2fms (%d rejections)",
		stats.TotalCount, res.ElapsedMS, len(rejections))

	if len(rejections) > p.cfg.ErrorThreshold {
		p.alert(rejections)
	}
	if stats.ErrorCount > 0 {
		p.analyzeErrors(lines)
	}

	return res, nil
}

// alert reports a batch whose rejection count crossed the threshold.
// Responding to the alert (paging, ticketing) is the caller's business.
func (p *Pipeline) alert(rejections []model.Rejection) {
	log.Printf("ALERT: rejection count %d exceeds threshold %d",
		len(rejections), p.cfg.ErrorThreshold)
	for i, rej := range rejections {
		if i == 5 {
			break
		}
		log.Printf("  - %s", rej.Message())
	}
}

// messageCount pairs an error message with its occurrence count.
type messageCount struct {
	Message string
	Count   int
}

// analyzeErrors logs the most frequent ERROR-level messages in the batch.
func (p *Pipeline) analyzeErrors(lines []string) {
	minLevel := model.LevelError
	records := p.proc.FilterLogs(lines, engine.FilterOptions{MinLevel: &minLevel})

	for _, mc := range topMessages(records, 5) {
		log.Printf("  [%4dx] %s", mc.Count, mc.Message)
	}
}

// topMessages tallies record messages and returns the n most frequent,
// ties broken alphabetically for stable output.
func topMessages(records []model.LogRecord, n int) []messageCount {
	counts := make(map[string]int)
	for _, rec := range records {
		msg := rec.Message
		if msg == "" {
			msg = "Unknown"
		}
		counts[msg]++
	}

	out := make([]messageCount, 0, len(counts))
	for msg, c := range counts {
		out = append(out, messageCount{Message: msg, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Message < out[j].Message
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}
