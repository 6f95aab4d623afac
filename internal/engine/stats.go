package engine

import (
	"errors"
	"sort"

	"github.com/fluxbit/logfold/internal/model"
)

// ErrEmptyPopulation is returned by ComputeStats and BatchProcess when not
// a single line in the batch parses: averages and percentiles are
// undefined over an empty set.
var ErrEmptyPopulation = errors.New("no valid log entries found")

// statsAccumulator is a partial aggregate over one slice of the batch.
// Merging accumulators is associative and commutative (counts and maps
// sum, duration lists concatenate), which is what makes the worker
// fan-out equivalent to a sequential pass.
type statsAccumulator struct {
	total      int
	errorCount int
	warnCount  int
	infoCount  int

	durations []float64

	statusDist  map[int]int
	errorByCode map[int]int
}

func newStatsAccumulator() *statsAccumulator {
	return &statsAccumulator{
		statusDist:  make(map[int]int),
		errorByCode: make(map[int]int),
	}
}

// observe folds one parsed record into the aggregate. Records with a level
// outside the schema set still count toward the total but land in no level
// bucket; that mirrors the validation/statistics population asymmetry the
// schema fixes.
func (a *statsAccumulator) observe(rec *model.LogRecord) {
	a.total++

	switch rec.Level {
	case "ERROR":
		a.errorCount++
	case "WARN":
		a.warnCount++
	case "INFO":
		a.infoCount++
	}

	if rec.DurationMS != nil {
		a.durations = append(a.durations, *rec.DurationMS)
	}

	if rec.StatusCode != nil {
		code := *rec.StatusCode
		a.statusDist[code]++
		if code >= 400 {
			a.errorByCode[code]++
		}
	}
}

// merge folds another partial into a. Partials must be merged in span
// order so the concatenated duration list matches the sequential one.
func (a *statsAccumulator) merge(b *statsAccumulator) {
	a.total += b.total
	a.errorCount += b.errorCount
	a.warnCount += b.warnCount
	a.infoCount += b.infoCount
	a.durations = append(a.durations, b.durations...)
	for code, n := range b.statusDist {
		a.statusDist[code] += n
	}
	for code, n := range b.errorByCode {
		a.errorByCode[code] += n
	}
}

// finalize sorts the duration population once and produces the immutable
// LogStats. Duration statistics are all 0.0 when no record carried
// duration_ms.
func (a *statsAccumulator) finalize() (model.LogStats, error) {
	if a.total == 0 {
		return model.LogStats{}, ErrEmptyPopulation
	}

	stats := model.LogStats{
		TotalCount:             a.total,
		ErrorCount:             a.errorCount,
		WarnCount:              a.warnCount,
		InfoCount:              a.infoCount,
		StatusCodeDistribution: a.statusDist,
		ErrorCountByCode:       a.errorByCode,
	}

	if len(a.durations) > 0 {
		sort.Float64s(a.durations)

		sum := 0.0
		for _, d := range a.durations {
			sum += d
		}
		stats.AvgDurationMS = sum / float64(len(a.durations))
		stats.MinDurationMS = a.durations[0]
		stats.MaxDurationMS = a.durations[len(a.durations)-1]
		stats.P50DurationMS = nearestRank(a.durations, 0.50)
		stats.P95DurationMS = nearestRank(a.durations, 0.95)
		stats.P99DurationMS = nearestRank(a.durations, 0.99)
	}

	return stats, nil
}

// nearestRank indexes the sorted population at floor(n*q), clamped to the
// last element. No interpolation between adjacent values.
func nearestRank(sorted []float64, q float64) float64 {
	idx := int(float64(len(sorted)) * q)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// ComputeStats aggregates the batch: counts by level, duration
// percentiles, and status-code distributions. Lines that fail to parse are
// silently excluded from the population; the stats answer what the
// valid-shaped records show, while malformed-line accounting belongs to
// ValidateLogs.
func (p *Processor) ComputeStats(lines []string) (model.LogStats, error) {
	partials := make([]*statsAccumulator, p.workers)
	spans := p.fanOut(len(lines), func(slot int, sp span) {
		acc := newStatsAccumulator()
		parser := p.pool.Get()
		defer p.pool.Put(parser)
		for i := sp.start; i < sp.end; i++ {
			v, fail := parseLine(parser, lines[i], i+1)
			if fail != nil {
				continue
			}
			acc.observe(recordFromValue(v))
		}
		partials[slot] = acc
	})

	total := newStatsAccumulator()
	for slot := range spans {
		total.merge(partials[slot])
	}
	return total.finalize()
}
