package engine

import (
	"github.com/fluxbit/logfold/internal/model"
)

// BatchProcess runs validation and statistics in a single traversal,
// parsing each line exactly once. The stats and rejection list are
// identical to what independent ComputeStats and ValidateLogs calls would
// produce; that equivalence is a tested property, not an implementation
// accident.
//
// The rejection list is populated even when the error is ErrEmptyPopulation,
// so callers can still see why every line was refused.
func (p *Processor) BatchProcess(lines []string) (model.LogStats, []model.Rejection, error) {
	type partial struct {
		acc        *statsAccumulator
		rejections []model.Rejection
	}

	partials := make([]partial, p.workers)
	spans := p.fanOut(len(lines), func(slot int, sp span) {
		acc := newStatsAccumulator()
		parser := p.pool.Get()
		defer p.pool.Put(parser)
		var rejections []model.Rejection

		for i := sp.start; i < sp.end; i++ {
			v, fail := parseLine(parser, lines[i], i+1)
			if fail != nil {
				rejections = append(rejections, model.Rejection{
					Position: fail.Position,
					Reason:   model.ReasonParseError,
					Detail:   "JSON parse error: " + fail.Cause,
				})
				continue
			}

			// Parsed lines enter the stats population regardless of the
			// validation outcome; the two populations differ by design.
			if reason, detail := checkValue(v); detail != "" {
				rejections = append(rejections, model.Rejection{
					Position: i + 1, Reason: reason, Detail: detail,
				})
			}
			acc.observe(recordFromValue(v))
		}

		partials[slot] = partial{acc: acc, rejections: rejections}
	})

	total := newStatsAccumulator()
	var rejections []model.Rejection
	for slot := range spans {
		total.merge(partials[slot].acc)
		rejections = append(rejections, partials[slot].rejections...)
	}

	stats, err := total.finalize()
	return stats, rejections, err
}
