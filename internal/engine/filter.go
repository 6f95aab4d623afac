package engine

import (
	"github.com/fluxbit/logfold/internal/model"
)

// FilterOptions are the three optional predicates, combined with logical
// AND. A nil pointer or empty slice means the predicate is not applied.
type FilterOptions struct {
	// MinLevel keeps records whose severity rank is >= this rank. A record
	// with an absent or unrecognized level ranks as DEBUG for this
	// comparison only; the filter never rejects it for being invalid.
	MinLevel *uint8
	// MinDurationMS keeps records carrying duration_ms >= the threshold.
	// Records without the field fail the predicate.
	MinDurationMS *float64
	// StatusCodes keeps records whose status_code is in the list. Records
	// without the field fail the predicate.
	StatusCodes []int
}

// matches reports whether a record passes every supplied predicate.
func (o FilterOptions) matches(rec *model.LogRecord) bool {
	if o.MinLevel != nil && rec.Rank() < *o.MinLevel {
		return false
	}
	if o.MinDurationMS != nil {
		if rec.DurationMS == nil || *rec.DurationMS < *o.MinDurationMS {
			return false
		}
	}
	if len(o.StatusCodes) > 0 {
		if rec.StatusCode == nil {
			return false
		}
		found := false
		for _, code := range o.StatusCodes {
			if code == *rec.StatusCode {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// FilterLogs returns the records matching every supplied predicate, in
// input order. Lines that fail structural parsing are silently dropped;
// filtering is lenient where validation is strict. With no predicates
// supplied the output is exactly the parseable subset of the input.
func (p *Processor) FilterLogs(lines []string, opts FilterOptions) []model.LogRecord {
	partials := make([][]model.LogRecord, p.workers)
	spans := p.fanOut(len(lines), func(slot int, sp span) {
		parser := p.pool.Get()
		defer p.pool.Put(parser)
		var out []model.LogRecord
		for i := sp.start; i < sp.end; i++ {
			v, fail := parseLine(parser, lines[i], i+1)
			if fail != nil {
				continue
			}
			rec := recordFromValue(v)
			if opts.matches(rec) {
				out = append(out, *rec)
			}
		}
		partials[slot] = out
	})

	var result []model.LogRecord
	for slot := range spans {
		result = append(result, partials[slot]...)
	}
	return result
}
