package engine

import (
	"fmt"

	"github.com/valyala/fastjson"

	"github.com/fluxbit/logfold/internal/model"
)

// Validate checks one line against the schema rules at the given 1-based
// position. It returns nil when the line is valid.
func (p *Processor) Validate(line string, position int) *model.Rejection {
	parser := p.pool.Get()
	defer p.pool.Put(parser)
	return validateLine(parser, line, position)
}

// ValidateLogs checks every line and returns the count of valid lines plus
// the rejections in input order. validCount + len(rejections) always equals
// len(lines): validation never aborts on a bad record.
func (p *Processor) ValidateLogs(lines []string) (int, []model.Rejection) {
	type partial struct {
		valid      int
		rejections []model.Rejection
	}

	partials := make([]partial, p.workers)
	spans := p.fanOut(len(lines), func(slot int, sp span) {
		parser := p.pool.Get()
		defer p.pool.Put(parser)
		for i := sp.start; i < sp.end; i++ {
			if rej := validateLine(parser, lines[i], i+1); rej != nil {
				partials[slot].rejections = append(partials[slot].rejections, *rej)
			} else {
				partials[slot].valid++
			}
		}
	})

	valid := 0
	var rejections []model.Rejection
	for slot := range spans {
		valid += partials[slot].valid
		rejections = append(rejections, partials[slot].rejections...)
	}
	return valid, rejections
}

// validateLine applies the schema checks in fixed order, short-circuiting
// at the first violation so each record reports exactly one reason.
func validateLine(parser *fastjson.Parser, line string, position int) *model.Rejection {
	v, fail := parseLine(parser, line, position)
	if fail != nil {
		return &model.Rejection{
			Position: position,
			Reason:   model.ReasonParseError,
			Detail:   fmt.Sprintf("JSON parse error: %s", fail.Cause),
		}
	}
	if reason, detail := checkValue(v); detail != "" {
		return &model.Rejection{Position: position, Reason: reason, Detail: detail}
	}
	return nil
}

// checkValue runs the semantic checks against the raw JSON value. Working
// on the value rather than a LogRecord keeps "absent" and "present with a
// bad type" distinguishable.
func checkValue(v *fastjson.Value) (model.ReasonCode, string) {
	ts := v.Get("timestamp")
	if ts == nil || ts.Type() == fastjson.TypeNull ||
		(ts.Type() == fastjson.TypeString && len(ts.GetStringBytes()) == 0) {
		return model.ReasonMissingTimestamp, "Missing or empty timestamp"
	}

	level := stringOrEmpty(v.Get("level"))
	if !model.ValidLevel(level) {
		return model.ReasonInvalidLevel, fmt.Sprintf(
			"Invalid log level '%s'. Must be one of: ERROR, WARN, INFO, DEBUG", level)
	}

	if d := v.Get("duration_ms"); d != nil && d.Type() != fastjson.TypeNull {
		f, err := d.Float64()
		if err != nil || f < 0 {
			return model.ReasonInvalidDuration, fmt.Sprintf(
				"Invalid duration_ms %s. Must be >= 0", d.String())
		}
	}

	if s := v.Get("status_code"); s != nil && s.Type() != fastjson.TypeNull {
		code, err := s.Int()
		if err != nil || code < 100 || code > 599 {
			return model.ReasonInvalidStatusCode, fmt.Sprintf(
				"Invalid status_code %s. Must be 100-599", s.String())
		}
	}

	return 0, ""
}

func stringOrEmpty(fv *fastjson.Value) string {
	if fv == nil {
		return ""
	}
	return stringField(fv)
}
