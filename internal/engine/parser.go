package engine

import (
	"math"

	"github.com/valyala/fastjson"

	"github.com/fluxbit/logfold/internal/model"
)

// ParseResult is the outcome of parsing one line: exactly one of Record or
// Failure is set.
type ParseResult struct {
	Record  *model.LogRecord
	Failure *model.ParseFailure
}

// Parse decodes a single line at the given 1-based position. Parsing is
// structural only: any JSON object succeeds, even one missing every schema
// field. Semantic rules (level set, numeric ranges) belong to Validate.
func (p *Processor) Parse(line string, position int) ParseResult {
	parser := p.pool.Get()
	defer p.pool.Put(parser)

	v, fail := parseLine(parser, line, position)
	if fail != nil {
		return ParseResult{Failure: fail}
	}
	return ParseResult{Record: recordFromValue(v)}
}

// ParseLogs decodes a batch, one result per input line, order preserved.
// A malformed line is isolated to its own position and never aborts the
// batch.
func (p *Processor) ParseLogs(lines []string) []ParseResult {
	results := make([]ParseResult, len(lines))
	p.fanOut(len(lines), func(_ int, sp span) {
		parser := p.pool.Get()
		defer p.pool.Put(parser)
		for i := sp.start; i < sp.end; i++ {
			v, fail := parseLine(parser, lines[i], i+1)
			if fail != nil {
				results[i] = ParseResult{Failure: fail}
				continue
			}
			// The fastjson value is only valid until the parser is
			// reused, so the record is materialized before the next
			// iteration.
			results[i] = ParseResult{Record: recordFromValue(v)}
		}
	})
	return results
}

// parseLine decodes one line into a fastjson object value, or a
// ParseFailure when the text is not a well-formed JSON object.
func parseLine(parser *fastjson.Parser, line string, position int) (*fastjson.Value, *model.ParseFailure) {
	v, err := parser.Parse(line)
	if err != nil {
		return nil, &model.ParseFailure{Position: position, Raw: line, Cause: err.Error()}
	}
	if v.Type() != fastjson.TypeObject {
		return nil, &model.ParseFailure{Position: position, Raw: line, Cause: "not a JSON object"}
	}
	return v, nil
}

// recordFromValue extracts the typed schema fields from an object value.
// Fields carrying an unusable JSON type are treated as absent here; the
// validator reports them from the raw value, not from the record. Unknown
// keys are preserved in Extra.
func recordFromValue(v *fastjson.Value) *model.LogRecord {
	rec := &model.LogRecord{}
	obj, err := v.Object()
	if err != nil {
		return rec
	}

	obj.Visit(func(key []byte, fv *fastjson.Value) {
		switch string(key) {
		case "timestamp":
			rec.Timestamp = stringField(fv)
		case "level":
			rec.Level = stringField(fv)
		case "message":
			rec.Message = stringField(fv)
		case "duration_ms":
			if fv.Type() == fastjson.TypeNumber {
				d := fv.GetFloat64()
				rec.DurationMS = &d
			}
		case "status_code":
			if fv.Type() == fastjson.TypeNumber {
				f := fv.GetFloat64()
				if f == math.Trunc(f) {
					code := int(f)
					rec.StatusCode = &code
				}
			}
		case "user_id":
			rec.UserID = stringField(fv)
		case "request_id":
			rec.RequestID = stringField(fv)
		case "endpoint":
			rec.Endpoint = stringField(fv)
		case "error_code":
			rec.ErrorCode = stringField(fv)
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[string(key)] = rawField(fv)
		}
	})
	return rec
}

// stringField returns the value as a plain string, or "" for any
// non-string type.
func stringField(fv *fastjson.Value) string {
	if fv.Type() == fastjson.TypeString {
		return string(fv.GetStringBytes())
	}
	return ""
}

// rawField preserves a value of arbitrary type: strings unquoted,
// everything else as its JSON text.
func rawField(fv *fastjson.Value) string {
	if fv.Type() == fastjson.TypeString {
		return string(fv.GetStringBytes())
	}
	return fv.String()
}
