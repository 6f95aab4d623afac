package model

import "fmt"

// LogRecord is the parsed form of one log line. Timestamp and Level are
// mandatory per the schema; the validator enforces that, not the parser.
// DurationMS and StatusCode are nil when the field is absent or carries a
// JSON type the schema cannot use. Unknown fields are preserved verbatim
// in Extra and never interpreted.
type LogRecord struct {
	Timestamp  string            `json:"timestamp"`
	Level      string            `json:"level"`
	Message    string            `json:"message,omitempty"`
	DurationMS *float64          `json:"duration_ms,omitempty"`
	StatusCode *int              `json:"status_code,omitempty"`
	UserID     string            `json:"user_id,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	Endpoint   string            `json:"endpoint,omitempty"`
	ErrorCode  string            `json:"error_code,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Rank returns the severity rank of the record's level. Records with an
// absent or unrecognized level rank as DEBUG.
func (r *LogRecord) Rank() uint8 {
	rank, _ := EncodeLevel(r.Level)
	return rank
}

// ParseFailure describes a line that could not be decoded as a JSON object.
// Position is the 1-based index of the line in the input batch.
type ParseFailure struct {
	Position int    `json:"position"`
	Raw      string `json:"raw"`
	Cause    string `json:"cause"`
}

func (f *ParseFailure) Error() string {
	return fmt.Sprintf("Line %d: JSON parse error: %s", f.Position, f.Cause)
}

// ReasonCode classifies a validation rejection.
type ReasonCode uint8

const (
	ReasonParseError ReasonCode = iota
	ReasonMissingTimestamp
	ReasonInvalidLevel
	ReasonInvalidDuration
	ReasonInvalidStatusCode
)

func (c ReasonCode) String() string {
	switch c {
	case ReasonParseError:
		return "parse_error"
	case ReasonMissingTimestamp:
		return "missing_timestamp"
	case ReasonInvalidLevel:
		return "invalid_level"
	case ReasonInvalidDuration:
		return "invalid_duration"
	case ReasonInvalidStatusCode:
		return "invalid_status_code"
	default:
		return "unknown"
	}
}

// Rejection is a validation failure tied to one input position. Detail is
// the human-readable explanation; Reason is the machine-readable taxonomy.
type Rejection struct {
	Position int        `json:"position"`
	Reason   ReasonCode `json:"reason"`
	Detail   string     `json:"detail"`
}

// Message renders the rejection the way callers report it.
func (r Rejection) Message() string {
	return fmt.Sprintf("Line %d: %s", r.Position, r.Detail)
}
