package model

// Severity levels, dictionary encoded. The numeric value doubles as the
// severity rank used by level filtering: DEBUG < INFO < WARN < ERROR.
const (
	LevelDebug uint8 = 0
	LevelInfo  uint8 = 1
	LevelWarn  uint8 = 2
	LevelError uint8 = 3
)

// LevelNames lists the accepted level values in rank order.
var LevelNames = []string{"DEBUG", "INFO", "WARN", "ERROR"}

// EncodeLevel converts a level name to its rank. Matching is case-sensitive:
// the schema fixes the set {ERROR, WARN, INFO, DEBUG} with no aliases.
// Unknown names report ok=false with rank LevelDebug, which is the lenient
// default the filter relies on.
func EncodeLevel(name string) (uint8, bool) {
	switch name {
	case "DEBUG":
		return LevelDebug, true
	case "INFO":
		return LevelInfo, true
	case "WARN":
		return LevelWarn, true
	case "ERROR":
		return LevelError, true
	default:
		return LevelDebug, false
	}
}

// DecodeLevel converts a rank back to its name.
func DecodeLevel(rank uint8) string {
	if int(rank) < len(LevelNames) {
		return LevelNames[rank]
	}
	return "DEBUG"
}

// ValidLevel reports whether name is one of the four schema levels.
func ValidLevel(name string) bool {
	_, ok := EncodeLevel(name)
	return ok
}
