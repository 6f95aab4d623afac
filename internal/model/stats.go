package model

import "fmt"

// LogStats is the aggregate over one batch. It is built once per call and
// never mutated afterwards; recomputation produces a fresh value.
//
// TotalCount covers every line that parsed, including records whose level
// is outside the schema set; such records increment no level bucket, so
// DEBUG is implicitly TotalCount minus the three stored buckets only when
// every level was recognized.
type LogStats struct {
	TotalCount int `json:"total_count"`
	ErrorCount int `json:"error_count"`
	WarnCount  int `json:"warn_count"`
	InfoCount  int `json:"info_count"`

	AvgDurationMS float64 `json:"avg_duration_ms"`
	MinDurationMS float64 `json:"min_duration_ms"`
	MaxDurationMS float64 `json:"max_duration_ms"`
	P50DurationMS float64 `json:"p50_duration_ms"`
	P95DurationMS float64 `json:"p95_duration_ms"`
	P99DurationMS float64 `json:"p99_duration_ms"`

	StatusCodeDistribution map[int]int `json:"status_code_distribution"`
	ErrorCountByCode       map[int]int `json:"error_count_by_code"`
}

// Summary returns a multi-line human-readable digest.
func (s LogStats) Summary() string {
	return fmt.Sprintf(
		"Total logs: %d\n"+
			"Error count: %d\n"+
			"Warning count: %d\n"+
			"Info count: %d\n"+
			"Average duration: %.2fms\n"+
			"P95 duration: %.2fms\n"+
			"P99 duration: %.2fms",
		s.TotalCount, s.ErrorCount, s.WarnCount, s.InfoCount,
		s.AvgDurationMS, s.P95DurationMS, s.P99DurationMS)
}
