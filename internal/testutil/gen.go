// Package testutil generates realistic JSONL log batches for tests and
// benchmarks. Distributions follow production traffic shapes: mostly INFO
// and DEBUG, a thin band of errors, durations skewed by level with
// occasional outliers.
package testutil

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"time"
)

var (
	errorMessages = []string{
		"Database connection timeout",
		"Failed to process payment",
		"Authentication service unavailable",
		"Out of memory error",
		"Failed to write to disk",
		"API rate limit exceeded",
	}
	warnMessages = []string{
		"High memory usage detected",
		"Slow database query",
		"Cache miss rate above threshold",
		"Retry attempt 3 of 5",
		"Connection pool nearly exhausted",
	}
	infoMessages = []string{
		"User logged in successfully",
		"Request completed",
		"Database query executed",
		"File uploaded successfully",
		"API request processed",
	}
	debugMessages = []string{
		"Entering function processRequest",
		"Cache lookup for key",
		"Validating user input",
		"Parsing request headers",
		"Serializing response",
	}

	endpoints = []string{"/api/users", "/api/orders", "/api/payments", "/api/search", "/healthz"}
)

type sampleEntry struct {
	Timestamp  string  `json:"timestamp"`
	Level      string  `json:"level"`
	Message    string  `json:"message"`
	DurationMS float64 `json:"duration_ms"`
	StatusCode int     `json:"status_code"`
	UserID     string  `json:"user_id"`
	RequestID  string  `json:"request_id,omitempty"`
	Endpoint   string  `json:"endpoint,omitempty"`
}

// GenerateLines produces n well-formed JSONL records from a fixed seed, so
// test batches are reproducible.
func GenerateLines(n int, seed int64) []string {
	rng := rand.New(rand.NewSource(seed))
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		entry := sampleEntry{
			Timestamp: start.Add(time.Duration(i) * 100 * time.Millisecond).Format(time.RFC3339),
			UserID:    fmt.Sprintf("user_%d", rng.Intn(10000)+1),
		}

		var durLo, durHi float64
		switch roll := rng.Float64(); {
		case roll < 0.05:
			entry.Level = "ERROR"
			entry.Message = errorMessages[rng.Intn(len(errorMessages))]
			entry.StatusCode = []int{500, 502, 503, 504}[rng.Intn(4)]
			durLo, durHi = 500, 5000
		case roll < 0.20:
			entry.Level = "WARN"
			entry.Message = warnMessages[rng.Intn(len(warnMessages))]
			entry.StatusCode = []int{200, 400, 401, 404, 429}[rng.Intn(5)]
			durLo, durHi = 100, 2000
		case roll < 0.70:
			entry.Level = "INFO"
			entry.Message = infoMessages[rng.Intn(len(infoMessages))]
			entry.StatusCode = []int{200, 201, 202, 204}[rng.Intn(4)]
			durLo, durHi = 10, 500
		default:
			entry.Level = "DEBUG"
			entry.Message = debugMessages[rng.Intn(len(debugMessages))]
			entry.StatusCode = 200
			durLo, durHi = 1, 100
		}

		entry.DurationMS = durLo + rng.Float64()*(durHi-durLo)
		if rng.Float64() < 0.05 {
			// Tail outliers keep the percentile spread honest.
			entry.DurationMS = durHi * (1 + 4*rng.Float64())
		}

		if rng.Float64() < 0.3 {
			entry.RequestID = fmt.Sprintf("req_%d", rng.Intn(900000)+100000)
		}
		if rng.Float64() < 0.5 {
			entry.Endpoint = endpoints[rng.Intn(len(endpoints))]
		}

		b, _ := json.Marshal(entry)
		lines = append(lines, string(b))
	}
	return lines
}

// GenerateMixed returns n lines where every k-th line is malformed, for
// exercising per-line failure isolation.
func GenerateMixed(n int, k int, seed int64) []string {
	lines := GenerateLines(n, seed)
	for i := k - 1; i < len(lines); i += k {
		lines[i] = "{not valid json"
	}
	return lines
}
