package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxbit/logfold/internal/model"
	"github.com/fluxbit/logfold/internal/testutil"
)

func TestValidateLogs_SchemaExample(t *testing.T) {
	p := NewProcessor(1)

	lines := []string{
		`{"timestamp":"2024-01-15T10:30:00Z","level":"INFO","duration_ms":45.2,"status_code":200}`,
		`{"timestamp":"","level":"ERROR"}`,
		`{"timestamp":"2024-01-15T10:30:01Z","level":"BAD"}`,
	}

	valid, rejections := p.ValidateLogs(lines)
	assert.Equal(t, 1, valid)
	require.Len(t, rejections, 2)

	assert.Equal(t, 2, rejections[0].Position)
	assert.Equal(t, model.ReasonMissingTimestamp, rejections[0].Reason)
	assert.Equal(t, "Line 2: Missing or empty timestamp", rejections[0].Message())

	assert.Equal(t, 3, rejections[1].Position)
	assert.Equal(t, model.ReasonInvalidLevel, rejections[1].Reason)
	assert.Contains(t, rejections[1].Detail, "Invalid log level 'BAD'")
}

func TestValidate_ReasonTaxonomy(t *testing.T) {
	p := NewProcessor(1)

	tests := []struct {
		name   string
		line   string
		reason model.ReasonCode
	}{
		{"parse error", `{nope`, model.ReasonParseError},
		{"missing timestamp field", `{"level":"INFO"}`, model.ReasonMissingTimestamp},
		{"null timestamp", `{"timestamp":null,"level":"INFO"}`, model.ReasonMissingTimestamp},
		{"missing level", `{"timestamp":"t"}`, model.ReasonInvalidLevel},
		{"lowercase level", `{"timestamp":"t","level":"info"}`, model.ReasonInvalidLevel},
		{"negative duration", `{"timestamp":"t","level":"INFO","duration_ms":-1}`, model.ReasonInvalidDuration},
		{"string duration", `{"timestamp":"t","level":"INFO","duration_ms":"fast"}`, model.ReasonInvalidDuration},
		{"status too low", `{"timestamp":"t","level":"INFO","status_code":99}`, model.ReasonInvalidStatusCode},
		{"status too high", `{"timestamp":"t","level":"INFO","status_code":600}`, model.ReasonInvalidStatusCode},
		{"fractional status", `{"timestamp":"t","level":"INFO","status_code":200.5}`, model.ReasonInvalidStatusCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej := p.Validate(tt.line, 5)
			require.NotNil(t, rej)
			assert.Equal(t, tt.reason, rej.Reason)
			assert.Equal(t, 5, rej.Position)
		})
	}
}

func TestValidate_ShortCircuitsAtFirstViolation(t *testing.T) {
	p := NewProcessor(1)

	// Bad level and bad duration: only the level is reported, since the
	// checks run in fixed order.
	rej := p.Validate(`{"timestamp":"t","level":"BAD","duration_ms":-5}`, 1)
	require.NotNil(t, rej)
	assert.Equal(t, model.ReasonInvalidLevel, rej.Reason)
}

func TestValidate_BoundaryValues(t *testing.T) {
	p := NewProcessor(1)

	for _, line := range []string{
		`{"timestamp":"t","level":"INFO","duration_ms":0}`,
		`{"timestamp":"t","level":"INFO","status_code":100}`,
		`{"timestamp":"t","level":"INFO","status_code":599}`,
		`{"timestamp":"t","level":"DEBUG"}`,
		`{"timestamp":"t","level":"INFO","duration_ms":null,"status_code":null}`,
	} {
		assert.Nil(t, p.Validate(line, 1), "line %q should be valid", line)
	}
}

func TestValidateLogs_CountInvariant(t *testing.T) {
	// Every k-th line malformed; the count identity must hold regardless.
	lines := testutil.GenerateMixed(503, 7, 42)

	for _, workers := range []int{1, 3, 8} {
		p := NewProcessor(workers)
		valid, rejections := p.ValidateLogs(lines)
		assert.Equal(t, len(lines), valid+len(rejections), "workers=%d", workers)
	}
}

func TestValidateLogs_RejectionsInInputOrder(t *testing.T) {
	lines := testutil.GenerateMixed(200, 3, 7)

	p := NewProcessor(5)
	_, rejections := p.ValidateLogs(lines)
	require.NotEmpty(t, rejections)
	for i := 1; i < len(rejections); i++ {
		assert.Greater(t, rejections[i].Position, rejections[i-1].Position)
	}

	_, sequential := NewProcessor(1).ValidateLogs(lines)
	assert.Equal(t, sequential, rejections)
}

func TestValidateLogs_EmptyBatch(t *testing.T) {
	p := NewProcessor(2)
	valid, rejections := p.ValidateLogs(nil)
	assert.Zero(t, valid)
	assert.Empty(t, rejections)
}
