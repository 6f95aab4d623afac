package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullRecord(t *testing.T) {
	p := NewProcessor(1)

	line := `{"timestamp":"2024-01-15T10:30:00Z","level":"INFO","message":"Request completed",` +
		`"duration_ms":45.2,"status_code":200,"user_id":"user_123","request_id":"req_456",` +
		`"endpoint":"/api/users","error_code":"E100","trace_id":"abc","retries":2}`

	res := p.Parse(line, 1)
	require.Nil(t, res.Failure)
	rec := res.Record

	assert.Equal(t, "2024-01-15T10:30:00Z", rec.Timestamp)
	assert.Equal(t, "INFO", rec.Level)
	assert.Equal(t, "Request completed", rec.Message)
	require.NotNil(t, rec.DurationMS)
	assert.Equal(t, 45.2, *rec.DurationMS)
	require.NotNil(t, rec.StatusCode)
	assert.Equal(t, 200, *rec.StatusCode)
	assert.Equal(t, "user_123", rec.UserID)
	assert.Equal(t, "req_456", rec.RequestID)
	assert.Equal(t, "/api/users", rec.Endpoint)
	assert.Equal(t, "E100", rec.ErrorCode)

	// Unknown fields are preserved, not interpreted.
	assert.Equal(t, "abc", rec.Extra["trace_id"])
	assert.Equal(t, "2", rec.Extra["retries"])
}

func TestParse_EmptyObjectSucceeds(t *testing.T) {
	p := NewProcessor(1)

	res := p.Parse(`{}`, 1)
	require.Nil(t, res.Failure)
	assert.Empty(t, res.Record.Timestamp)
	assert.Empty(t, res.Record.Level)
	assert.Nil(t, res.Record.DurationMS)
	assert.Nil(t, res.Record.StatusCode)
}

func TestParse_Malformed(t *testing.T) {
	p := NewProcessor(1)

	for _, line := range []string{
		`{broken`,
		``,
		`"just a string"`,
		`[1,2,3]`,
		`42`,
	} {
		res := p.Parse(line, 7)
		require.NotNil(t, res.Failure, "line %q should fail to parse", line)
		assert.Nil(t, res.Record)
		assert.Equal(t, 7, res.Failure.Position)
		assert.Equal(t, line, res.Failure.Raw)
		assert.NotEmpty(t, res.Failure.Cause)
	}
}

func TestParse_WrongTypedFieldsAreAbsent(t *testing.T) {
	p := NewProcessor(1)

	res := p.Parse(`{"timestamp":"t","level":"INFO","duration_ms":"fast","status_code":200.5}`, 1)
	require.Nil(t, res.Failure)
	assert.Nil(t, res.Record.DurationMS, "non-numeric duration_ms is treated as absent")
	assert.Nil(t, res.Record.StatusCode, "fractional status_code is treated as absent")
}

func TestParseLogs_OrderAndIsolation(t *testing.T) {
	p := NewProcessor(4)

	lines := []string{
		`{"timestamp":"t1","level":"INFO"}`,
		`{oops`,
		`{"timestamp":"t3","level":"WARN"}`,
	}

	results := p.ParseLogs(lines)
	require.Len(t, results, 3)

	require.NotNil(t, results[0].Record)
	assert.Equal(t, "t1", results[0].Record.Timestamp)

	require.NotNil(t, results[1].Failure)
	assert.Equal(t, 2, results[1].Failure.Position)

	require.NotNil(t, results[2].Record)
	assert.Equal(t, "WARN", results[2].Record.Level)
}

func TestParseLogs_ParallelMatchesSequential(t *testing.T) {
	lines := []string{
		`{"timestamp":"t1","level":"INFO","duration_ms":10}`,
		`broken`,
		`{"timestamp":"t2","level":"ERROR","status_code":500}`,
		`{"timestamp":"t3","level":"DEBUG"}`,
		`{"timestamp":"t4","level":"WARN","duration_ms":99.5}`,
	}

	seq := NewProcessor(1).ParseLogs(lines)
	par := NewProcessor(4).ParseLogs(lines)
	assert.Equal(t, seq, par)
}
