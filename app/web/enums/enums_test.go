package enums

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobStatus(t *testing.T) {
	for _, s := range JobStatusValues() {
		parsed, err := ParseJobStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseJobStatus("bad")
	assert.Error(t, err)
	assert.Equal(t, JobStatusFailed, MustJobStatus("FAILED"))
	assert.Panics(t, func() { MustJobStatus("bad") })
	assert.Equal(t, []string{"unknown", "success", "rejected", "failed", "error"}, JobStatusNames())

	var st JobStatus
	require.NoError(t, st.Scan([]byte("failed")))
	assert.Equal(t, JobStatusFailed, st)
	require.NoError(t, st.Scan(nil))
	assert.Equal(t, JobStatusUnknown, st)
	assert.Error(t, st.Scan(42))

	v, err := JobStatusRejected.Value()
	require.NoError(t, err)
	assert.Equal(t, "rejected", v)
}

func TestJobKind(t *testing.T) {
	for _, k := range JobKindValues() {
		parsed, err := ParseJobKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	_, err := ParseJobKind("docx")
	assert.Error(t, err)
	assert.Equal(t, JobKindPDF, MustJobKind("pdf"))
	assert.Equal(t, []string{"unknown", "pdf", "latex"}, JobKindNames())

	var k JobKind
	require.NoError(t, k.Scan("latex"))
	assert.Equal(t, JobKindLatex, k)
}

func TestEnumsJSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Kind   JobKind   `json:"kind"`
		Status JobStatus `json:"status"`
	}{JobKindPDF, JobStatusSuccess})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"pdf","status":"success"}`, string(data))

	var res struct {
		Kind   JobKind   `json:"kind"`
		Status JobStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"latex","status":"error"}`), &res))
	assert.Equal(t, JobKindLatex, res.Kind)
	assert.Equal(t, JobStatusError, res.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"nope"}`), &res))
}
