package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regress/internal/config"
	"regress/suite"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	cfg := config.New()
	cfg.TestDir = t.TempDir()
	st := NewJSONStorage(cfg)

	result := &suite.Result{RunID: "run-1", Duration: 1500 * time.Millisecond}
	result.Add(suite.Outcome{Module: "test_define", Case: "simple", Status: suite.StatusPass})
	result.Add(suite.Outcome{Module: "test_define", Case: "nested", Status: suite.StatusFail, Message: "stdout mismatch"})
	result.Add(suite.Outcome{Module: "test_include", Case: "missing", Status: suite.StatusError, Message: "run: not found"})
	result.Add(suite.Outcome{Module: "test_include", Case: "later", Status: suite.StatusSkip, Message: "todo"})

	saved, err := st.Save(result, 2)
	require.NoError(t, err)
	assert.FileExists(t, cfg.GetOutputPath())

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)

	meta := loaded.Meta
	assert.Equal(t, "run-1", meta.RunID)
	assert.Equal(t, 2, meta.Modules)
	assert.Equal(t, 4, meta.TestsRun)
	assert.Equal(t, 1, meta.Passed)
	assert.Equal(t, 1, meta.Failures)
	assert.Equal(t, 1, meta.Errors)
	assert.Equal(t, 1, meta.Skipped)
	assert.InDelta(t, 1.5, meta.DurationSeconds, 0.001)

	require.Len(t, loaded.Details, 2)
	assert.Equal(t, "nested", loaded.Details[0].TestName)
	assert.Equal(t, "FAIL", loaded.Details[0].Status)
	assert.Equal(t, "ERROR", loaded.Details[1].Status)
}

func TestJSONStorage_SaveOutputKeepsResolved(t *testing.T) {
	cfg := config.New()
	cfg.TestDir = t.TempDir()
	st := NewJSONStorage(cfg)

	result := &suite.Result{RunID: "run-2"}
	result.Add(suite.Outcome{Module: "test_m", Case: "a", Status: suite.StatusFail})
	output, err := st.Save(result, 1)
	require.NoError(t, err)

	output.Details[0].Resolved = true
	require.NoError(t, st.SaveOutput(output))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.True(t, loaded.Details[0].Resolved)
}

func TestJSONStorage_LoadMissing(t *testing.T) {
	cfg := config.New()
	cfg.TestDir = t.TempDir()
	_, err := NewJSONStorage(cfg).Load()
	assert.Error(t, err)
}
