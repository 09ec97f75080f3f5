package sysinfo

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	snap, err := Collect(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, snap.DiskPath)
	assert.Positive(t, snap.DiskFree)
	assert.GreaterOrEqual(t, snap.DiskFreePercent, 0)
	assert.LessOrEqual(t, snap.DiskFreePercent, 100)
	assert.GreaterOrEqual(t, snap.Load1, 0.0)
	assert.Positive(t, snap.MemUsedPercent)
}

func TestCollect_DefaultPath(t *testing.T) {
	snap, _ := Collect("")
	assert.Equal(t, "/", snap.DiskPath)
}

func TestCollect_BadPath(t *testing.T) {
	snap, err := Collect(filepath.Join(t.TempDir(), "missing", "dir"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk usage")
	assert.Zero(t, snap.DiskFree)
}

func TestCheckDiskFree(t *testing.T) {
	dir := t.TempDir()

	ok, reason := CheckDiskFree(dir, 0)
	assert.True(t, ok)
	assert.Empty(t, reason)

	ok, reason = CheckDiskFree(dir, 101)
	assert.False(t, ok)
	assert.Contains(t, reason, "need 101%")

	ok, reason = CheckDiskFree(filepath.Join(dir, "missing"), 1)
	assert.False(t, ok)
	assert.Contains(t, reason, "failed to get disk usage")
}
