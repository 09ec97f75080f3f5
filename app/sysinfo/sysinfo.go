// Package sysinfo reports host metrics relevant for running the compiler: free space in the
// work directory, load average and memory usage
package sysinfo

import (
	"errors"
	"fmt"

	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
)

// Snapshot is a point-in-time view of host metrics. Fields of a failed probe are left zero.
type Snapshot struct {
	DiskPath        string  `json:"disk_path"`
	DiskFree        uint64  `json:"disk_free"`
	DiskFreePercent int     `json:"disk_free_percent"`
	Load1           float64 `json:"load1"`
	Load5           float64 `json:"load5"`
	Load15          float64 `json:"load15"`
	MemUsedPercent  int     `json:"mem_used_percent"`
}

// Collect gathers all metrics. Probes are independent, a failed one doesn't stop others,
// and all failures are returned joined.
func Collect(path string) (Snapshot, error) {
	if path == "" {
		path = "/"
	}
	res := Snapshot{DiskPath: path}
	var errs []error

	if usage, err := disk.Usage(path); err != nil {
		errs = append(errs, fmt.Errorf("failed to get disk usage for %s: %w", path, err))
	} else {
		res.DiskFree = usage.Free
		res.DiskFreePercent = 100 - int(usage.UsedPercent)
	}

	if loads, err := load.Avg(); err != nil {
		errs = append(errs, fmt.Errorf("failed to get load average: %w", err))
	} else {
		res.Load1, res.Load5, res.Load15 = loads.Load1, loads.Load5, loads.Load15
	}

	if v, err := mem.VirtualMemory(); err != nil {
		errs = append(errs, fmt.Errorf("failed to get memory: %w", err))
	} else {
		res.MemUsedPercent = int(v.UsedPercent)
	}

	return res, errors.Join(errs...)
}

// CheckDiskFree verifies at least minFreePercent of the disk holding path is free.
// Returns false with a reason otherwise.
func CheckDiskFree(path string, minFreePercent int) (bool, string) {
	usage, err := disk.Usage(path)
	if err != nil {
		return false, fmt.Sprintf("failed to get disk usage for %s: %v", path, err)
	}
	freePercent := 100 - int(usage.UsedPercent)
	if freePercent < minFreePercent {
		return false, fmt.Sprintf("disk free at %d%%, need %d%% on %s", freePercent, minFreePercent, path)
	}
	return true, ""
}
