// Package janitor periodically removes job files left behind by interrupted requests
// and trims the job history
package janitor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/umputun/texpress/app/sysinfo"
)

// jobExts are extensions of files a job can produce, see typeset.Job
var jobExts = map[string]bool{".tex": true, ".pdf": true, ".log": true, ".aux": true, ".xdv": true, ".out": true, ".toc": true}

// HistoryCleaner trims stored job history to the most recent records
type HistoryCleaner interface {
	CleanupOldJobs(keep int) (int64, error)
}

// Janitor sweeps the work directory on schedule. Only files named <uuid>.<job ext> are considered,
// so a shared directory like /tmp is safe to sweep.
type Janitor struct {
	Dir         string
	MaxAge      time.Duration // files older than this are orphans, defaults to 1h
	Interval    time.Duration // sweep interval, defaults to 10m
	History     HistoryCleaner
	KeepHistory int // history records to keep, 0 disables trimming
	MinDiskFree int // warn if free disk percent in Dir drops below, 0 disables
}

// Run starts scheduled sweeps and blocks until ctx canceled
func (j *Janitor) Run(ctx context.Context) error {
	interval := j.Interval
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), func() { j.Sweep(time.Now()) }); err != nil {
		return fmt.Errorf("can't schedule janitor every %v: %w", interval, err)
	}
	log.Printf("[INFO] janitor activated for %s, every %v", j.Dir, interval)
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	log.Printf("[DEBUG] janitor stopped")
	return nil
}

// Sweep removes orphaned job files older than MaxAge relative to now and trims history.
// Returns the number of removed files.
func (j *Janitor) Sweep(now time.Time) int {
	maxAge := j.MaxAge
	if maxAge <= 0 {
		maxAge = time.Hour
	}

	removed := 0
	entries, err := os.ReadDir(j.Dir)
	if err != nil {
		log.Printf("[WARN] can't read work dir %s, %v", j.Dir, err)
		entries = nil
	}
	for _, entry := range entries {
		if entry.IsDir() || !isJobFile(entry.Name()) {
			continue
		}
		finfo, err := entry.Info()
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) { // removed by its request meanwhile
				log.Printf("[WARN] can't get info for %s, %v", entry.Name(), err)
			}
			continue
		}
		if finfo.ModTime().Add(maxAge).After(now) {
			continue // may belong to a running request
		}
		fileName := filepath.Join(j.Dir, entry.Name())
		if err := os.Remove(fileName); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] can't delete %s, %v", fileName, err)
			continue
		}
		log.Printf("[DEBUG] removed orphaned job file %s", fileName)
		removed++
	}
	if removed > 0 {
		log.Printf("[INFO] janitor removed %d orphaned job file(s) from %s", removed, j.Dir)
	}

	if j.History != nil && j.KeepHistory > 0 {
		n, err := j.History.CleanupOldJobs(j.KeepHistory)
		if err != nil {
			log.Printf("[WARN] failed to trim job history, %v", err)
		} else if n > 0 {
			log.Printf("[DEBUG] trimmed %d job history record(s)", n)
		}
	}

	if j.MinDiskFree > 0 {
		if ok, reason := sysinfo.CheckDiskFree(j.Dir, j.MinDiskFree); !ok {
			log.Printf("[WARN] low disk space in work dir, %s", reason)
		}
	}
	return removed
}

// isJobFile checks the name looks like <uuid>.<ext> with one of the job extensions
func isJobFile(name string) bool {
	ext := filepath.Ext(name)
	if !jobExts[ext] {
		return false
	}
	id := strings.TrimSuffix(name, ext)
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
