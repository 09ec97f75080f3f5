package typeset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/go-pkgz/lgr"
	"github.com/google/uuid"
)

// auxExts lists extensions the compiler may leave next to the input, removed on cleanup too
var auxExts = []string{".log", ".aux", ".xdv", ".out", ".toc"}

// Job keeps the temporary files of a single compilation. Paths are derived from a fresh random id,
// so concurrent jobs sharing the same directory never collide.
type Job struct {
	ID         string
	Dir        string
	InputPath  string
	OutputPath string
}

// NewJob makes a job with a new id in dir. No files are created until WriteInput.
func NewJob(dir string) *Job {
	id := uuid.NewString()
	return &Job{
		ID:         id,
		Dir:        dir,
		InputPath:  filepath.Join(dir, id+".tex"),
		OutputPath: filepath.Join(dir, id+".pdf"),
	}
}

// WriteInput persists the markup text to the job's input file
func (j *Job) WriteInput(text string) error {
	if err := os.WriteFile(j.InputPath, []byte(text), 0o600); err != nil {
		return fmt.Errorf("failed to write input %s: %w", j.InputPath, err)
	}
	return nil
}

// Cleanup removes every file of the job. Best effort: failures are logged and never returned,
// missing files are fine. Safe to call multiple times.
func (j *Job) Cleanup() {
	paths := []string{j.InputPath, j.OutputPath}
	for _, ext := range auxExts {
		paths = append(paths, filepath.Join(j.Dir, j.ID+ext))
	}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[WARN] failed to remove %s: %v", p, err)
		}
	}
}
