package typeset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/compiler.go -pkg mocks -skip-ensure -fmt goimports . Runner

// ErrEmptySource returned when there is nothing to compile
var ErrEmptySource = errors.New("latex source is empty")

// Runner is the compiler capability used by Service, implemented by Compiler
type Runner interface {
	Compile(ctx context.Context, inputPath, outDir string) (outputPath string, err error)
}

// Document is a compiled PDF handed to the deliver callback. Reader is valid only inside the callback.
type Document struct {
	JobID  string
	Reader io.Reader
	Size   int64
}

// Result describes a finished Render call, available even if it failed
type Result struct {
	JobID     string
	InputSize int
	Size      int64
	Started   time.Time
	Finished  time.Time
}

// Service renders LaTeX sources to PDF using temporary files in Dir
type Service struct {
	Runner Runner
	Dir    string // work directory for job files, defaults to os.TempDir()
}

// NewService makes Service running compiler with files kept in dir
func NewService(runner Runner, dir string) *Service {
	return &Service{Runner: runner, Dir: dir}
}

// Render compiles source and passes the produced document to deliver. All job files are removed
// before Render returns, whatever the outcome. Empty source is rejected with ErrEmptySource before
// any file or subprocess work.
func (s *Service) Render(ctx context.Context, source string, deliver func(doc Document) error) (res Result, err error) {
	res.Started = time.Now()
	res.InputSize = len(source)
	defer func() { res.Finished = time.Now() }()

	if strings.TrimSpace(source) == "" {
		return res, ErrEmptySource
	}

	job := NewJob(s.dir())
	res.JobID = job.ID
	defer job.Cleanup()

	if err = job.WriteInput(source); err != nil {
		return res, err
	}
	log.Printf("[INFO] compiling %s (%d bytes)", job.ID, len(source))

	outPath, err := s.Runner.Compile(ctx, job.InputPath, job.Dir)
	if err != nil {
		return res, err
	}
	if outPath != job.OutputPath {
		// the runner may name the output differently, make sure it is cleaned up as well
		defer removeFile(outPath)
	}

	fh, err := os.Open(outPath) //nolint gosec
	if err != nil {
		return res, fmt.Errorf("failed to open output %s: %w", outPath, err)
	}
	defer func() {
		if e := fh.Close(); e != nil {
			log.Printf("[WARN] failed to close %s: %v", outPath, e)
		}
	}()

	fi, err := fh.Stat()
	if err != nil {
		return res, fmt.Errorf("failed to stat output %s: %w", outPath, err)
	}
	res.Size = fi.Size()

	if err = deliver(Document{JobID: job.ID, Reader: fh, Size: fi.Size()}); err != nil {
		return res, fmt.Errorf("failed to deliver %s: %w", job.ID, err)
	}
	return res, nil
}

func (s *Service) dir() string {
	if s.Dir == "" {
		return os.TempDir()
	}
	return s.Dir
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[WARN] failed to remove %s: %v", path, err)
	}
}
