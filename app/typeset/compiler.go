// Package typeset runs the external LaTeX compiler for a single job. It owns the job's temporary
// files, invokes the compiler as a subprocess and hands the produced PDF to the caller.
package typeset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
)

// ErrCompilation is the sentinel for any failed compilation, see CompileError for details
var ErrCompilation = errors.New("compilation failed")

// CompileError reports a failed compiler run along with whatever the compiler printed to stderr
type CompileError struct {
	Diagnostics string
	Err         error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%v: %v", ErrCompilation, e.Err)
}

// Unwrap allows errors.Is(err, ErrCompilation) and access to the underlying process error
func (e *CompileError) Unwrap() []error {
	return []error{ErrCompilation, e.Err}
}

// Compiler invokes the typesetting binary. Zero value is usable and runs the default binary
// with no timeout.
type Compiler struct {
	Binary       string        // compiler executable, defaults to tectonic (tectonic.exe on windows)
	Timeout      time.Duration // 0 means no timeout
	MaxDiagLines int           // diagnostics lines kept from stderr, defaults to 200
}

// Compile runs the compiler for inputPath, putting results into outDir.
// Returns the path of the produced PDF or *CompileError with compiler diagnostics.
func (c *Compiler) Compile(ctx context.Context, inputPath, outDir string) (string, error) {
	binary := c.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	maxLines := c.MaxDiagLines
	if maxLines <= 0 {
		maxLines = 200
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	stderr := NewOutputCapture(maxLines)
	cmd := exec.CommandContext(ctx, binary, "-X", "compile", inputPath, "--outdir", outDir) // nolint gosec
	cmd.Stderr = stderr
	setProcessGroup(cmd)

	st := time.Now()
	err := cmd.Run()
	diag := stderr.GetOutput()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("compiler timed out after %v: %w: %w", c.Timeout, ctx.Err(), err)
		}
		if diag == "" {
			diag = err.Error()
		}
		log.Printf("[DEBUG] compiler failed for %s in %v: %v", inputPath, time.Since(st), err)
		return "", &CompileError{Diagnostics: diag, Err: err}
	}

	outputPath := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))+".pdf")
	if _, statErr := os.Stat(outputPath); statErr != nil {
		if diag == "" {
			diag = "compiler exited successfully but produced no output file"
		}
		return "", &CompileError{Diagnostics: diag, Err: fmt.Errorf("output %s not found: %w", outputPath, statErr)}
	}

	log.Printf("[DEBUG] compiled %s in %v", inputPath, time.Since(st))
	return outputPath, nil
}
