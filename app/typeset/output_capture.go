package typeset

import (
	"bytes"
	"strings"
	"sync"
)

// OutputCapture collects the last N lines written to it. Used for compiler stderr,
// which can be huge for broken documents. Thread safe.
type OutputCapture struct {
	maxLines int
	lines    []string
	partial  []byte
	mu       sync.Mutex
}

// NewOutputCapture makes io.Writer keeping up to maximum lines
func NewOutputCapture(maximum int) *OutputCapture {
	return &OutputCapture{maxLines: maximum}
}

// Write satisfies io.Writer. Lines split across writes are joined back.
func (o *OutputCapture) Write(p []byte) (n int, err error) {
	if o.maxLines == 0 {
		return len(p), nil
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	data := append(o.partial, p...) //nolint gocritic
	lastNL := bytes.LastIndexByte(data, '\n')
	if lastNL < 0 {
		o.partial = data
		return len(p), nil
	}
	o.partial = append([]byte(nil), data[lastNL+1:]...)
	for line := range bytes.SplitSeq(data[:lastNL], []byte("\n")) {
		o.add(string(bytes.TrimRight(line, "\r")))
	}
	return len(p), nil
}

func (o *OutputCapture) add(line string) {
	if line == "" {
		return
	}
	if len(o.lines) >= o.maxLines {
		o.lines = o.lines[1:]
	}
	o.lines = append(o.lines, line)
}

// GetOutput returns captured lines, including unterminated trailing one
func (o *OutputCapture) GetOutput() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	res := append([]string(nil), o.lines...)
	if tail := strings.TrimRight(string(o.partial), "\r"); tail != "" {
		if len(res) >= o.maxLines && len(res) > 0 {
			res = res[1:]
		}
		res = append(res, tail)
	}
	return strings.Join(res, "\n")
}
