package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while the site is built.
type Reporter interface {
	Start(total int)
	Step(message string)
	Finish()
}

// NewReporter returns a LineReporter if the CI environment variable is set, a
// TerminalReporter otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: os.Stderr}
	}
	return &TerminalReporter{}
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	bar *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Building site"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Step(message string) {
	if r.bar != nil {
		r.bar.Describe(message)
		_ = r.bar.Add(1)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints line-by-line progress suitable for CI logs and watch
// mode.
type LineReporter struct {
	Out     io.Writer
	total   int
	current int
}

func (r *LineReporter) Start(total int) {
	r.total = total
	r.current = 0
	fmt.Fprintf(r.Out, "Building site (%d steps)\n", total)
}

func (r *LineReporter) Step(message string) {
	r.current++
	fmt.Fprintf(r.Out, "[%d/%d] %s\n", r.current, r.total, message)
}

func (r *LineReporter) Finish() {
	fmt.Fprintln(r.Out, "Build complete")
}

// Discard is a Reporter that reports nothing.
type Discard struct{}

func (Discard) Start(int)   {}
func (Discard) Step(string) {}
func (Discard) Finish()     {}
