package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// ScanProgressReporter renders a progress bar for file extraction. It plugs
// into the analyzer's OnProgress hook and is inert when quiet.
type ScanProgressReporter struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

// NewScanProgressReporter creates a reporter; quiet disables all output.
func NewScanProgressReporter(quiet bool) *ScanProgressReporter {
	return &ScanProgressReporter{quiet: quiet}
}

// OnProgress advances the bar; the bar is created on first call, once the
// total is known.
func (r *ScanProgressReporter) OnProgress(done, total int) {
	if r.quiet || total == 0 {
		return
	}
	if r.bar == nil {
		r.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Extracting files"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}
	r.bar.Set(done)
}

// Finish closes out a bar that never reached its total (canceled scans).
func (r *ScanProgressReporter) Finish() {
	if r.bar != nil {
		r.bar.Finish()
		r.bar = nil
	}
}
