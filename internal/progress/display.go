package progress

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/mark43/cadupdate/internal/update"
)

// Display renders update events. Register Handle with Updater.On.
// Events arrive from both the caller and the download goroutine, so all
// methods are safe for concurrent use.
type Display struct {
	mu           sync.Mutex
	out          io.Writer
	capabilities TerminalCapabilities
	symbols      ProgressSymbols
	spinner      *spinner.Spinner
	barActive    bool
	lastPercent  int
}

// NewProgressDisplay creates a display writing to out with the given terminal capabilities
func NewProgressDisplay(out io.Writer, caps TerminalCapabilities) *Display {
	return &Display{
		out:          out,
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		lastPercent:  -1,
	}
}

// Handle renders one event.
func (d *Display) Handle(ev update.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch ev.Type {
	case update.EventCheckingForUpdate:
		d.startSpinner("Checking for updates...")
	case update.EventUpdateNotAvailable:
		d.stopSpinner()
		fmt.Fprintf(d.out, "%s Up to date (installed %s, latest %s)\n",
			checkmark(d.symbols, d.capabilities.SupportsColor), ev.Current, ev.Latest)
	case update.EventUpdateAvailable:
		d.stopSpinner()
		fmt.Fprintf(d.out, "%s Update available: %s\n",
			checkmark(d.symbols, d.capabilities.SupportsColor), ev.Artifact.Name)
	case update.EventDownloadProgress:
		d.renderProgress(ev.Progress)
	case update.EventUpdateDownloaded:
		d.endBar()
		fmt.Fprintf(d.out, "%s Downloaded %s\n",
			checkmark(d.symbols, d.capabilities.SupportsColor), ev.Path)
	case update.EventError:
		d.stopSpinner()
		d.endBar()
		fmt.Fprintf(d.out, "%s Update failed: %v\n",
			failureMark(d.symbols, d.capabilities.SupportsColor), ev.Err)
	}
}

// Stop stops the spinner without printing anything.
func (d *Display) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopSpinner()
	d.endBar()
}

func (d *Display) startSpinner(msg string) {
	if !d.capabilities.IsTTY {
		fmt.Fprintln(d.out, msg)
		return
	}
	d.spinner = spinner.New(
		spinner.CharSets[d.symbols.SpinnerSet],
		100*time.Millisecond,
		spinner.WithWriter(d.out),
	)
	d.spinner.Suffix = " " + msg
	d.spinner.Start()
}

func (d *Display) stopSpinner() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// renderProgress redraws the bar in place on a terminal. Elsewhere it prints
// a line per 25% step so logs stay short.
func (d *Display) renderProgress(p update.Progress) {
	if d.capabilities.IsTTY {
		fmt.Fprintf(d.out, "\r%s", formatProgress(p, d.symbols))
		d.barActive = true
		return
	}

	if !p.Known() {
		return
	}
	step := int(p.Percent()) / 25 * 25
	if step <= d.lastPercent {
		return
	}
	d.lastPercent = step
	fmt.Fprintln(d.out, formatProgress(p, d.symbols))
}

func (d *Display) endBar() {
	if d.barActive {
		fmt.Fprintln(d.out)
		d.barActive = false
	}
	d.lastPercent = -1
}
