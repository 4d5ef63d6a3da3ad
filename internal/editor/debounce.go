package editor

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Debouncer is a cancelable single-shot timer driven by tea.Tick.
// Each Schedule bumps a generation counter; a tick only fires if its
// generation is still current, so a newer Schedule or a Cancel
// supersedes any pending tick.
type Debouncer struct {
	Delay   time.Duration
	gen     int
	pending bool
}

// Schedule starts a new countdown and returns the tick command. msg
// builds the message delivered when the tick elapses.
func (d *Debouncer) Schedule(msg func(gen int) tea.Msg) tea.Cmd {
	d.gen++
	d.pending = true
	gen := d.gen
	return tea.Tick(d.Delay, func(time.Time) tea.Msg {
		return msg(gen)
	})
}

// Fire reports whether the tick with gen is the current pending one and
// clears it if so.
func (d *Debouncer) Fire(gen int) bool {
	if !d.pending || gen != d.gen {
		return false
	}
	d.pending = false
	return true
}

// Cancel drops any pending tick.
func (d *Debouncer) Cancel() {
	d.gen++
	d.pending = false
}

// Pending reports whether a tick is outstanding.
func (d *Debouncer) Pending() bool { return d.pending }
