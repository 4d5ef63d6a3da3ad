package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	appmsg "github.com/marcus/reflect/internal/msg"
)

const (
	toastShort = appmsg.ToastShort
	toastLong  = appmsg.ToastLong
)

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// saveTickMsg fires when the autosave debounce elapses.
	saveTickMsg struct{ gen int }

	// revisionTickMsg fires when the revision debounce elapses.
	revisionTickMsg struct{ gen int }

	// externalChangeMsg reports a storage key changed by another process.
	externalChangeMsg struct{ key string }

	// watchClosedMsg is sent when the change feed closes.
	watchClosedMsg struct{}
)

// tickCmd returns a command that ticks every second.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForChange blocks on the change feed and delivers the next key.
func waitForChange(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		key, ok := <-ch
		if !ok {
			return watchClosedMsg{}
		}
		return externalChangeMsg{key: key}
	}
}

func saveTick(gen int) tea.Msg     { return saveTickMsg{gen: gen} }
func revisionTick(gen int) tea.Msg { return revisionTickMsg{gen: gen} }
