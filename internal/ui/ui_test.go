package ui

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/makethumbs/internal/walker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStats is a [statisticsProvider] whose [walker.Progress] is set by the
// test.
type fakeStats struct {
	sync.Mutex
	progress walker.Progress
}

func (s *fakeStats) Snapshot() walker.Progress {
	s.Lock()
	defer s.Unlock()

	return s.progress
}

func (s *fakeStats) set(progress walker.Progress) {
	s.Lock()
	defer s.Unlock()

	s.progress = progress
}

func newTestHandler(ctx context.Context, cancel context.CancelFunc, stats statisticsProvider, out *bytes.Buffer) *Handler {
	var in bytes.Buffer

	handler := &Handler{stats: stats}
	model := NewTeaModel(handler, cancel)

	handler.program = tea.NewProgram(model, tea.WithInput(&in), tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

func waitReady(handler *Handler) bool {
	for {
		time.Sleep(time.Millisecond)
		if handler.Ready.Load() {
			return true
		}
		if handler.Failed.Load() {
			return false
		}
	}
}

// TestTeaUI is an integration test for the command-line user interface.
func TestTeaUI(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	stats := &fakeStats{}
	handler := newTestHandler(ctx, cancel, stats, &buf)

	go func() {
		handler.program.Send(tea.WindowSizeMsg{Width: 200, Height: 60})

		if !waitReady(handler) {
			return
		}

		start := time.Now()
		stats.set(walker.Progress{
			Directories: 1,
			Files:       1,
			Current:     "/photos/a.jpg",
			StartTime:   start,
		})

		handler.program.Send(LogMsg("log1\n"))
		_, _ = handler.LogWriter.Write([]byte("log2\n"))

		for range 150 {
			_, _ = handler.LogWriter.Write([]byte("fast logs\n"))
		}

		handler.program.Send(tea.WindowSizeMsg{Width: 200, Height: 80})
		time.Sleep(300 * time.Millisecond)

		stats.set(walker.Progress{
			Directories: 2,
			Files:       3,
			Generated:   2,
			Cached:      1,
			Bytes:       4096,
			StartTime:   start,
			FinishTime:  time.Now(),
			HasFinished: true,
		})

		time.Sleep(500 * time.Millisecond)
		handler.program.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	}()

	require.NoError(t, handler.Launch())
	require.NoError(t, ctx.Err(), "quitting the UI must not cancel the program")

	out := buf.String()
	assert.Contains(t, out, "log1", "UI did not show the log message sent via program.Send")
	assert.Contains(t, out, "log2", "UI did not show the log message sent via LogWriter")
	assert.Contains(t, out, "Finished", "UI did not update the progress panels")
	assert.Contains(t, out, "Generated=2")
}

// TestTeaUI_Ctrl_C is an integration test for the command-line user interface.
// A Ctrl+C keypress is simulated, which should trigger upstream Context
// cancellation for signalling application teardown.
func TestTeaUI_Ctrl_C(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
	defer cancel()

	handler := newTestHandler(ctx, cancel, &fakeStats{}, &buf)

	go func() {
		handler.program.Send(tea.WindowSizeMsg{Width: 120, Height: 40})

		if waitReady(handler) {
			handler.program.Send(tea.KeyMsg{Type: tea.KeyCtrlC})
		}
	}()

	err := handler.Launch()
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled), "expected %v, got %v", context.Canceled, err)

	assert.NotZero(t, buf.Len(), "UI generated no output at all")
}
