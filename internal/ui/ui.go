// Package ui implements a command-line user interface using [tea], showing
// the progress of a running traversal and its logs.
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/makethumbs/internal/walker"
)

type statisticsProvider interface {
	Snapshot() walker.Progress
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	stats   statisticsProvider
	program *tea.Program

	LogWriter *TeaLogWriter

	Ready  atomic.Bool
	Failed atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler]. The cancel
// function is called when the user requests to abort the program.
func NewHandler(ctx context.Context, cancel context.CancelFunc, stats statisticsProvider) *Handler {
	handler := &Handler{
		stats: stats,
	}

	model := NewTeaModel(handler, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]) and
// blocks until it is closed.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}
