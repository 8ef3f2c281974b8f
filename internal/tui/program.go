package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrlokans/bookclub/internal/entities"
)

// Observable is a Searcher that reports state changes.
type Observable interface {
	Searcher
	OnChange(fn func(entities.UIState))
}

// Run starts the full-screen program and blocks until the user quits.
// Logging must already be redirected away from the terminal.
func Run(searcher Observable, failures FailureLog) error {
	p := tea.NewProgram(New(searcher, failures), tea.WithAltScreen())

	// Changes made from Update itself fire this callback on the event loop,
	// where a blocking Send would deadlock.
	searcher.OnChange(func(entities.UIState) {
		go p.Send(StateChangedMsg{})
	})
	// Catch up with anything that changed before the callback was registered.
	go p.Send(StateChangedMsg{})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
