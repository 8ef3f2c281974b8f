// Package tui is the terminal front-end: a search input over a navigable
// grid of results, one of which can be opened into a detail card.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrlokans/bookclub/internal/diagnostics"
	"github.com/mrlokans/bookclub/internal/entities"
)

// Searcher is the part of search.Controller the terminal UI drives.
type Searcher interface {
	SetQuery(q string)
	State() entities.UIState
	Toggle(i int) error
	Collapse()
}

// FailureLog exposes the most recent lookup failure for the status line.
type FailureLog interface {
	Last() (diagnostics.Entry, bool)
}

// StateChangedMsg tells the model to re-read the searcher state.
type StateChangedMsg struct{}

type focusArea int

const (
	focusInput focusArea = iota
	focusResults
)

type Model struct {
	searcher Searcher
	failures FailureLog

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	state  entities.UIState
	focus  focusArea
	cursor int
	width  int
}

// New creates a model with the input focused.
func New(searcher Searcher, failures FailureLog) Model {
	input := textinput.New()
	input.Placeholder = "Search for books"
	input.Prompt = "> "
	input.CharLimit = 256
	input.Width = defaultWidth - 20
	input.SetValue(searcher.State().Query)
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(gold)

	return Model{
		searcher: searcher,
		failures: failures,
		input:    input,
		spinner:  spin,
		help:     help.New(),
		keys:     defaultKeyMap(),
		state:    searcher.State(),
		width:    defaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-20)
		m.help.Width = msg.Width
		return m, nil

	case StateChangedMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateResults(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus), msg.Type == tea.KeyDown, msg.Type == tea.KeyEnter:
		if len(m.state.Books) > 0 {
			m.focusResults()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.searcher.SetQuery(value)
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := m.columns()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Search):
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(cols)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		// The list may have been replaced since the last refresh.
		_ = m.searcher.Toggle(m.cursor)
		m.refresh()
	case key.Matches(msg, m.keys.Collapse):
		if m.state.Expanded == entities.NoneExpanded {
			return m, m.focusInput()
		}
		m.searcher.Collapse()
		m.refresh()
	}
	return m, nil
}

func (m *Model) refresh() {
	prev := m.state.Phase
	m.state = m.searcher.State()
	if prev != entities.PhaseLoaded && m.state.Phase == entities.PhaseLoaded {
		m.cursor = 0
	}
	m.clampCursor()
	if len(m.state.Books) == 0 && m.focus == focusResults {
		m.focusInput()
	}
}

func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= len(m.state.Books) {
		return
	}
	m.cursor = next
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.state.Books) {
		m.cursor = len(m.state.Books) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) focusResults() {
	m.focus = focusResults
	m.input.Blur()
}

func (m *Model) focusInput() tea.Cmd {
	m.focus = focusInput
	return m.input.Focus()
}

func (m Model) columns() int {
	return max(1, m.width/(cellWidth+4))
}

func (m Model) View() string {
	var sections []string

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Center,
		logoStyle.Render("Bookclub"), " ", m.input.View()))

	if !m.state.Touched {
		sections = append(sections,
			greetingTitleStyle.Render("Welcome to our Bookclub"),
			greetingTextStyle.Render("Discover our wide selection of books at great prices."))
	}

	if m.state.Phase == entities.PhaseLoading {
		sections = append(sections, loaderStyle.Render(m.spinner.View()+" Loading..."))
	} else if len(m.state.Books) > 0 {
		sections = append(sections, m.gridView())
		if book, ok := m.state.ExpandedBook(); ok {
			sections = append(sections, m.detailView(book))
		}
	}

	sections = append(sections, m.statusView(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) gridView() string {
	cols := m.columns()
	var rows []string
	for start := 0; start < len(m.state.Books); start += cols {
		end := min(start+cols, len(m.state.Books))
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			style := cellStyle
			if m.focus == focusResults && i == m.cursor {
				style = selectedCellStyle
			}
			title := m.state.Books[i].Title
			if m.state.IsExpanded(i) {
				title = "▸ " + title
			}
			cells = append(cells, style.Render(truncate(title, cellWidth*cellHeight-2)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) detailView(book entities.DisplayBook) string {
	lines := []string{
		detailTitleStyle.Render(book.Title) + "  " + labelStyle.Render("[esc] X"),
		book.Description,
		labelStyle.Render("Pages:") + " " + book.PagesLabel(),
		labelStyle.Render("Recommended retail price:") + " " + book.Price,
	}
	return detailStyle.Width(max(20, m.width-4)).Render(strings.Join(lines, "\n"))
}

func (m Model) statusView() string {
	status := fmt.Sprintf("%d books", len(m.state.Books))
	if m.state.Phase == entities.PhaseIdle {
		status = "type to search"
	}
	if m.failures != nil {
		if last, ok := m.failures.Last(); ok {
			status += " · " + failureStyle.Render("last failure: "+last.Message)
		}
	}
	return statusStyle.Render(status)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}
