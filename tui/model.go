package tui

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/takaishi/graphql-jump/preview"
	"github.com/takaishi/graphql-jump/search"
)

const visibleResults = 8

// Model is a picker over the ordered matches of one lookup
type Model struct {
	title   string // highlighted in results, usually the base identifier
	root    string // relative result paths resolve against this
	results []*search.SearchResult

	selectedIndex int
	resultsOffset int // Scroll offset for results list
	chosen        *search.SearchResult

	// Preview state
	preview      *preview.Preview
	previewError error

	// UI dimensions
	width  int
	height int
}

// New creates a picker. The first result is preselected.
func New(title, root string, results []*search.SearchResult) *Model {
	selected := -1
	if len(results) > 0 {
		selected = 0
	}
	return &Model{
		title:         title,
		root:          root,
		results:       results,
		selectedIndex: selected,
	}
}

// Chosen returns the result confirmed with Enter, or nil
func (m *Model) Chosen() *search.SearchResult {
	return m.chosen
}

// Init loads the preview of the preselected result
func (m *Model) Init() tea.Cmd {
	return m.loadPreview()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case previewLoadedMsg:
		if msg.Index != m.selectedIndex {
			// a newer selection superseded this load
			return m, nil
		}
		m.preview = msg.Preview
		m.previewError = msg.Error
		return m, nil

	default:
		return m, nil
	}
}

// View renders the UI
func (m *Model) View() string {
	return renderView(m)
}

// handleKey processes keyboard input
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selectedIndex > 0 {
			m.selectedIndex--
			m.adjustScroll()
			return m, m.loadPreview()
		}
		return m, nil

	case "down", "j":
		if m.selectedIndex < len(m.results)-1 {
			m.selectedIndex++
			m.adjustScroll()
			return m, m.loadPreview()
		}
		return m, nil

	case "enter":
		if m.selectedIndex >= 0 && m.selectedIndex < len(m.results) {
			m.chosen = m.results[m.selectedIndex]
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// adjustScroll keeps the selected item inside the visible window
func (m *Model) adjustScroll() {
	if len(m.results) <= visibleResults {
		m.resultsOffset = 0
		return
	}

	if m.selectedIndex < m.resultsOffset {
		m.resultsOffset = m.selectedIndex
	}
	if m.selectedIndex >= m.resultsOffset+visibleResults {
		m.resultsOffset = m.selectedIndex - visibleResults + 1
	}

	m.resultsOffset = max(0, min(m.resultsOffset, len(m.results)-visibleResults))
}

// previewLoadedMsg is sent when preview is loaded
type previewLoadedMsg struct {
	Index   int
	Preview *preview.Preview
	Error   error
}

// loadPreview loads preview for the currently selected result
func (m *Model) loadPreview() tea.Cmd {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.results) {
		return nil
	}

	index := m.selectedIndex
	result := m.results[index]
	path := result.File
	if !filepath.IsAbs(path) {
		path = filepath.Join(m.root, path)
	}
	return func() tea.Msg {
		p, err := preview.LoadPreview(path, result.Line)
		return previewLoadedMsg{Index: index, Preview: p, Error: err}
	}
}

// Pick runs the picker and returns the chosen result, or nil if the user quit
func Pick(ctx context.Context, title, root string, results []*search.SearchResult) (*search.SearchResult, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("nothing to pick for %s", title)
	}

	program := tea.NewProgram(New(title, root, results), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("picker failed: %w", err)
	}
	return final.(*Model).Chosen(), nil
}
