package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/takaishi/graphql-jump/search"
)

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedResultStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("25"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("236")).
			Bold(true)

	fileInfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Align(lipgloss.Right).
			PaddingLeft(1)

	previewHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Bold(true)

	previewStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(6).
			Align(lipgloss.Right)

	hitLineNumberStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("25")).
				Width(6).
				Align(lipgloss.Right)

	hitLineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Background(lipgloss.Color("25"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

// renderView renders the entire UI
func renderView(m *Model) string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	headerHeight := 4
	resultsHeight := min(len(m.results), visibleResults)
	previewHeight := max(m.height-headerHeight-resultsHeight-2, 5)

	return lipgloss.JoinVertical(lipgloss.Left,
		renderHeader(m),
		renderResults(m),
		renderPreview(m, previewHeight),
	)
}

// renderHeader renders the title and the match summary
func renderHeader(m *Model) string {
	title := titleStyle.Render("GraphQL definitions: " + m.title)
	status := statusStyle.Render(renderStatus(m) + "  (enter: open, esc: quit)")
	return headerStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, title, status))
}

// renderStatus summarizes matches and files
func renderStatus(m *Model) string {
	files := make(map[string]bool)
	for _, result := range m.results {
		files[result.File] = true
	}

	matches := "matches"
	if len(m.results) == 1 {
		matches = "match"
	}
	fileWord := "files"
	if len(files) == 1 {
		fileWord = "file"
	}
	return fmt.Sprintf("%d %s in %d %s", len(m.results), matches, len(files), fileWord)
}

// renderResults renders the visible window of results
func renderResults(m *Model) string {
	availableWidth := max(m.width-4, 20)

	end := min(m.resultsOffset+visibleResults, len(m.results))
	lines := make([]string, 0, end-m.resultsOffset)
	for i := m.resultsOffset; i < end; i++ {
		line := formatResult(m.title, m.results[i], availableWidth)
		if i == m.selectedIndex {
			line = selectedResultStyle.Render(line)
		} else {
			line = resultStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// formatResult lays out `code snippet    file line`
func formatResult(query string, result *search.SearchResult, width int) string {
	fileInfo := fmt.Sprintf("%s %d", filepath.Base(result.File), result.Line)

	fileInfoAreaWidth := max(min(30, width/3), 25)
	codeWidth := width - fileInfoAreaWidth
	if codeWidth < 10 {
		codeWidth = 10
		fileInfoAreaWidth = width - codeWidth
	}

	code := highlightQuery(query, truncate(strings.TrimSpace(result.Text), codeWidth))
	codeStyled := lipgloss.NewStyle().Width(codeWidth).Render(code)
	fileInfoStyled := fileInfoStyle.Width(fileInfoAreaWidth).Render(fileInfo)

	return lipgloss.NewStyle().Width(width).Render(lipgloss.JoinHorizontal(lipgloss.Left, codeStyled, fileInfoStyled))
}

// truncate shortens text to maxWidth runes, ending with "..."
func truncate(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return string(runes[:maxWidth])
	}
	return string(runes[:maxWidth-3]) + "..."
}

// highlightQuery highlights case-insensitive occurrences of query in text
func highlightQuery(query, text string) string {
	if query == "" {
		return text
	}

	queryLower := strings.ToLower(query)
	textLower := strings.ToLower(text)
	if len(textLower) != len(text) {
		// lowercasing changed byte offsets, skip highlighting
		return text
	}

	var b strings.Builder
	last := 0
	for {
		idx := strings.Index(textLower[last:], queryLower)
		if idx == -1 {
			break
		}
		start := last + idx
		b.WriteString(text[last:start])
		b.WriteString(highlightStyle.Render(text[start : start+len(query)]))
		last = start + len(query)
	}
	b.WriteString(text[last:])

	return b.String()
}

// renderPreview renders the code preview of the selected result
func renderPreview(m *Model, maxHeight int) string {
	if m.previewError != nil {
		return errorStyle.Render("Error loading preview: " + m.previewError.Error())
	}
	if m.preview == nil {
		return ""
	}

	lines := []string{previewHeaderStyle.Render(m.preview.File)}
	availableWidth := max(m.width-14, 10) // line numbers and borders

	for i, line := range m.preview.Lines {
		if len(lines) >= maxHeight-1 {
			break
		}

		lineNumStr := fmt.Sprintf("%4d", m.preview.StartLine+i)
		line = truncate(line, availableWidth)

		if i+1 == m.preview.HitLine {
			lineNumStr = hitLineNumberStyle.Render(lineNumStr)
			line = hitLineStyle.Render(highlightQuery(m.title, line))
		} else {
			lineNumStr = lineNumberStyle.Render(lineNumStr)
		}

		lines = append(lines, fmt.Sprintf("%s | %s", lineNumStr, line))
	}

	return previewStyle.Width(m.width - 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
