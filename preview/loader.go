package preview

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const (
	previewBefore = 5
	previewAfter  = 10
)

// LoadPreview loads the lines around lineNum (1-based) of file
func LoadPreview(file string, lineNum int) (*Preview, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	startLine := max(lineNum-previewBefore, 1)
	endLine := lineNum + previewAfter

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lines := make([]string, 0, endLine-startLine+1)
	for n := 1; n <= endLine && scanner.Scan(); n++ {
		if n >= startLine {
			lines = append(lines, scanner.Text())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if lineNum < 1 || lineNum >= startLine+len(lines) {
		return nil, fmt.Errorf("line %d is out of range for %s", lineNum, file)
	}

	return &Preview{
		File:      file,
		StartLine: startLine,
		Lines:     lines,
		HitLine:   lineNum - startLine + 1,
	}, nil
}

// String renders the preview with line numbers, marking the hit line
func (p *Preview) String() string {
	var b strings.Builder
	for i, line := range p.Lines {
		marker := "   "
		if i+1 == p.HitLine {
			marker = ">>>"
		}
		fmt.Fprintf(&b, "%s %4d | %s\n", marker, p.StartLine+i, line)
	}
	return b.String()
}
