package editor

import (
	"bufio"
	"fmt"
	"os"
	"unicode"
)

// WordAt returns the word under a 1-based line and column of the file at path.
// A caret directly after a word selects that word. It reports false when the
// position is not on a word.
func WordAt(path string, line, column int) (string, bool, error) {
	if line < 1 || column < 1 {
		return "", false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for n := 1; scanner.Scan(); n++ {
		if n == line {
			word, ok := wordInLine(scanner.Text(), column)
			return word, ok, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("failed to read file: %w", err)
	}

	return "", false, nil
}

// wordInLine finds the word span touching the 1-based rune column
func wordInLine(text string, column int) (string, bool) {
	runes := []rune(text)
	i := column - 1
	if i > len(runes) {
		return "", false
	}

	start := i
	for start > 0 && isWordRune(runes[start-1]) {
		start--
	}
	end := i
	for end < len(runes) && isWordRune(runes[end]) {
		end++
	}

	if start == end {
		return "", false
	}
	return string(runes[start:end]), true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
