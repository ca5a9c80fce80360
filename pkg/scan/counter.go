package scan

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"

	"reposcope/pkg/model"
)

// binarySniffLen is how many leading bytes are checked for NUL to classify
// a file as binary.
const binarySniffLen = 512

// maxLineLen caps the scanner's token buffer; generated files can carry
// multi-megabyte lines.
const maxLineLen = 4 * 1024 * 1024

// CountFile reads one file and produces its metrics. Binary files keep
// their byte size but report no line counts.
func CountFile(path, language string) (model.Metrics, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Metrics{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	m := model.Metrics{Bytes: len(data)}

	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return m, nil
	}

	syntax := syntaxByLanguage[language]
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 64*1024), maxLineLen)

	inBlock := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		m.Lines++

		switch {
		case line == "":
			m.BlankLines++
		case inBlock:
			m.CommentLines++
			if syntax.blockEnd != "" && strings.Contains(line, syntax.blockEnd) {
				inBlock = false
			}
		case isLineComment(line, syntax):
			m.CommentLines++
		case syntax.blockStart != "" && strings.HasPrefix(line, syntax.blockStart):
			m.CommentLines++
			if !strings.Contains(line[len(syntax.blockStart):], syntax.blockEnd) {
				inBlock = true
			}
		default:
			m.Complexity += countBranches(line)
		}
	}
	if err := sc.Err(); err != nil {
		return m, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	return m, nil
}

func isLineComment(line string, syntax commentSyntax) bool {
	for _, prefix := range syntax.line {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// countBranches counts branch keywords and short-circuit operators on a
// code line. Token matching is word-boundary based for keywords.
func countBranches(line string) int {
	count := strings.Count(line, "&&") + strings.Count(line, "||")
	for _, field := range strings.FieldsFunc(line, func(r rune) bool {
		return !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9')
	}) {
		switch field {
		case "if", "else", "for", "while", "case", "switch", "catch", "match", "elif", "when":
			count++
		}
	}
	return count
}
