package parser

import (
	"strings"

	"github.com/gosuda/batgo/ast"
)

// SplitLines normalizes raw script text into the ordered line table: a BOM
// is stripped and CRLF/CR line endings are folded to LF before splitting.
func SplitLines(raw string) []string {
	if after, ok := strings.CutPrefix(raw, "\uFEFF"); ok {
		raw = after
	}
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}

// ParseProgram walks the lines once and records every label (a line whose
// trimmed form starts with ':') plus the synthetic EOF label. No other line
// is interpreted at load time; errors surface only during execution.
func ParseProgram(lines []string) *ast.Program {
	labels := map[string]int{}
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if rest, ok := strings.CutPrefix(line, ":"); ok {
			name := strings.TrimSpace(rest)
			if name != "" {
				labels[name] = i
			}
		}
	}
	labels[ast.EOFLabel] = len(lines)
	return &ast.Program{Lines: lines, Labels: labels}
}
