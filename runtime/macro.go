package bruntime

import (
	"strconv"
	"strings"
	"unicode"
)

// expandMacros rewrites $name$ and $name:index$ references in a raw line
// into their current variable values before the line is tokenized. A '$'
// enters reference mode; the name accumulates until a delimiter (whitespace,
// comma, an arithmetic operator, or another '$'). The delimiter itself stays
// in the output. Undefined names resolve to empty text; an out-of-range
// array subscript is fatal.
func (vm *VM) expandMacros(idx int, raw string) (string, error) {
	// The virtual newline terminates a trailing reference; it is trimmed
	// away with the rest of the surrounding whitespace below.
	if !strings.HasSuffix(raw, "\n") {
		raw += "\n"
	}
	var out strings.Builder
	var name strings.Builder
	inMacro := false
	for _, r := range raw {
		if inMacro {
			if !isMacroDelim(r) {
				name.WriteRune(r)
				continue
			}
			val, err := vm.resolveMacro(idx, name.String())
			if err != nil {
				return "", err
			}
			out.WriteString(val)
			name.Reset()
			inMacro = false
			if r != '$' {
				out.WriteRune(r)
			}
			continue
		}
		if r == '$' {
			inMacro = true
			continue
		}
		out.WriteRune(r)
	}
	return strings.TrimSpace(out.String()), nil
}

func isMacroDelim(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	switch r {
	case '$', ',', '+', '-', '*', '/', '%':
		return true
	}
	return false
}

// resolveMacro looks up one reference. "head:indexExpr" selects an element
// of head's value split on single spaces.
func (vm *VM) resolveMacro(idx int, name string) (string, error) {
	head, sub, indexed := strings.Cut(name, ":")
	if !indexed {
		return vm.vars[name], nil
	}
	elems := strings.Split(vm.vars[head], " ")
	n, err := strconv.Atoi(strings.TrimSpace(sub))
	if err != nil {
		return "", errorAt(idx, "bad array subscript %q", sub)
	}
	if n < 0 || n >= len(elems) {
		return "", errorAt(idx, "array subscript over-bounded")
	}
	return elems[n], nil
}
