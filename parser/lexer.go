package parser

import (
	"strings"
	"unicode"
)

var bracketPairs = [...][2]rune{{'(', ')'}, {'[', ']'}, {'{', '}'}}

// isClosed reports whether every bracket pair in the pending token is
// balanced by count. A comma only terminates a token once it is closed, so
// "f(a,b)" survives as one token.
func isClosed(token string) bool {
	for _, pair := range bracketPairs {
		if strings.Count(token, string(pair[0])) != strings.Count(token, string(pair[1])) {
			return false
		}
	}
	return true
}

// Tokenize splits an argument string on commas into trimmed tokens. A quoted
// substring becomes one token with the quotes stripped (commas inside it do
// not split), and a comma inside unbalanced brackets is part of the pending
// token. An unterminated quote is not a hard failure: the trailing partial
// token is emitted if non-empty.
func Tokenize(raw string) []string {
	result := []string{}
	var token strings.Builder
	inString := false
	afterQuote := false
	for _, r := range raw {
		switch {
		case r == '"':
			inString = !inString
			if !inString {
				result = append(result, strings.TrimSpace(token.String()))
				token.Reset()
				afterQuote = true
			}
		case inString:
			token.WriteRune(r)
		case r == ',' && isClosed(token.String()):
			// The comma terminating a quoted token was already consumed
			// by the closing quote; emitting here would add an empty token.
			if afterQuote && strings.TrimSpace(token.String()) == "" {
				afterQuote = false
				token.Reset()
				continue
			}
			result = append(result, strings.TrimSpace(token.String()))
			token.Reset()
			afterQuote = false
		default:
			// Any non-space text after a closing quote starts a new token,
			// so later empty tokens must be preserved again.
			if !unicode.IsSpace(r) {
				afterQuote = false
			}
			token.WriteRune(r)
		}
	}
	if strings.TrimSpace(token.String()) != "" {
		result = append(result, strings.TrimSpace(token.String()))
	}
	return result
}

func unquoteString(raw string) (string, bool) {
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", false
	}
	b := strings.Builder{}
	escape := false
	for _, r := range raw[1 : len(raw)-1] {
		if escape {
			switch r {
			case 'n':
				b.WriteRune('\n')
			case 'r':
				b.WriteRune('\r')
			case 't':
				b.WriteRune('\t')
			case '\\', '"':
				b.WriteRune(r)
			default:
				b.WriteRune(r)
			}
			escape = false
			continue
		}
		if r == '\\' {
			escape = true
			continue
		}
		b.WriteRune(r)
	}
	if escape {
		return "", false
	}
	return b.String(), true
}
