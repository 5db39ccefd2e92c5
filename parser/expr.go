package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/gosuda/batgo/ast"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokBool
	tokLParen
	tokRParen
	tokComma
	tokOp
)

type token struct {
	kind tokenKind
	lit  string
}

// ParseExpr parses the restricted expression grammar: numbers, strings,
// booleans, arithmetic, comparisons, and/or/not connectives, parentheses
// and call syntax. Name resolution is deliberately closed; which calls are
// legal is decided by the evaluator, not here.
func ParseExpr(raw string) (ast.Expr, error) {
	toks, err := tokenizeExpr(raw)
	if err != nil {
		return nil, err
	}
	p := &exprParser{tokens: toks}
	expr, err := p.parse(1)
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected token %q", p.peek().lit)
	}
	return expr, nil
}

type exprParser struct {
	tokens []token
	pos    int
	depth  int
}

func (p *exprParser) peek() token {
	if p.pos >= len(p.tokens) {
		return token{kind: tokEOF}
	}
	return p.tokens[p.pos]
}

func (p *exprParser) next() token {
	t := p.peek()
	p.pos++
	return t
}

const (
	precOr      = 1
	precAnd     = 2
	precCompare = 3
	precAdd     = 4
	precMul     = 5
	precUnary   = 6
)

func (p *exprParser) parse(minPrec int) (ast.Expr, error) {
	p.depth++
	if p.depth > 256 {
		return nil, fmt.Errorf("expression nesting too deep near token %q", p.peek().lit)
	}
	defer func() { p.depth-- }()

	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokOp {
			break
		}
		prec := opPrecedence(tok.lit)
		if prec < minPrec {
			break
		}
		op := p.next().lit
		right, err := p.parse(prec + 1)
		if err != nil {
			return nil, err
		}
		left = ast.BinaryExpr{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *exprParser) parsePrefix() (ast.Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.lit, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", t.lit)
		}
		return ast.NumberLit{Value: v}, nil
	case tokString:
		return ast.StringLit{Value: t.lit}, nil
	case tokBool:
		return ast.BoolLit{Value: t.lit == "true"}, nil
	case tokIdent:
		if p.peek().kind == tokLParen {
			p.next()
			args := []ast.Expr{}
			if p.peek().kind != tokRParen {
				for {
					e, err := p.parse(1)
					if err != nil {
						return nil, err
					}
					args = append(args, e)
					if p.peek().kind == tokComma {
						p.next()
						continue
					}
					break
				}
			}
			if p.peek().kind != tokRParen {
				return nil, fmt.Errorf("missing ) in call expression")
			}
			p.next()
			return ast.CallExpr{Name: strings.ToUpper(t.lit), Args: args}, nil
		}
		return ast.Ident{Name: t.lit}, nil
	case tokLParen:
		e, err := p.parse(1)
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, fmt.Errorf("missing )")
		}
		p.next()
		return e, nil
	case tokOp:
		switch t.lit {
		case "+", "-":
			right, err := p.parse(precUnary)
			if err != nil {
				return nil, err
			}
			return ast.UnaryExpr{Op: t.lit, Expr: right}, nil
		case "!":
			// "not" binds looser than comparison, Python style:
			// not a == b negates the whole comparison.
			right, err := p.parse(precCompare)
			if err != nil {
				return nil, err
			}
			return ast.UnaryExpr{Op: "!", Expr: right}, nil
		}
	}
	return nil, fmt.Errorf("unexpected token %q", t.lit)
}

func opPrecedence(op string) int {
	switch op {
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "==", "!=", "<", "<=", ">", ">=":
		return precCompare
	case "+", "-":
		return precAdd
	case "*", "/", "%":
		return precMul
	default:
		return 0
	}
}

// wordOps maps the textual operators to their symbolic equivalents before
// the parser sees them. "mod" surrounded by spaces is the documented
// rewrite to %.
var wordOps = map[string]string{
	"and": "&&",
	"or":  "||",
	"not": "!",
	"mod": "%",
}

func tokenizeExpr(raw string) ([]token, error) {
	toks := make([]token, 0, len(raw)/2)
	r := []rune(strings.TrimSpace(raw))
	for i := 0; i < len(r); {
		ch := r[i]
		if unicode.IsSpace(ch) {
			i++
			continue
		}
		if unicode.IsDigit(ch) || (ch == '.' && i+1 < len(r) && unicode.IsDigit(r[i+1])) {
			j := i + 1
			seenDot := ch == '.'
			for j < len(r) {
				if unicode.IsDigit(r[j]) {
					j++
					continue
				}
				if r[j] == '.' && !seenDot {
					seenDot = true
					j++
					continue
				}
				break
			}
			toks = append(toks, token{kind: tokNumber, lit: string(r[i:j])})
			i = j
			continue
		}
		if ch == '"' {
			j := i + 1
			escape := false
			for j < len(r) {
				if escape {
					escape = false
					j++
					continue
				}
				if r[j] == '\\' {
					escape = true
					j++
					continue
				}
				if r[j] == '"' {
					break
				}
				j++
			}
			if j >= len(r) || r[j] != '"' {
				return nil, fmt.Errorf("unterminated string")
			}
			v, ok := unquoteString(string(r[i : j+1]))
			if !ok {
				return nil, fmt.Errorf("invalid string literal")
			}
			toks = append(toks, token{kind: tokString, lit: v})
			i = j + 1
			continue
		}
		if isIdentStart(ch) {
			j := i + 1
			for j < len(r) && isIdentPart(r[j]) {
				j++
			}
			word := string(r[i:j])
			switch lower := strings.ToLower(word); {
			case wordOps[lower] != "":
				toks = append(toks, token{kind: tokOp, lit: wordOps[lower]})
			case lower == "true" || lower == "false":
				toks = append(toks, token{kind: tokBool, lit: lower})
			default:
				toks = append(toks, token{kind: tokIdent, lit: word})
			}
			i = j
			continue
		}
		switch ch {
		case '(':
			toks = append(toks, token{kind: tokLParen, lit: "("})
			i++
			continue
		case ')':
			toks = append(toks, token{kind: tokRParen, lit: ")"})
			i++
			continue
		case ',':
			toks = append(toks, token{kind: tokComma, lit: ","})
			i++
			continue
		}
		if i+1 < len(r) {
			two := string(r[i : i+2])
			switch two {
			case "<=", ">=", "==", "!=", "&&", "||":
				toks = append(toks, token{kind: tokOp, lit: two})
				i += 2
				continue
			}
		}
		switch ch {
		case '+', '-', '*', '/', '%', '<', '>', '!':
			toks = append(toks, token{kind: tokOp, lit: string(ch)})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", ch)
		}
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
