package parser

import (
	"testing"

	"github.com/gosuda/batgo/ast"
)

func TestParseExprPrecedence(t *testing.T) {
	expr, err := ParseExpr("1 + 2 * 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	root, ok := expr.(ast.BinaryExpr)
	if !ok || root.Op != "+" {
		t.Fatalf("expected + at the root, got %#v", expr)
	}
	right, ok := root.Right.(ast.BinaryExpr)
	if !ok || right.Op != "*" {
		t.Fatalf("expected * on the right, got %#v", root.Right)
	}
}

func TestParseExprWordOperators(t *testing.T) {
	expr, err := ParseExpr("7 mod 3 == 1 and not 2 > 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	root, ok := expr.(ast.BinaryExpr)
	if !ok || root.Op != "&&" {
		t.Fatalf("expected && at the root, got %#v", expr)
	}
	left, ok := root.Left.(ast.BinaryExpr)
	if !ok || left.Op != "==" {
		t.Fatalf("expected == on the left, got %#v", root.Left)
	}
	if mod, ok := left.Left.(ast.BinaryExpr); !ok || mod.Op != "%" {
		t.Fatalf("expected mod rewritten to %%, got %#v", left.Left)
	}
	if not, ok := root.Right.(ast.UnaryExpr); !ok || not.Op != "!" {
		t.Fatalf("expected not on the right, got %#v", root.Right)
	}
}

func TestParseExprCallAndBool(t *testing.T) {
	expr, err := ParseExpr("max(1, min(2, 3))")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	call, ok := expr.(ast.CallExpr)
	if !ok || call.Name != "MAX" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %#v", expr)
	}

	expr, err = ParseExpr("true")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if b, ok := expr.(ast.BoolLit); !ok || !b.Value {
		t.Fatalf("expected bool literal, got %#v", expr)
	}
}

func TestParseExprBareIdent(t *testing.T) {
	expr, err := ParseExpr("whatever")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if id, ok := expr.(ast.Ident); !ok || id.Name != "whatever" {
		t.Fatalf("expected ident node, got %#v", expr)
	}
}

func TestParseExprErrors(t *testing.T) {
	for _, raw := range []string{"", "1 +", "(1", `"unterminated`, "1 @ 2", "x = 1"} {
		if _, err := ParseExpr(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestParseProgramLabels(t *testing.T) {
	prog := ParseProgram([]string{"SET a=1", ":loop", "  :spaced  ", "# :comment is no label"})
	if prog.Labels["loop"] != 1 {
		t.Fatalf("loop label at %d", prog.Labels["loop"])
	}
	if prog.Labels["spaced"] != 2 {
		t.Fatalf("spaced label at %d", prog.Labels["spaced"])
	}
	if _, ok := prog.Labels["comment is no label"]; ok {
		t.Fatalf("comment registered as label")
	}
	if prog.Labels[ast.EOFLabel] != 4 {
		t.Fatalf("EOF label at %d", prog.Labels[ast.EOFLabel])
	}
}

func TestSplitLinesNormalizes(t *testing.T) {
	lines := SplitLines("\uFEFFa\r\nb\rc\nd")
	if len(lines) != 4 || lines[0] != "a" || lines[1] != "b" || lines[2] != "c" || lines[3] != "d" {
		t.Fatalf("unexpected lines: %q", lines)
	}
}
