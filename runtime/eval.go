package bruntime

import (
	"fmt"
	"math"
	"strings"

	"github.com/gosuda/batgo/ast"
	"github.com/gosuda/batgo/parser"
)

// evalString parses and evaluates one expression. The grammar is closed:
// only literals, operators and the abs/min/max builtins resolve. There is no
// way for a script to reach anything else in the host process.
func evalString(raw string) (Value, error) {
	expr, err := parser.ParseExpr(raw)
	if err != nil {
		return Value{}, err
	}
	return evalExpr(expr)
}

func evalExpr(e ast.Expr) (Value, error) {
	switch ex := e.(type) {
	case ast.NumberLit:
		return Num(ex.Value), nil
	case ast.BoolLit:
		return Bool(ex.Value), nil
	case ast.StringLit:
		return Str(ex.Value), nil
	case ast.Ident:
		return Value{}, fmt.Errorf("unknown identifier %q", ex.Name)
	case ast.UnaryExpr:
		v, err := evalExpr(ex.Expr)
		if err != nil {
			return Value{}, err
		}
		switch ex.Op {
		case "+":
			return Num(v.Float64()), nil
		case "-":
			return Num(-v.Float64()), nil
		case "!":
			return Bool(!v.Truthy()), nil
		default:
			return Value{}, fmt.Errorf("unsupported unary operator %q", ex.Op)
		}
	case ast.BinaryExpr:
		switch ex.Op {
		case "&&":
			left, err := evalExpr(ex.Left)
			if err != nil {
				return Value{}, err
			}
			if !left.Truthy() {
				return Bool(false), nil
			}
			right, err := evalExpr(ex.Right)
			if err != nil {
				return Value{}, err
			}
			return Bool(right.Truthy()), nil
		case "||":
			left, err := evalExpr(ex.Left)
			if err != nil {
				return Value{}, err
			}
			if left.Truthy() {
				return Bool(true), nil
			}
			right, err := evalExpr(ex.Right)
			if err != nil {
				return Value{}, err
			}
			return Bool(right.Truthy()), nil
		default:
			left, err := evalExpr(ex.Left)
			if err != nil {
				return Value{}, err
			}
			right, err := evalExpr(ex.Right)
			if err != nil {
				return Value{}, err
			}
			return evalBinary(ex.Op, left, right)
		}
	case ast.CallExpr:
		return evalCall(ex)
	default:
		return Value{}, fmt.Errorf("unsupported expression %T", e)
	}
}

func evalBinary(op string, left, right Value) (Value, error) {
	switch op {
	case "+":
		if left.kind == StringKind && right.kind == StringKind {
			return Str(left.s + right.s), nil
		}
		return Num(left.Float64() + right.Float64()), nil
	case "-":
		return Num(left.Float64() - right.Float64()), nil
	case "*":
		return Num(left.Float64() * right.Float64()), nil
	case "/":
		if right.Float64() == 0 {
			return Value{}, fmt.Errorf("division by zero")
		}
		return Num(left.Float64() / right.Float64()), nil
	case "%":
		if right.Float64() == 0 {
			return Value{}, fmt.Errorf("modulo by zero")
		}
		return Num(math.Mod(left.Float64(), right.Float64())), nil
	case "==":
		return Bool(valueEqual(left, right)), nil
	case "!=":
		return Bool(!valueEqual(left, right)), nil
	case "<", "<=", ">", ">=":
		return compareValues(op, left, right)
	default:
		return Value{}, fmt.Errorf("unsupported operator %q", op)
	}
}

func valueEqual(left, right Value) bool {
	if left.isNumeric() && right.isNumeric() {
		return left.Float64() == right.Float64()
	}
	if left.kind == StringKind && right.kind == StringKind {
		return left.s == right.s
	}
	return false
}

func compareValues(op string, left, right Value) (Value, error) {
	var cmp int
	switch {
	case left.isNumeric() && right.isNumeric():
		l, r := left.Float64(), right.Float64()
		switch {
		case l < r:
			cmp = -1
		case l > r:
			cmp = 1
		}
	case left.kind == StringKind && right.kind == StringKind:
		cmp = strings.Compare(left.s, right.s)
	default:
		return Value{}, fmt.Errorf("cannot compare %s", op)
	}
	switch op {
	case "<":
		return Bool(cmp < 0), nil
	case "<=":
		return Bool(cmp <= 0), nil
	case ">":
		return Bool(cmp > 0), nil
	default:
		return Bool(cmp >= 0), nil
	}
}

// evalCall dispatches the three builtins. Any other name is an evaluation
// error; the callable surface stays exactly abs, min and max.
func evalCall(call ast.CallExpr) (Value, error) {
	args := make([]Value, 0, len(call.Args))
	for _, a := range call.Args {
		v, err := evalExpr(a)
		if err != nil {
			return Value{}, err
		}
		args = append(args, v)
	}
	switch call.Name {
	case "ABS":
		if len(args) != 1 {
			return Value{}, fmt.Errorf("abs expects 1 argument, got %d", len(args))
		}
		return Num(math.Abs(args[0].Float64())), nil
	case "MIN":
		if len(args) == 0 {
			return Value{}, fmt.Errorf("min expects at least 1 argument")
		}
		best := args[0].Float64()
		for _, a := range args[1:] {
			best = math.Min(best, a.Float64())
		}
		return Num(best), nil
	case "MAX":
		if len(args) == 0 {
			return Value{}, fmt.Errorf("max expects at least 1 argument")
		}
		best := args[0].Float64()
		for _, a := range args[1:] {
			best = math.Max(best, a.Float64())
		}
		return Num(best), nil
	default:
		return Value{}, fmt.Errorf("unknown function %q", call.Name)
	}
}
