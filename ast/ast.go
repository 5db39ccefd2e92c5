package ast

// Program is a loaded script: the ordered raw line table plus the label
// table built from ":name" lines. Lines are immutable after load; the line
// index is the only addressing unit for jumps.
type Program struct {
	Lines  []string
	Labels map[string]int
}

// EOFLabel maps to len(Lines) and is the RETURN jump target.
const EOFLabel = "EOF"

type Expr interface {
	isExpr()
}

type NumberLit struct {
	Value float64
}

func (NumberLit) isExpr() {}

type BoolLit struct {
	Value bool
}

func (BoolLit) isExpr() {}

type StringLit struct {
	Value string
}

func (StringLit) isExpr() {}

// Ident is a bare name. The expression grammar is closed: evaluating an
// Ident is always an error, it exists only so the failure carries the name.
type Ident struct {
	Name string
}

func (Ident) isExpr() {}

type UnaryExpr struct {
	Op   string
	Expr Expr
}

func (UnaryExpr) isExpr() {}

type BinaryExpr struct {
	Op    string
	Left  Expr
	Right Expr
}

func (BinaryExpr) isExpr() {}

type CallExpr struct {
	Name string
	Args []Expr
}

func (CallExpr) isExpr() {}
