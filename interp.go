package batgo

import (
	"github.com/gosuda/batgo/ast"
	"github.com/gosuda/batgo/parser"
	bruntime "github.com/gosuda/batgo/runtime"
)

// Load splits raw script text into the line table, builds the label table
// and returns a VM ready to run. The caller supplies the text; the core
// never opens files itself.
func Load(source string) *bruntime.VM {
	return bruntime.New(parser.ParseProgram(parser.SplitLines(source)))
}

// Parse only returns the loaded program for tooling use.
func Parse(source string) *ast.Program {
	return parser.ParseProgram(parser.SplitLines(source))
}
