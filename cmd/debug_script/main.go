package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/goforj/godump"
	"github.com/gosuda/batgo/parser"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: debug_script <script>")
		os.Exit(2)
	}
	b, err := os.ReadFile(os.Args[1])
	if err != nil {
		panic(err)
	}
	prog := parser.ParseProgram(parser.SplitLines(string(b)))
	fmt.Printf("lines=%d labels=%d\n", len(prog.Lines), len(prog.Labels))
	godump.Dump(prog.Labels)
	for i, raw := range prog.Lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, ":") {
			fmt.Printf("%4d label %s\n", i, strings.TrimSpace(line[1:]))
			continue
		}
		cmd, rest, _ := strings.Cut(line, " ")
		fmt.Printf("%4d %-8s %v\n", i, strings.ToUpper(cmd), parser.Tokenize(rest))
	}
}
