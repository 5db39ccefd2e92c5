package bruntime

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gosuda/batgo/ast"
	"github.com/gosuda/batgo/parser"
)

// Output is one PRINT/ECHO emission delivered to the console collaborator.
type Output struct {
	Text    string `json:"text"`
	NewLine bool   `json:"newline"`
}

// VM executes one loaded program to completion or failure. It owns all
// shared state: the variable table, the call/if/while stacks, the pending
// jump target and the instruction pointer. It is not re-entrant and must
// not be mutated from outside mid-run.
type VM struct {
	program       *ast.Program
	vars          map[string]string
	callStack     []int
	ifStack       []bool
	whileStack    []whileFrame
	loopHeads     map[int]int
	pendingJump   int
	outputs       []Output
	outputHook    func(Output)
	inputProvider func(InputRequest) (string, error)
	inputQueue    []string
	maxSteps      int
}

func New(program *ast.Program) *VM {
	return &VM{
		program:     program,
		vars:        map[string]string{},
		loopHeads:   map[int]int{},
		pendingJump: -1,
	}
}

// SetOutputHook streams every Output as it is emitted, in addition to the
// slice Run returns.
func (vm *VM) SetOutputHook(fn func(Output)) {
	vm.outputHook = fn
}

// SetMaxSteps bounds the number of executed lines; 0 disables the watchdog.
func (vm *VM) SetMaxSteps(n int) {
	vm.maxSteps = n
}

// Vars returns a copy of the variable table.
func (vm *VM) Vars() map[string]string {
	cp := make(map[string]string, len(vm.vars))
	for k, v := range vm.vars {
		cp[k] = v
	}
	return cp
}

// Var reads one variable.
func (vm *VM) Var(name string) (string, bool) {
	v, ok := vm.vars[name]
	return v, ok
}

func (vm *VM) setVar(name, value string) {
	vm.vars[name] = value
}

func (vm *VM) emitOutput(out Output) {
	vm.outputs = append(vm.outputs, out)
	if vm.outputHook != nil {
		vm.outputHook(out)
	}
}

// Run executes the program from line 0. It returns the collected outputs on
// normal termination (pointer past the end with an empty call stack, or
// EXIT) and the fatal *Error otherwise.
func (vm *VM) Run() ([]Output, error) {
	vm.outputs = vm.outputs[:0]
	vm.callStack = vm.callStack[:0]
	vm.ifStack = vm.ifStack[:0]
	vm.whileStack = vm.whileStack[:0]
	vm.pendingJump = -1

	steps := 0
	i := 0
	for {
		// Every path that walks past the last line lands here, so a pending
		// return address resumes the caller no matter how the end was reached.
		if i >= len(vm.program.Lines) {
			if n := len(vm.callStack); n > 0 {
				i = vm.callStack[n-1]
				vm.callStack = vm.callStack[:n-1]
				continue
			}
			break
		}
		if vm.maxSteps > 0 {
			steps++
			if steps > vm.maxSteps {
				return nil, errorAt(i, "step limit exceeded")
			}
		}
		line := strings.TrimSpace(vm.program.Lines[i])
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ":") {
			i++
			continue
		}
		expanded, err := vm.expandMacros(i, line)
		if err != nil {
			return nil, err
		}
		cmd, rest := splitCommand(expanded)

		switch cmd {
		case "END":
			if _, ok := vm.popIf(); !ok {
				return nil, errorAt(i, "extra END")
			}
			i++

		case "WEND":
			fr, ok := vm.popWhile()
			if !ok {
				return nil, errorAt(i, "extra WEND")
			}
			if fr.active {
				i = vm.loopHeads[fr.line]
			} else {
				i++
			}

		case "WHILE":
			vm.registerLoopHead(i)
			active := false
			if vm.contextActive() {
				active, err = vm.evalCondition(i, rest)
				if err != nil {
					return nil, err
				}
			}
			vm.pushWhile(whileFrame{active: active, line: i})
			i++

		case "IF":
			active := false
			if vm.contextActive() {
				active, err = vm.evalCondition(i, rest)
				if err != nil {
					return nil, err
				}
			}
			vm.pushIf(active)
			i++

		case "ELSE":
			prev, ok := vm.popIf()
			if !ok {
				return nil, errorAt(i, "ELSE without IF")
			}
			next := false
			cond, isElseIf := cutElseIf(rest)
			switch {
			case !vm.contextActive():
				// Enclosing block is inactive: keep the placeholder entry
				// false so this branch never runs.
			case isElseIf:
				if !prev {
					next, err = vm.evalCondition(i, cond)
					if err != nil {
						return nil, err
					}
				}
			default:
				next = !prev
			}
			vm.pushIf(next)
			i++

		default:
			if !vm.contextActive() {
				i++
				continue
			}
			res, status, err := vm.execCommand(i, cmd, parser.Tokenize(rest))
			if err != nil {
				return nil, err
			}
			if res.kind == resultQuit {
				return append([]Output(nil), vm.outputs...), nil
			}
			vm.setVar("ERRORLEVEL", strconv.Itoa(status))
			i++
			if vm.pendingJump >= 0 {
				i = vm.pendingJump
				vm.pendingJump = -1
			}
		}
	}
	return append([]Output(nil), vm.outputs...), nil
}

func (vm *VM) evalCondition(idx int, raw string) (bool, error) {
	v, err := evalString(raw)
	if err != nil {
		return false, errorAt(idx, "bad condition: %v", err)
	}
	return v.Truthy(), nil
}

// splitCommand separates the command word from its argument text. The
// command matches case-insensitively and is reported uppercase.
func splitCommand(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return strings.ToUpper(line), ""
	}
	return strings.ToUpper(line[:i]), strings.TrimSpace(line[i+1:])
}

// cutElseIf recognizes the "ELSE IF expr" form and returns the condition.
func cutElseIf(rest string) (string, bool) {
	first, tail, _ := strings.Cut(strings.TrimSpace(rest), " ")
	if strings.EqualFold(first, "IF") {
		return strings.TrimSpace(tail), true
	}
	return "", false
}
