package bruntime

import (
	"strconv"
	"strings"

	"github.com/gosuda/batgo/ast"
)

type resultKind int

const (
	resultNone resultKind = iota
	resultQuit
)

type execResult struct {
	kind resultKind
}

// execCommand runs one dispatched (non-structural) command and returns its
// integer status. The engine writes the status into ERRORLEVEL afterwards;
// unknown commands are tolerated with status 1.
func (vm *VM) execCommand(idx int, cmd string, args []string) (execResult, int, error) {
	switch cmd {
	case "PAUSE":
		if _, err := vm.resolveInput(InputRequest{Command: "PAUSE", Prompt: "..."}); err != nil {
			return execResult{}, 0, err
		}
	case "ECHO", "PRINT":
		var b strings.Builder
		for _, item := range args {
			b.WriteString(item)
			b.WriteByte(' ')
		}
		vm.emitOutput(Output{Text: b.String(), NewLine: cmd == "ECHO"})
	case "SET":
		for _, arg := range args {
			key, value, ok := strings.Cut(arg, "=")
			if !ok {
				return execResult{}, 0, errorAt(idx, "malformed assignment %q", arg)
			}
			vm.setVar(strings.TrimSpace(key), strings.TrimSpace(value))
		}
	case "LET":
		for _, arg := range args {
			key, expr, ok := strings.Cut(arg, "=")
			if !ok {
				return execResult{}, 0, errorAt(idx, "malformed assignment %q", arg)
			}
			v, err := evalString(strings.TrimSpace(expr))
			if err != nil {
				return execResult{}, 0, errorAt(idx, "bad expression: %v", err)
			}
			vm.setVar(strings.TrimSpace(key), v.String())
		}
	case "INPUT":
		for _, key := range args {
			raw, err := vm.resolveInput(InputRequest{Command: "INPUT", Key: key})
			if err != nil {
				return execResult{}, 0, err
			}
			vm.setVar(key, strings.TrimSpace(raw))
		}
	case "INC", "DEC":
		if len(args) == 0 {
			return execResult{}, 0, errorAt(idx, "%s requires a variable name", cmd)
		}
		delta := int64(1)
		if cmd == "DEC" {
			delta = -1
		}
		key := args[0]
		cur, ok := vm.vars[key]
		if !ok {
			vm.setVar(key, strconv.FormatInt(delta, 10))
			break
		}
		n, err := strconv.ParseInt(strings.TrimSpace(cur), 10, 64)
		if err != nil {
			return execResult{}, 0, errorAt(idx, "%s target %q is not a number", cmd, key)
		}
		vm.setVar(key, strconv.FormatInt(n+delta, 10))
	case "SWAP":
		if len(args) < 2 {
			return execResult{}, 0, errorAt(idx, "SWAP requires two variable names")
		}
		k1, k2 := args[0], args[1]
		vm.vars[k1], vm.vars[k2] = vm.vars[k2], vm.vars[k1]
	case "GOTO":
		if len(args) == 0 {
			return execResult{}, 0, errorAt(idx, "GOTO requires a label")
		}
		target, ok := vm.program.Labels[args[0]]
		if !ok {
			return execResult{}, 0, errorAt(idx, "unknown label %s", args[0])
		}
		vm.pendingJump = target
	case "CALL":
		if len(args) == 0 {
			return execResult{}, 0, errorAt(idx, "CALL requires a label")
		}
		target, ok := vm.program.Labels[args[0]]
		if !ok {
			return execResult{}, 0, errorAt(idx, "unknown label %s", args[0])
		}
		vm.callStack = append(vm.callStack, idx+1)
		vm.pendingJump = target
	case "RETURN":
		// Jumping to EOF makes the run loop's end-of-program logic pop the
		// call stack, which is exactly what returning means here.
		vm.pendingJump = vm.program.Labels[ast.EOFLabel]
	case "EXIT":
		return execResult{kind: resultQuit}, 0, nil
	default:
		return execResult{kind: resultNone}, 1, nil
	}
	return execResult{kind: resultNone}, 0, nil
}
