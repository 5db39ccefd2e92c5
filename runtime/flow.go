package bruntime

// whileFrame is one entry of the while stack: the condition result from the
// owning WHILE plus its line index, so WEND can jump back to re-evaluate.
type whileFrame struct {
	active bool
	line   int
}

func (vm *VM) pushIf(active bool) {
	vm.ifStack = append(vm.ifStack, active)
}

func (vm *VM) popIf() (bool, bool) {
	n := len(vm.ifStack)
	if n == 0 {
		return false, false
	}
	top := vm.ifStack[n-1]
	vm.ifStack = vm.ifStack[:n-1]
	return top, true
}

func (vm *VM) pushWhile(fr whileFrame) {
	vm.whileStack = append(vm.whileStack, fr)
}

func (vm *VM) popWhile() (whileFrame, bool) {
	n := len(vm.whileStack)
	if n == 0 {
		return whileFrame{}, false
	}
	top := vm.whileStack[n-1]
	vm.whileStack = vm.whileStack[:n-1]
	return top, true
}

// contextActive reports whether the innermost enclosing block, if any, is
// currently executing. Directives push placeholder entries when it is not,
// so stack depth always tracks nesting depth along the executed path.
func (vm *VM) contextActive() bool {
	if n := len(vm.whileStack); n > 0 && !vm.whileStack[n-1].active {
		return false
	}
	if n := len(vm.ifStack); n > 0 && !vm.ifStack[n-1] {
		return false
	}
	return true
}

// registerLoopHead remembers the back-jump target for a WHILE line the
// first time that line executes. Loop bookkeeping is kept apart from the
// user-visible label table on purpose.
func (vm *VM) registerLoopHead(line int) {
	if _, ok := vm.loopHeads[line]; !ok {
		vm.loopHeads[line] = line
	}
}
