package bruntime

// InputRequest describes one blocking read from the collaborator: a PAUSE
// acknowledgement or an INPUT line for a named variable.
type InputRequest struct {
	Command string
	Key     string
	Prompt  string
}

// SetInputProvider installs the collaborator that answers PAUSE and INPUT.
// Without a provider (and an empty queue) reads resolve to empty text.
func (vm *VM) SetInputProvider(fn func(InputRequest) (string, error)) {
	vm.inputProvider = fn
}

// EnqueueInput pre-seeds responses consumed before the provider is asked.
func (vm *VM) EnqueueInput(values ...string) {
	vm.inputQueue = append(vm.inputQueue, values...)
}

func (vm *VM) consumeQueuedInput() (string, bool) {
	if len(vm.inputQueue) == 0 {
		return "", false
	}
	v := vm.inputQueue[0]
	vm.inputQueue = vm.inputQueue[1:]
	return v, true
}

func (vm *VM) resolveInput(req InputRequest) (string, error) {
	if raw, ok := vm.consumeQueuedInput(); ok {
		return raw, nil
	}
	if vm.inputProvider != nil {
		return vm.inputProvider(req)
	}
	return "", nil
}
