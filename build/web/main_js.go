//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

	"github.com/gosuda/batgo"
	bruntime "github.com/gosuda/batgo/runtime"
)

type runResult struct {
	Outputs []bruntime.Output `json:"outputs"`
	Error   string            `json:"error,omitempty"`
}

type inputRequestPayload struct {
	Command string `json:"command"`
	Key     string `json:"key,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
}

const abortSentinel = "__BATGO_ABORT__"

const webMaxSteps = 1_000_000

func inputPrompt(req bruntime.InputRequest) (string, error) {
	fn := js.Global().Get("batgoInputNext")
	if fn.Type() != js.TypeFunction {
		return "", nil
	}
	payload := inputRequestPayload{
		Command: strings.ToUpper(strings.TrimSpace(req.Command)),
		Key:     req.Key,
		Prompt:  req.Prompt,
	}
	b, _ := json.Marshal(payload)
	v := fn.Invoke(string(b))
	if v.IsUndefined() || v.IsNull() {
		return "", nil
	}
	out := v.String()
	if strings.TrimSpace(out) == abortSentinel {
		return "", fmt.Errorf("input queue is empty for %s (add input and run again)", payload.Command)
	}
	return out, nil
}

func runScript(this js.Value, args []js.Value) any {
	result := runResult{Outputs: nil}
	if len(args) < 1 {
		result.Error = "runScript requires script text"
		b, _ := json.Marshal(result)
		return string(b)
	}

	var queued []string
	if len(args) > 1 && strings.TrimSpace(args[1].String()) != "" {
		_ = json.Unmarshal([]byte(args[1].String()), &queued)
	}

	vm := batgo.Load(args[0].String())
	vm.SetMaxSteps(webMaxSteps)
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}
	vm.SetInputProvider(inputPrompt)

	out, err := vm.Run()
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
	} else {
		result.Outputs = out
	}

	b, _ := json.Marshal(result)
	return string(b)
}

func main() {
	js.Global().Set("batgoRun", js.FuncOf(runScript))
	select {}
}
