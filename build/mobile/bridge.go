package mobile

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gosuda/batgo"
	bruntime "github.com/gosuda/batgo/runtime"
)

type runResult struct {
	Outputs []bruntime.Output `json:"outputs"`
	Error   string            `json:"error,omitempty"`
}

// bridgeMaxSteps bounds script execution on the mobile side, where there is
// no interactive way to kill a runaway loop.
const bridgeMaxSteps = 1_000_000

// Run executes a script and returns the collected outputs as JSON.
// inputsJSON format: ["1","hello", ...], consumed by INPUT/PAUSE in order.
func Run(script, inputsJSON string) string {
	result := runResult{Outputs: nil}

	var queued []string
	if strings.TrimSpace(inputsJSON) != "" {
		if err := json.Unmarshal([]byte(inputsJSON), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			b, _ := json.Marshal(result)
			return string(b)
		}
	}

	vm := batgo.Load(script)
	vm.SetMaxSteps(bridgeMaxSteps)
	if len(queued) > 0 {
		vm.EnqueueInput(queued...)
	}

	out, err := vm.Run()
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
	} else {
		result.Outputs = out
	}

	b, _ := json.Marshal(result)
	return string(b)
}
