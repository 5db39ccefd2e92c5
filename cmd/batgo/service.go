package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gosuda/batgo"
	bruntime "github.com/gosuda/batgo/runtime"
)

func runVM(cfg appConfig, events chan<- tea.Msg) {
	defer close(events)
	source, err := os.ReadFile(cfg.script)
	if err != nil {
		events <- vmDoneMsg{err: fmt.Errorf("load script: %w", err)}
		return
	}
	vm := batgo.Load(string(source))
	if cfg.maxSteps > 0 {
		vm.SetMaxSteps(cfg.maxSteps)
	}

	vm.SetOutputHook(func(out bruntime.Output) {
		events <- vmOutputMsg{out: out}
	})
	vm.SetInputProvider(func(req bruntime.InputRequest) (string, error) {
		resp := make(chan vmInputResp, 1)
		events <- vmPromptMsg{req: req, resp: resp}
		r := <-resp
		return r.value, nil
	})

	_, err = vm.Run()
	events <- vmDoneMsg{err: err}
}
