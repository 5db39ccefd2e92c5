package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosuda/batgo"
	bruntime "github.com/gosuda/batgo/runtime"
)

func runPlain(cfg appConfig) error {
	source, err := os.ReadFile(cfg.script)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	vm := batgo.Load(string(source))
	if cfg.maxSteps > 0 {
		vm.SetMaxSteps(cfg.maxSteps)
	}

	reader := bufio.NewReader(os.Stdin)

	vm.SetOutputHook(func(out bruntime.Output) {
		if out.NewLine {
			fmt.Println(out.Text)
		} else {
			fmt.Print(out.Text)
		}
	})

	vm.SetInputProvider(func(req bruntime.InputRequest) (string, error) {
		if req.Prompt != "" {
			fmt.Print(req.Prompt)
		}
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	})

	_, err = vm.Run()
	return err
}
