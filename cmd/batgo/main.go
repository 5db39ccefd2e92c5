package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

func main() {
	plain := flag.Bool("plain", false, "run without the TUI, wiring stdin/stdout directly")
	maxSteps := flag.Int("max-steps", 0, "abort after this many executed lines (0 = unlimited)")
	flag.Parse()

	script := flag.Arg(0)
	if script == "" {
		fmt.Fprintln(os.Stderr, "usage: batgo [-plain] [-max-steps n] <script>")
		os.Exit(2)
	}

	cfg := appConfig{script: script, maxSteps: *maxSteps}

	if *plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		if err := runPlain(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "batgo: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
