package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	bruntime "github.com/gosuda/batgo/runtime"
)

type model struct {
	cfg      appConfig
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	status   string
	running  bool
	events   <-chan tea.Msg
	pending  *pendingInput
	history  []string
	tail     string
	stream   []bruntime.Output
}

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Faint(true)
)

func newModel(cfg appConfig) model {
	vp := viewport.New(80, 20)
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 4096
	return model{
		cfg:      cfg,
		viewport: vp,
		input:    ti,
		status:   "starting",
	}
}

func startVM(cfg appConfig) tea.Cmd {
	return func() tea.Msg {
		events := make(chan tea.Msg, 256)
		go runVM(cfg, events)
		return vmStartedMsg{events: events}
	}
}

func waitVMEvent(events <-chan tea.Msg) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			return msg
		case <-time.After(20 * time.Millisecond):
			return vmPollMsg{}
		}
	}
}

func sendInputResp(ch chan vmInputResp, resp vmInputResp) {
	select {
	case ch <- resp:
		return
	default:
	}
	// If a stale response is buffered, replace it with the latest response.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- resp:
	default:
	}
}

func isWaitRequest(req bruntime.InputRequest) bool {
	return strings.EqualFold(strings.TrimSpace(req.Command), "PAUSE")
}

func (m model) Init() tea.Cmd {
	return startVM(m.cfg)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		footerLines := 2
		if m.pending != nil && !m.pending.isWait {
			footerLines++
		}
		vh := msg.Height - footerLines
		if vh < 1 {
			vh = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.ready = true
		return m, nil

	case vmStartedMsg:
		m.events = msg.events
		m.running = true
		m.status = "running"
		return m, waitVMEvent(m.events)

	case vmOutputMsg:
		m.appendOutput(msg.out)
		return m, waitVMEvent(m.events)

	case vmPollMsg:
		if m.running && m.pending == nil {
			return m, waitVMEvent(m.events)
		}
		return m, nil

	case vmPromptMsg:
		m.pending = &pendingInput{
			req:    msg.req,
			resp:   msg.resp,
			isWait: isWaitRequest(msg.req),
		}
		m.input.SetValue("")
		if m.pending.isWait {
			m.input.Blur()
			m.status = "PAUSE: press enter"
		} else {
			m.input.Focus()
			m.status = fmt.Sprintf("INPUT %s", msg.req.Key)
		}
		return m, nil

	case vmDoneMsg:
		m.running = false
		m.pending = nil
		m.input.Blur()
		if msg.err != nil {
			m.status = "failed"
			m.appendOutput(bruntime.Output{Text: errStyle.Render(msg.err.Error()), NewLine: true})
		} else {
			m.status = "done"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			if m.pending != nil {
				sendInputResp(m.pending.resp, vmInputResp{value: ""})
			}
			return m, tea.Quit
		}

		if m.pending != nil {
			if m.pending.isWait {
				sendInputResp(m.pending.resp, vmInputResp{value: ""})
				m.pending = nil
				m.status = "running"
				return m, waitVMEvent(m.events)
			}
			if msg.String() == "enter" {
				sendInputResp(m.pending.resp, vmInputResp{value: strings.TrimSpace(m.input.Value())})
				m.pending = nil
				m.input.Blur()
				m.input.SetValue("")
				m.status = "running"
				return m, waitVMEvent(m.events)
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			if m.running {
				return m, nil
			}
			m.clearForRestart()
			m.status = "restarting"
			return m, startVM(m.cfg)
		case "g", "home":
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			m.viewport.GotoBottom()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	parts := []string{m.viewport.View()}
	if m.pending != nil && !m.pending.isWait {
		parts = append(parts, inputStyle.Render(m.input.View()))
	}
	parts = append(parts, statusStyle.Render(fmt.Sprintf("%s | %s", m.cfg.script, m.status)))
	return strings.Join(parts, "\n")
}

func (m *model) appendOutput(out bruntime.Output) {
	m.stream = append(m.stream, out)
	m.rebuildContent()
}

func (m *model) rebuildContent() {
	m.history = m.history[:0]
	m.tail = ""
	for _, out := range m.stream {
		if out.NewLine {
			m.history = append(m.history, m.tail+out.Text)
			m.tail = ""
		} else {
			m.tail += out.Text
		}
	}
	content := strings.Join(m.history, "\n")
	if m.tail != "" {
		if content != "" {
			content += "\n"
		}
		content += m.tail
	}
	if content == "" {
		content = "(no output yet)"
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m *model) clearForRestart() {
	m.history = nil
	m.tail = ""
	m.stream = nil
	m.viewport.SetContent("")
	m.pending = nil
	m.input.Blur()
	m.input.SetValue("")
}
