package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	iplruntime "github.com/gosuda/ipl/runtime"
)

type vmPollMsg struct{}

type model struct {
	cfg      appConfig
	viewport viewport.Model
	input    textinput.Model
	ready    bool
	width    int
	height   int
	status   string
	running  bool
	events   <-chan tea.Msg
	pending  *pendingInput
	stream   []iplruntime.Output
	err      error
}

var (
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func newModel(cfg appConfig) model {
	vp := viewport.New(80, 20)
	ti := textinput.New()
	ti.Prompt = "read> "
	ti.CharLimit = 32
	ti.SetValue("")
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
	// A stale buffered response is replaced by the latest one.
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- resp:
	default:
	}
}

func (m model) Init() tea.Cmd {
	return startVM(m.cfg)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		footerLines := 2
		if m.pending != nil {
			footerLines++
		}
		vh := msg.Height - footerLines
		if vh < 1 {
			vh = 1
		}
		m.viewport.Width = msg.Width
		m.viewport.Height = vh
		m.ready = true
		m.rebuildContent()
		return m, nil

	case vmStartedMsg:
		m.events = msg.events
		m.running = true
		m.status = "running " + m.cfg.script
		return m, waitVMEvent(m.events)

	case vmOutputMsg:
		m.appendOutput(msg.out)
		return m, waitVMEvent(m.events)

	case vmTraceMsg:
		m.status = fmt.Sprintf("+ %d: %s", msg.line, msg.text)
		return m, waitVMEvent(m.events)

	case vmPollMsg:
		if m.running && m.pending == nil {
			return m, waitVMEvent(m.events)
		}
		return m, nil

	case vmPromptMsg:
		m.pending = &pendingInput{req: msg.req, resp: msg.resp}
		m.input.SetValue("")
		m.input.Placeholder = "integer"
		m.status = fmt.Sprintf("%s at line %d: enter an integer (ctrl+d for end of input)", msg.req.Command, msg.req.Line)
		return m, m.input.Focus()

	case vmDoneMsg:
		m.running = false
		m.pending = nil
		m.input.Blur()
		m.err = msg.err
		if msg.err != nil {
			m.status = "failed (q to quit, r to rerun)"
			m.appendOutput(iplruntime.Output{Text: errStyle.Render(msg.err.Error()), NewLine: true})
		} else {
			m.status = "done (q to quit, r to rerun)"
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			if m.pending != nil {
				sendInputResp(m.pending.resp, vmInputResp{})
			}
			return m, tea.Quit
		}

		if m.pending != nil {
			switch msg.Type {
			case tea.KeyCtrlD:
				sendInputResp(m.pending.resp, vmInputResp{})
				m.resume()
				return m, waitVMEvent(m.events)
			case tea.KeyEnter:
				val := strings.TrimSpace(m.input.Value())
				if _, err := strconv.ParseInt(val, 10, 64); err != nil {
					m.status = fmt.Sprintf("%q is not an integer", val)
					m.input.SetValue("")
					return m, nil
				}
				m.appendOutput(iplruntime.Output{Text: statusStyle.Render("> " + val), NewLine: true})
				sendInputResp(m.pending.resp, vmInputResp{value: val, ok: true})
				m.resume()
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
	if m.pending != nil {
		parts = append(parts, inputStyle.Render(m.input.View()))
	}
	parts = append(parts, statusStyle.Render(m.status))
	return strings.Join(parts, "\n")
}

func (m *model) resume() {
	m.pending = nil
	m.input.Blur()
	m.input.SetValue("")
	m.status = "running " + m.cfg.script
}

func (m *model) appendOutput(out iplruntime.Output) {
	m.stream = append(m.stream, out)
	m.rebuildContent()
}

func (m *model) rebuildContent() {
	content := iplruntime.Render(m.stream)
	if content == "" {
		content = "(no output yet)"
	}
	m.viewport.SetContent(strings.TrimSuffix(content, "\n"))
	m.viewport.GotoBottom()
}

func (m *model) clearForRestart() {
	m.stream = nil
	m.err = nil
	m.viewport.SetContent("")
	m.pending = nil
	m.input.Blur()
	m.input.SetValue("")
}
