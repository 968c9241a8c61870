package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/headercheck/header"
	"go.jacobcolvin.com/headercheck/log"
)

const progressLogLines = 5

// resultMsg reports one processed file.
type resultMsg struct {
	status     header.Status
	failed     bool
	unreadable bool
}

func newResultMsg(r *header.Result, err error) resultMsg {
	if r == nil {
		return resultMsg{unreadable: true}
	}

	return resultMsg{status: r.Status, failed: err != nil}
}

// logMsg carries one line of log output.
type logMsg string

// doneMsg signals that every file was processed.
type doneMsg struct{}

// progressModel is the bubbletea model showing run counters and the most
// recent log lines.
type progressModel struct {
	logs     []string
	total    int
	done     int
	missing  int
	outdated int
	failed   int
	finished bool
}

func newProgressModel(total int, logs []string) *progressModel {
	m := &progressModel{total: total}
	for _, line := range logs {
		m.addLog(line)
	}

	return m
}

func (m *progressModel) addLog(line string) {
	m.logs = append(m.logs, line)
	if len(m.logs) > progressLogLines {
		m.logs = m.logs[len(m.logs)-progressLogLines:]
	}
}

// Init does nothing; the model is driven by messages sent to the program.
func (m *progressModel) Init() tea.Cmd {
	return nil
}

// Update applies result, log and completion messages.
func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case resultMsg:
		m.done++

		switch {
		case msg.unreadable:
			m.failed++
		case msg.status == header.StatusMissing:
			m.missing++
		case msg.status == header.StatusOutdated:
			m.outdated++
		}

		if msg.failed {
			m.failed++
		}

	case logMsg:
		m.addLog(string(msg))

	case doneMsg:
		m.finished = true

		return m, tea.Quit
	}

	return m, nil
}

// View renders the counters followed by the recent log lines.
func (m *progressModel) View() tea.View {
	return tea.NewView(m.render())
}

func (m *progressModel) render() string {
	var sb strings.Builder

	state := "Checking"
	if m.finished {
		state = "Checked"
	}

	fmt.Fprintf(&sb, "%s %d/%d files", state, m.done, m.total)
	fmt.Fprintf(&sb, "  missing %d  outdated %d", m.missing, m.outdated)

	if m.failed > 0 {
		fmt.Fprintf(&sb, "  errors %d", m.failed)
	}

	sb.WriteByte('\n')

	for _, line := range m.logs {
		sb.WriteString("  " + line + "\n")
	}

	return sb.String()
}

// progress runs a progress view on a terminal while files are processed.
type progress struct {
	program *tea.Program
	sub     *log.Subscription
	done    chan struct{}
	err     error
}

// startProgress starts the view on w. Log lines written to pub are shown
// below the counters.
func startProgress(ctx context.Context, w io.Writer, total int, pub *log.Publisher) *progress {
	p := &progress{
		program: tea.NewProgram(newProgressModel(total, pub.Recent()),
			tea.WithContext(ctx),
			tea.WithOutput(w),
			tea.WithInput(nil),
		),
		sub:  pub.Subscribe(),
		done: make(chan struct{}),
	}

	go func() {
		for line := range p.sub.C() {
			p.program.Send(logMsg(line))
		}
	}()

	go func() {
		defer close(p.done)

		_, p.err = p.program.Run()
	}()

	return p
}

func (p *progress) result(r *header.Result, err error) {
	p.program.Send(newResultMsg(r, err))
}

// stop waits for the view to render its final state.
func (p *progress) stop() error {
	p.program.Send(doneMsg{})
	<-p.done
	p.sub.Close()

	if p.err != nil {
		return fmt.Errorf("progress view: %w", p.err)
	}

	return nil
}
