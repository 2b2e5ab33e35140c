package term

import (
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wvtest/wvtool/pkg/protocol"
)

// Live is the interactive console: a bubbletea program whose managed area
// shows the current section and a spinner while finalized report lines are
// printed persistently above it. Input handling is disabled; the child
// command owns the terminal's stdin.
type Live struct {
	prog     *tea.Program
	theme    Theme
	width    int
	finished chan struct{}
}

type progressMsg string

type stopMsg struct{}

// NewLive starts the live display writing to out (normally the TTY).
func NewLive(out io.Writer, theme Theme, width int) *Live {
	m := liveModel{
		spin:  spinner.New(spinner.WithSpinner(spinner.Line), spinner.WithStyle(theme.Muted)),
		width: width,
	}
	prog := tea.NewProgram(m, tea.WithOutput(out), tea.WithInput(nil))

	l := &Live{prog: prog, theme: theme, width: width, finished: make(chan struct{})}
	go func() {
		defer close(l.finished)
		_, _ = prog.Run()
	}()
	return l
}

// Print writes one styled line above the progress area.
func (l *Live) Print(line protocol.Line) {
	l.prog.Println(FormatLine(l.theme, line, l.width))
}

// PrintText writes one plain text line above the progress area.
func (l *Live) PrintText(text string) {
	l.prog.Println(text)
}

// SetProgress replaces the progress message.
func (l *Live) SetProgress(message string) {
	l.prog.Send(progressMsg(message))
}

// Progress is a no-op: the spinner animates on its own timer.
func (l *Live) Progress() {}

// ClearProgress blanks the progress message.
func (l *Live) ClearProgress() {
	l.prog.Send(progressMsg(""))
}

// Close stops the program and waits for the terminal to be restored.
func (l *Live) Close() error {
	l.prog.Send(stopMsg{})
	<-l.finished
	return nil
}

type liveModel struct {
	spin  spinner.Model
	msg   string
	width int
}

func (m liveModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case progressMsg:
		m.msg = string(msg)
		return m, nil
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil
	case stopMsg:
		m.msg = ""
		return m, tea.Quit
	}
	return m, nil
}

func (m liveModel) View() string {
	if m.msg == "" {
		return ""
	}
	return truncateToWidth(m.msg, m.width-3) + " " + m.spin.View()
}

func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
