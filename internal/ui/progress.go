package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bong/internal/driver"
)

// fileState is what the view shows for one file.
type fileState uint8

const (
	stateQueued fileState = iota
	stateLoading
	stateParsing
	stateDone
	stateCached
	stateFailed
)

// weight is the share of the file counted towards the progress bar.
var states = [...]struct {
	label  string
	color  lipgloss.Color
	weight float64
}{
	stateQueued:  {"queued", "7", 0},
	stateLoading: {"loading", "6", 0.25},
	stateParsing: {"parsing", "6", 0.5},
	stateDone:    {"done", "2", 1},
	stateCached:  {"cached", "2", 1},
	stateFailed:  {"error", "1", 1},
}

func (s fileState) final() bool { return states[s].weight == 1 }

func stateOf(ev driver.Event) fileState {
	switch ev.Status {
	case driver.StatusWorking:
		if ev.Stage == driver.StageLoad {
			return stateLoading
		}
		return stateParsing
	case driver.StatusDone:
		return stateDone
	case driver.StatusCached:
		return stateCached
	case driver.StatusError:
		return stateFailed
	}
	return stateQueued
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	paths   []string
	state   []fileState
	index   map[string]int
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel renders per-file progress of a directory run fed by
// events. The program quits once events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	index := make(map[string]int, len(files))
	for i, f := range files {
		index[f] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		paths:   files,
		state:   make([]fileState, len(files)),
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.applyEvent(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.paths) == 0 {
		return ""
	}
	finished, failed := m.counts()
	header := fmt.Sprintf("%s (%d/%d", m.title, finished, len(m.paths))
	if failed > 0 {
		header += fmt.Sprintf(", %d failed", failed)
	}
	header += ")"
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")).Render(header))
	b.WriteString("\n\n")

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for i, path := range m.paths {
		st := states[m.state[i]]
		label := lipgloss.NewStyle().Foreground(st.color).Render(fmt.Sprintf("%*s", statusWidth, st.label))
		fmt.Fprintf(&b, "  %s %s\n", label, truncate(path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	return b.String()
}

// next waits for one driver event.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev driver.Event) tea.Cmd {
	i, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	m.state[i] = stateOf(ev)
	return m.bar.SetPercent(m.percent())
}

func (m *progressModel) counts() (finished, failed int) {
	for _, s := range m.state {
		if s.final() {
			finished++
		}
		if s == stateFailed {
			failed++
		}
	}
	return finished, failed
}

func (m *progressModel) percent() float64 {
	if len(m.state) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range m.state {
		total += states[s].weight
	}
	return total / float64(len(m.state))
}

// truncate shortens value to width terminal cells, marking the cut with "...".
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
