package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/jugglesearch/pkg/sink"
	"github.com/matzehuels/jugglesearch/pkg/siteswap"
	"github.com/matzehuels/jugglesearch/pkg/siteswap/gen"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

type (
	eventMsg sink.Event
	doneMsg  struct{}
)

// waitForEvent reads the next search event.
func waitForEvent(ch <-chan sink.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

// PatternListModel is the bubbletea model that lists patterns while the
// search is still running.
type PatternListModel struct {
	Title    string
	Records  []sink.Record
	Status   string
	Done     bool
	Cursor   int
	Offset   int
	Height   int
	Selected *sink.Record

	events <-chan sink.Event
}

// NewPatternListModel creates a list fed by events.
func NewPatternListModel(title string, events <-chan sink.Event) PatternListModel {
	return PatternListModel{Title: title, Height: 15, events: events}
}

func (m PatternListModel) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m PatternListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.Status != "" {
			m.Status = msg.Status
		} else {
			m.Records = append(m.Records, msg.Record)
		}
		return m, waitForEvent(m.events)
	case doneMsg:
		m.Done = true
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Records)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Records) == 0 {
				return m, nil
			}
			r := m.Records[m.Cursor]
			m.Selected = &r
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
	}
	return m, nil
}

func (m PatternListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Records))
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := cursor + m.Records[i].Display
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.Status != "":
		b.WriteString(listDimStyle.Render("  " + m.Status))
	case m.Done:
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d found", len(m.Records))))
	default:
		b.WriteString(listDimStyle.Render(fmt.Sprintf("  searching... %d found", len(m.Records))))
	}
	return b.String()
}

// runGenTUI runs a search behind the interactive list. Quitting the list
// cancels the search; a selected pattern is printed with its animation.
func (c *CLI) runGenTUI(ctx context.Context, cfg gen.Config, opts outputOptions) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner := c.newRunner(ctx, runnerOptions{noCache: opts.noCache, refresh: opts.refresh})
	defer runner.Close()
	runner.Logger = log.New(io.Discard)

	ch := sink.NewChannel(ctx, 64, sink.NewRunID())
	var target siteswap.Target = ch
	var script *sink.Script
	if opts.where != "" {
		s, err := sink.NewScript(opts.where, ch)
		if err != nil {
			return err
		}
		script, target = s, s
	}

	errc := make(chan error, 1)
	go func() {
		_, err := runner.Generate(ctx, cfg, target)
		ch.Close()
		errc <- err
	}()

	final, err := tea.NewProgram(NewPatternListModel("Patterns", ch.C), tea.WithAltScreen()).Run()
	cancel()
	serr := <-errc
	if err != nil {
		return fmt.Errorf("terminal UI: %w", err)
	}
	if serr != nil {
		return serr
	}
	if script != nil && script.Err() != nil {
		c.Logger.Warn("script failed on some patterns", "dropped", script.Dropped(), "err", script.Err())
	}

	m := final.(PatternListModel)
	if m.Selected != nil {
		printKeyValue("Pattern", m.Selected.Display)
		printKeyValue("Animation", m.Selected.Animation)
	}
	return nil
}
