package models

import (
	"fmt"
	"strings"

	"github.com/allbin/boardfinder"
	"github.com/allbin/boardfinder/internal/tui/colors"
	"github.com/allbin/boardfinder/internal/tui/keys"
	"github.com/allbin/boardfinder/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

// ScanStartMsg reports the number of candidates about to be inspected.
type ScanStartMsg struct{ Total int }

// ScanStepMsg reports one inspected candidate; Record is nil when the
// candidate was excluded.
type ScanStepMsg struct {
	Candidate boardfinder.Candidate
	Record    *boardfinder.DeviceRecord
}

// ScanDoneMsg ends the scan.
type ScanDoneMsg struct{ Found int }

// Reporter forwards engine progress to a running program.
type Reporter struct {
	Send func(tea.Msg)
}

func (r Reporter) Start(total int) { r.Send(ScanStartMsg{Total: total}) }

func (r Reporter) Step(c boardfinder.Candidate, record *boardfinder.DeviceRecord) {
	r.Send(ScanStepMsg{Candidate: c, Record: record})
}

func (r Reporter) Done(found int) { r.Send(ScanDoneMsg{Found: found}) }

// ScanModel renders a progress bar while candidates are inspected.
type ScanModel struct {
	platform string
	total    int
	checked  int
	found    int
	current  boardfinder.Candidate
	done     bool
	aborted  bool

	bar    progress.Model
	help   help.Model
	keys   keys.ScanKeys
	cancel func()
}

// NewScanModel creates the model; cancel is called when the user aborts.
func NewScanModel(platform string, cancel func()) *ScanModel {
	return &ScanModel{
		platform: platform,
		bar: progress.New(
			progress.WithGradient(string(colors.Mauve), string(colors.Blue)),
			progress.WithWidth(40),
		),
		help:   help.New(),
		keys:   keys.NewScanKeys(),
		cancel: cancel,
	}
}

func (m *ScanModel) Init() tea.Cmd {
	return nil
}

func (m *ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.aborted = true
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-20, 10), 60)
	case ScanStartMsg:
		m.total = msg.Total
	case ScanStepMsg:
		m.checked++
		m.current = msg.Candidate
		if msg.Record != nil {
			m.found++
		}
	case ScanDoneMsg:
		m.found = msg.Found
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

// Percent is the fraction of candidates inspected so far.
func (m *ScanModel) Percent() float64 {
	if m.total == 0 {
		if m.done {
			return 1
		}
		return 0
	}
	return float64(m.checked) / float64(m.total)
}

// Aborted reports whether the user interrupted the scan.
func (m *ScanModel) Aborted() bool {
	return m.aborted
}

func (m *ScanModel) View() string {
	if m.done || m.aborted {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Scanning " + m.platform + " devices"))
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(m.Percent()))
	b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("  %d/%d, %d found", m.checked, m.total, m.found)))
	b.WriteString("\n")
	if m.current != "" {
		b.WriteString(styles.MutedStyle.Render(string(m.current)))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
