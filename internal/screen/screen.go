// Package screen implements the single-screen wrist temperature viewer
// using BubbleTea: a point chart of every night, a newest-first list of
// measurement intervals, and retry/settings actions.
package screen

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/luki/wristtemp/internal/chart"
	"github.com/luki/wristtemp/internal/temperature"
)

const chartHeight = 10

// Source produces a complete entry list. It is called off the UI goroutine.
type Source interface {
	Load(ctx context.Context) ([]temperature.Entry, error)
}

// Opener launches the health settings deep link.
type Opener interface {
	Open(ctx context.Context) error
	URL() string
}

// ── Messages ─────────────────────────────────────────────────────────

type entriesMsg struct {
	seq     uint64
	entries []temperature.Entry
	time    time.Time
}

type loadFailedMsg struct {
	seq uint64
	err error
}

type settingsOpenedMsg struct{ err error }

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the viewer. Only Update touches the
// entry list; loads report back through messages.
type Model struct {
	ctx     context.Context
	source  Source
	opener  Opener
	logger  *zap.Logger
	backend string

	entries  []temperature.Entry
	seq      uint64 // last load requested
	applied  uint64 // load whose entries are shown
	inFlight int
	loadedAt time.Time

	width  int
	height int
	scroll int
}

// New creates the model. The first load starts from Init.
func New(ctx context.Context, source Source, opener Opener, backend string, logger *zap.Logger) Model {
	return Model{
		ctx:      ctx,
		source:   source,
		opener:   opener,
		logger:   logger,
		backend:  backend,
		seq:      1,
		inFlight: 1,
	}
}

// Entries returns the list currently shown, in load order.
func (m Model) Entries() []temperature.Entry { return m.entries }

// Loading reports whether any load is still running.
func (m Model) Loading() bool { return m.inFlight > 0 }

// ── Commands ─────────────────────────────────────────────────────────

func (m Model) loadCmd(seq uint64) tea.Cmd {
	ctx, source := m.ctx, m.source
	return func() tea.Msg {
		entries, err := source.Load(ctx)
		if err != nil {
			return loadFailedMsg{seq: seq, err: err}
		}
		return entriesMsg{seq: seq, entries: entries, time: time.Now()}
	}
}

func (m Model) openSettingsCmd() tea.Cmd {
	ctx, opener := m.ctx, m.opener
	return func() tea.Msg {
		return settingsOpenedMsg{err: opener.Open(ctx)}
	}
}

// retry starts a fresh authorize+fetch. Earlier loads are left running.
func (m Model) retry() (Model, tea.Cmd) {
	m.seq++
	m.inFlight++
	return m, m.loadCmd(m.seq)
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return m.loadCmd(m.seq)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m.retry()
		case "s":
			if m.opener != nil {
				return m, m.openSettingsCmd()
			}
		case "up", "k":
			if m.scroll > 0 {
				m.scroll--
			}
		case "down", "j":
			if m.scroll < m.maxScroll() {
				m.scroll++
			}
		case "home":
			m.scroll = 0
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll = min(m.scroll, m.maxScroll())

	case entriesMsg:
		m.inFlight--
		if msg.seq <= m.applied {
			m.logger.Debug("dropping stale load", zap.Uint64("seq", msg.seq), zap.Uint64("applied", m.applied))
			return m, nil
		}
		m.applied = msg.seq
		m.entries = msg.entries
		m.loadedAt = msg.time
		m.scroll = min(m.scroll, m.maxScroll())

	case loadFailedMsg:
		// The loader has logged the cause; the list stays as it was.
		m.inFlight--

	case settingsOpenedMsg:
		if msg.err != nil {
			m.logger.Warn("cannot open health settings", zap.Error(msg.err))
		}
	}

	return m, nil
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorHeading  = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorCool     = lipgloss.Color("75")
	colorWarm     = lipgloss.Color("208")
	colorLoading  = lipgloss.Color("220")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "  Initializing..."
	}

	lines := m.lines()
	start := min(m.scroll, max(len(lines)-m.visibleLines(), 0))
	end := min(start+m.visibleLines(), len(lines))

	return strings.Join(lines[start:end], "\n")
}

// lines renders the whole screen before scrolling.
func (m Model) lines() []string {
	contentWidth := m.width - 2
	if contentWidth < 40 {
		contentWidth = 40
	}

	var sections []string
	sections = append(sections, m.renderTitleBar(contentWidth))

	if len(m.entries) == 0 {
		sections = append(sections, m.renderEmpty(contentWidth))
	} else {
		sections = append(sections, m.renderChartPanel(contentWidth))
		sections = append(sections, m.renderList(contentWidth))
	}

	sections = append(sections, m.renderFooter(contentWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return strings.Split(content, "\n")
}

func (m Model) visibleLines() int {
	return max(m.height, 5)
}

// maxScroll is the largest offset that still fills the window.
func (m Model) maxScroll() int {
	if m.width == 0 {
		return 0
	}
	return max(len(m.lines())-m.visibleLines(), 0)
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("WRIST TEMPERATURE")

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	var statusParts []string

	if len(m.entries) > 0 {
		statusParts = append(statusParts,
			dimS.Render(fmt.Sprintf("%d nights", len(m.entries))),
			dimS.Render(fmt.Sprintf("avg %.2f°C", temperature.Average(m.entries))))
	}
	if !m.loadedAt.IsZero() {
		statusParts = append(statusParts, dimS.Render(m.loadedAt.Format("15:04:05")))
	}
	if m.Loading() {
		statusParts = append(statusParts, lipgloss.NewStyle().
			Foreground(colorLoading).
			Bold(true).
			Render("LOADING"))
	}
	if m.backend != "" {
		statusParts = append(statusParts, dimS.Render(m.backend))
	}

	sep := dimS.Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

func (m Model) renderEmpty(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel).Bold(true)

	msg := "No data"
	if m.Loading() {
		msg = "Reading health data..."
	}
	lines := []string{
		lipgloss.NewStyle().Foreground(colorHeading).Bold(true).Render(msg),
		"",
		dimS.Render("Sleeping wrist temperature needs read access in the health app."),
		"",
		keyS.Render("r") + dimS.Render("  try again"),
	}
	if m.opener != nil {
		lines = append(lines, keyS.Render("s")+dimS.Render("  open health settings ("+m.opener.URL()+")"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Width(width).
		Align(lipgloss.Center).
		Padding(1, 0).
		Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) renderChartPanel(totalWidth int) string {
	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	lo, hi := temperature.Range(m.entries)
	series := temperature.OldestFirst(m.entries)

	rows := chart.RenderChart(series, innerWidth, chartHeight, lo, hi)
	plotW := innerWidth - 7
	if timeline := chart.RenderTimeline(series, plotW); strings.TrimSpace(timeline) != "" {
		rows = append(rows, strings.Repeat(" ", 7)+timeline)
	}
	rows = append(rows, strings.Repeat(" ", 7)+chart.RenderSparkline(series, plotW, lo, hi))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderList(totalWidth int) string {
	heading := lipgloss.NewStyle().Bold(true).Foreground(colorHeading).Render("Measurements")
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	labelS := lipgloss.NewStyle().Foreground(colorLabel)

	rows := []string{heading}
	for _, e := range temperature.NewestFirst(m.entries) {
		day := labelS.Width(16).Render(e.StartDate.Local().Format("Mon 02 Jan 2006"))
		span := dimS.Render(fmt.Sprintf("%s → %s  %s",
			e.StartDate.Local().Format("15:04"),
			e.EndDate.Local().Format("15:04"),
			fmtDuration(e.EndDate.Sub(e.StartDate))))
		rows = append(rows, day+" "+chart.RenderTempValue(e.Temperature)+"  "+span)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	keyS := lipgloss.NewStyle().Foreground(colorLabel)

	legend := lipgloss.NewStyle().Foreground(colorCool).Render("●") +
		dimS.Render(fmt.Sprintf(" < %.0f°C  ", temperature.Threshold)) +
		lipgloss.NewStyle().Foreground(colorWarm).Render("●") +
		dimS.Render(fmt.Sprintf(" ≥ %.0f°C", temperature.Threshold))

	keys := dimS.Render("q") + keyS.Render(":quit") +
		dimS.Render("  r") + keyS.Render(":retry") +
		dimS.Render("  s") + keyS.Render(":settings") +
		dimS.Render("  j/k") + keyS.Render(":scroll")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + strings.Repeat(" ", gap) + keys)
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	return fmt.Sprintf("%dh%02dm", h, m)
}
