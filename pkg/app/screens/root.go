package screens

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/logolink/pkg/app/components"
	"github.com/kerbaras/logolink/pkg/app/styles"
	"github.com/kerbaras/logolink/pkg/data"
)

// Loader produces the report shown by the browser.
type Loader func() (data.Report, error)

var filters = []struct {
	label   string
	outcome data.Outcome
}{
	{"All", ""},
	{"Updated", data.OutcomeUpdated},
	{"Missing", data.OutcomeMissing},
	{"Skipped", data.OutcomeSkipped},
}

// RootScreen browses the per-chapter results of a planned update.
type RootScreen struct {
	load     Loader
	document string
	report   data.Report
	filter   int
	list     *components.ChapterList
	loaded   bool
	err      error

	width  int
	height int
}

func NewRootScreen(document string, load Loader) *RootScreen {
	return &RootScreen{
		load:     load,
		document: document,
		list:     components.NewChapterList(),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return r.loadReport
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.list.Width = msg.Width - 4
		r.list.Height = msg.Height - 12

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return r, tea.Quit
		case "up", "k":
			r.list.Prev()
		case "down", "j":
			r.list.Next()
		case "tab", "f":
			r.filter = (r.filter + 1) % len(filters)
			r.applyFilter()
		case "shift+tab":
			r.filter = (r.filter + len(filters) - 1) % len(filters)
			r.applyFilter()
		case "r":
			return r, r.loadReport
		}

	case reportLoadedMsg:
		r.loaded = true
		r.err = msg.err
		if msg.err == nil {
			r.report = msg.report
			r.applyFilter()
		}
	}

	return r, nil
}

func (r *RootScreen) applyFilter() {
	r.list.SetItems(r.report.Filter(filters[r.filter].outcome))
}

func (r *RootScreen) View() string {
	if !r.loaded {
		return "Loading..."
	}

	header := styles.TitleStyle.Render(fmt.Sprintf("🔗 %s", r.document))
	counts := styles.MutedStyle.Render(fmt.Sprintf("%d updated • %d missing • %d skipped",
		r.report.Updated, r.report.Missing, r.report.Skipped))

	var errorMsg string
	if r.err != nil {
		errorMsg = styles.StatusError.Render(fmt.Sprintf("Error: %s", r.err)) + "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • tab/f: filter • r: reload • q: quit",
	)

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s%s\n%s",
		header, counts, r.renderTabs(), errorMsg, r.list.View(), help)
}

func (r *RootScreen) renderTabs() string {
	tabs := make([]string, len(filters))
	for i, f := range filters {
		if i == r.filter {
			tabs[i] = styles.ActiveTabStyle.Render(f.label)
		} else {
			tabs[i] = styles.InactiveTabStyle.Render(f.label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

type reportLoadedMsg struct {
	report data.Report
	err    error
}

func (r *RootScreen) loadReport() tea.Msg {
	report, err := r.load()
	return reportLoadedMsg{report: report, err: err}
}
