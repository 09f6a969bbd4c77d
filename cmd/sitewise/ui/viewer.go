package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"sitewise/internal/audit"
)

// viewerTab identifies one report page.
type viewerTab int

const (
	tabAudit viewerTab = iota
	tabPerf
)

var tabTitles = []string{"Audit", "Performance"}

// Viewer is the interactive report browser. It keeps the raw markdown for
// each tab and re-renders through glamour whenever the terminal resizes.
type Viewer struct {
	viewport viewport.Model
	styles   Styles
	report   audit.Report
	docs     [2]string
	rendered [2]string
	active   viewerTab
	width    int
	height   int
}

// NewViewer creates the viewer over the rendered audit and performance
// reports. The report summary is shown in the header row.
func NewViewer(rep audit.Report, auditDoc, perfDoc string) Viewer {
	v := Viewer{
		viewport: viewport.New(80, 20),
		styles:   NewStyles(),
		report:   rep,
		docs:     [2]string{auditDoc, perfDoc},
	}
	v.rerender()
	v.viewport.SetContent(v.rendered[v.active])
	return v
}

func (v Viewer) Init() tea.Cmd { return nil }

// SetSize updates the viewport dimensions and re-renders the content.
func (v *Viewer) SetSize(w, h int) {
	v.width = w
	v.height = h
	v.viewport.Width = w
	v.viewport.Height = h - 2 // Reserve space for header/footer
	v.rerender()
	v.viewport.SetContent(v.rendered[v.active])
}

// rerender runs both markdown documents through glamour at the current
// width. On renderer errors the raw markdown is shown instead.
func (v *Viewer) rerender() {
	wrap := v.width
	if wrap <= 0 || wrap > 120 {
		wrap = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	for i, doc := range v.docs {
		if err != nil {
			v.rendered[i] = doc
			continue
		}
		out, rerr := r.Render(doc)
		if rerr != nil {
			out = doc
		}
		v.rendered[i] = out
	}
}

// Update handles messages.
func (v Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetSize(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return v, tea.Quit
		case "tab", "right", "l":
			v.switchTab(1)
			return v, nil
		case "shift+tab", "left", "h":
			v.switchTab(-1)
			return v, nil
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *Viewer) switchTab(delta int) {
	next := viewerTab((int(v.active) + delta + len(tabTitles)) % len(tabTitles))
	if next == v.active {
		return
	}
	v.active = next
	v.viewport.SetContent(v.rendered[v.active])
	v.viewport.GotoTop()
}

// View renders the page.
func (v Viewer) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, v.headerView(), v.viewport.View(), v.footerView())
}

func (v Viewer) headerView() string {
	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if viewerTab(i) == v.active {
			tabs[i] = v.styles.TabActive.Render(title)
		} else {
			tabs[i] = v.styles.TabInactive.Render(title)
		}
	}
	return v.styles.Header.Render("sitewise") + " " + strings.Join(tabs, " │ ") + "  " + SummaryRow(v.report)
}

func (v Viewer) footerView() string {
	help := fmt.Sprintf("tab: switch • j/k: scroll • q: quit • %3.0f%%", v.viewport.ScrollPercent()*100)
	return v.styles.Footer.Render(help)
}
