package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/javipelopi/gridcast/pkg/model"
)

// DetailsModel is the program-details panel: glamour-rendered metadata for
// the selected program inside a scrollable viewport.
type DetailsModel struct {
	vp         viewport.Model
	mdRenderer *glamour.TermRenderer
	theme      Theme

	program model.Program
	channel model.Channel
	hasData bool
	lastID  string // program whose markdown is currently rendered
}

func NewDetailsModel(theme Theme) DetailsModel {
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(60),
	)
	return DetailsModel{
		vp:         viewport.New(40, 20),
		mdRenderer: renderer,
		theme:      theme,
	}
}

func (m *DetailsModel) SetSize(width, height int) {
	m.vp.Width = max(20, width-2)
	m.vp.Height = max(5, height-3)
	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(m.vp.Width),
	); err == nil {
		m.mdRenderer = r
		m.lastID = "" // re-render at the new width
	}
}

// SetProgram loads a program into the panel. Content is only re-rendered
// when the program actually changed.
func (m *DetailsModel) SetProgram(p model.Program, ch model.Channel) {
	m.program = p
	m.channel = ch
	m.hasData = true
	if m.lastID == p.ID {
		return
	}
	m.lastID = p.ID

	var content strings.Builder
	content.WriteString(fmt.Sprintf("## %s\n\n", p.Title))
	content.WriteString(fmt.Sprintf("**%s** · %s · %s\n\n",
		ch.Name, p.Start.Format("Mon 2 Jan"), p.Airtime()))

	if p.Category != "" {
		content.WriteString(fmt.Sprintf("**Category:** %s\n\n", p.Category))
	}
	if p.Episode != "" {
		content.WriteString(fmt.Sprintf("**Episode:** %s\n\n", p.Episode))
	}
	if p.Description != "" {
		content.WriteString("---\n\n")
		content.WriteString(p.Description)
		content.WriteString("\n")
	}

	rendered := content.String()
	if m.mdRenderer != nil {
		if md, err := m.mdRenderer.Render(rendered); err == nil {
			rendered = md
		}
	}
	m.vp.SetContent(rendered)
	m.vp.GotoTop()
}

// Clear empties the panel when details is closed.
func (m *DetailsModel) Clear() {
	m.hasData = false
	m.lastID = ""
}

// Program returns the loaded program.
func (m *DetailsModel) Program() (model.Program, bool) {
	return m.program, m.hasData
}

func (m *DetailsModel) ScrollDown(lines int) { m.vp.LineDown(lines) }
func (m *DetailsModel) ScrollUp(lines int)   { m.vp.LineUp(lines) }

// View renders the panel with a live status line for the airing program.
func (m DetailsModel) View(now time.Time) string {
	t := m.theme

	if !m.hasData {
		return t.Renderer.NewStyle().
			Width(m.vp.Width).
			Height(m.vp.Height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(t.Secondary).
			Render("Select a program to see details")
	}

	titleBar := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.Primary).
		Width(m.vp.Width).
		Align(lipgloss.Center).
		Render("DETAILS")

	var statusLine string
	switch model.Classify(m.program, now) {
	case model.StatusNow:
		pct := model.ElapsedProgress(m.program, now)
		statusLine = t.Renderer.NewStyle().
			Foreground(t.Now).
			Bold(true).
			Render(fmt.Sprintf("● ON AIR · %d%% elapsed", pct))
	case model.StatusPast:
		statusLine = t.Renderer.NewStyle().Foreground(t.Muted).Render("○ ended")
	default:
		starts := m.program.Start.Sub(now).Round(time.Minute)
		statusLine = t.Renderer.NewStyle().
			Foreground(t.Future).
			Render(fmt.Sprintf("◌ starts in %s", starts))
	}

	return lipgloss.JoinVertical(lipgloss.Left, titleBar, statusLine, m.vp.View())
}
