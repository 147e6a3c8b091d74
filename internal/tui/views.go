package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sudatra/aora/internal/tui/styles"
)

// View implements tea.Model
func (m Model) View() string {
	if m.alert.IsVisible() && m.Width > 0 {
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.alert.View())
	}

	sections := []string{m.renderHeader(), m.search.View()}
	if m.router.Current().Name == RouteHome && !m.search.Focused() {
		sections = append(sections, m.renderLatest())
	}
	sections = append(sections, m.list.View())
	if m.ShowHelp {
		sections = append(sections, m.renderHelp())
	}
	sections = append(sections, m.renderFooter())

	view := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.alert.IsVisible() {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.alert.View())
	}
	return view
}

func (m Model) renderHeader() string {
	title := styles.AccentStyle.Bold(true).Render("aora")
	path := styles.DimStyle.Render(m.router.Current().Path)

	user := styles.DimStyle.Render("signed out")
	if m.user != nil {
		user = styles.SubtitleStyle.Render("Welcome back, " + m.user.Username)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", user, "  ", path)
}

func (m Model) renderLatest() string {
	if len(m.latest) == 0 {
		return styles.DimStyle.Render("No latest videos")
	}

	cards := make([]string, 0, len(m.latest))
	for i, p := range m.latest {
		style := styles.CardStyle
		if i == m.latestCursor {
			style = styles.CardSelectedStyle
		}
		body := styles.Truncate(p.Title, 20)
		if owner := p.OwnerName(); owner != "" {
			body += "\n" + styles.DimStyle.Render(styles.Truncate(owner, 20))
		}
		cards = append(cards, style.Render(body))
	}

	header := styles.SubtitleStyle.Render("Latest Videos")
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
}

func (m Model) renderHelp() string {
	var lines []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		lines = append(lines, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	lines = append(lines, styles.HelpKeyStyle.Render("tab")+" "+styles.HelpDescStyle.Render("complete suggestion"))
	return styles.InactiveBorder.Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter() string {
	if m.StatusMsg != "" {
		if m.StatusIsErr {
			return styles.ErrorStyle.Render(m.StatusMsg)
		}
		return styles.SuccessStyle.Render(m.StatusMsg)
	}

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, styles.HelpKeyStyle.Render(h.Key)+" "+styles.HelpDescStyle.Render(h.Desc))
	}
	return strings.Join(parts, "  ")
}
