package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sudatra/aora/internal/tui/styles"
)

// AlertModal shows an Alert until dismissed with enter or esc
type AlertModal struct {
	visible bool
	alert   Alert
}

// Show displays alert
func (m *AlertModal) Show(alert Alert) {
	m.visible = true
	m.alert = alert
}

// Hide dismisses the modal
func (m *AlertModal) Hide() {
	m.visible = false
}

// IsVisible returns whether the modal is shown
func (m AlertModal) IsVisible() bool {
	return m.visible
}

// Alert returns the displayed alert
func (m AlertModal) Alert() Alert {
	return m.alert
}

// Update handles dismissal keys
func (m AlertModal) Update(msg tea.Msg) AlertModal {
	if !m.visible {
		return m
	}
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "esc", " ":
			m.Hide()
		}
	}
	return m
}

// View renders the alert
func (m AlertModal) View() string {
	if !m.visible {
		return ""
	}

	const modalWidth = 36

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Width(modalWidth).Render(m.alert.Title),
		lipgloss.NewStyle().Foreground(styles.LightGray).Width(modalWidth).Render(m.alert.Message),
		"",
		styles.DimStyle.Render("enter to dismiss"),
	)

	return styles.ModalStyle.Render(content)
}
