package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/cryptoboard/internal/format"
)

// Panel texts shown in ErrorPanel mode.
const (
	panelHeadline = "Something went wrong and cryptocurrencies cannot be displayed"
	panelHint     = "Please try again later or wait, the page will automatically refresh in %d seconds."
)

// View renders the current view (Bubble Tea interface).
func (m DashboardModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m DashboardModel) renderListView() string {
	if m.err != nil {
		return CriticalText(fmt.Sprintf("Error: %v", m.err))
	}

	sections := []string{m.renderHeader()}

	switch {
	case m.data.HasError() && m.opts.ErrorMode == ErrorPanel:
		sections = append(sections, m.renderErrorPanel())
	case !m.data.HasData() && !m.data.HasError():
		sections = append(sections, RenderLoading(m.loadingState))
	default:
		if m.data.HasError() {
			sections = append(sections, m.renderErrorBanner())
		}
		body := m.table.View()
		if m.showSidebar {
			body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.renderSidebar())
		}
		sections = append(sections, body)
	}

	sections = append(sections, m.renderStatusBar())
	if m.showSearch {
		sections = append(sections, LabelStyle.Render("Search: ")+m.textInput.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader shows the title, the last successful update and the loading spinner.
func (m DashboardModel) renderHeader() string {
	title := TitleStyle.Render("Cryptocurrency Prices by Market Cap")

	updated := "never"
	if m.data.HasData() {
		updated = format.Timestamp(m.data.LastUpdated)
	}
	line := SubtleStyle.Render("Last Update: " + updated)
	if m.data.Loading && m.data.HasData() {
		line += " " + m.loadingState.spinner.View()
	}
	return title + "\n" + line
}

// renderErrorBanner is the non-destructive failure notice above the table.
func (m DashboardModel) renderErrorBanner() string {
	text := fmt.Sprintf("%s. Retrying in %s", m.data.Err, format.Duration(m.countdownDuration()))
	if m.data.Failures > 1 {
		text += fmt.Sprintf(" (%d consecutive failures)", m.data.Failures)
	}
	return BannerStyle.Width(m.width).Render(text)
}

func (m DashboardModel) countdownDuration() time.Duration {
	return time.Duration(m.countdown) * time.Second
}

func (m DashboardModel) renderErrorPanel() string {
	body := LossStyle.Bold(true).Render("✕") + "\n\n" +
		HeaderStyle.Render(panelHeadline) + "\n\n" +
		SubtleStyle.Render(fmt.Sprintf(panelHint, m.countdown))
	return PanelStyle.Width(max(m.width-borderPadding, minCardWidth)).Render(body)
}

func (m DashboardModel) renderSidebar() string {
	title := HeaderStyle.Render(fmt.Sprintf("Favorite Cryptocurrencies (%d)", m.favorites.Len()))
	return lipgloss.NewStyle().
		Width(sidebarWidth).
		PaddingLeft(1).
		Render(title + "\n" + m.sidebar.View())
}

// renderStatusBar shows the sort order, search state and key hints.
func (m DashboardModel) renderStatusBar() string {
	parts := []string{"Sort: " + m.sortLabel()}
	if term := m.textInput.Value(); term != "" {
		parts = append(parts, fmt.Sprintf("Search: %q (%d/%d)", term, len(m.rows), len(m.data.Assets)))
	}
	parts = append(parts, fmt.Sprintf("Favorites: %d", m.favorites.Len()))

	hints := "1-6 sort · 0 reset · / search · f favorite · v favorites · enter details · q quit"
	return SubtleStyle.Render(strings.Join(parts, " | ") + " | " + hints)
}

func (m DashboardModel) sortLabel() string {
	if !m.sort.Active() {
		return "default"
	}
	return m.sort.Key.Title() + " " + m.sort.Direction.Arrow()
}

func (m DashboardModel) renderDetailView() string {
	card := RenderAssetCard(m.detail, m.favorites.IsFavorited(m.detail.ID), m.width)
	return card + "\n" + SubtleStyle.Render("f favorite · esc back · q quit")
}

// CriticalText renders an error line in the loss color.
func CriticalText(s string) string {
	return LossStyle.Bold(true).Render(s)
}
