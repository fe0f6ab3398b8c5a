package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/krishisahayak/sahayak/internal/market"
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return m.tr("Loading...")
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var body string
	switch m.currentView {
	case ViewPrices:
		body = m.renderPrices()
	case ViewSearch:
		body = m.renderSearch()
	case ViewNotifications:
		body = m.renderNotifications()
	default:
		body = m.renderDashboard()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("Krishi Sahayak")

	online := m.styles.SuccessText.Render(m.tr("Online"))
	if !m.state.IsOnline {
		online = m.styles.DangerText.Render(m.tr("Offline"))
	}

	who := m.tr("Guest")
	if m.state.User != nil {
		who = m.state.User.Name
	}

	meta := m.styles.MutedText.Render(
		fmt.Sprintf("%s | %s | %s", who, m.state.Language, online))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(meta) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Width(m.width).Render(
		title + strings.Repeat(" ", gap) + meta)
}

func (m Model) renderFooter() string {
	hints := []string{
		"1-4 views", "/ search", "r refresh", "T theme", "L language", "? help", "q quit",
	}
	return m.styles.Footer.Width(m.width).Render(strings.Join(hints, "  "))
}

func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.tr("Dashboard")) + "\n\n")

	if m.state.Err != "" {
		b.WriteString(m.styles.DangerText.Render(m.state.Err) + "\n\n")
	}

	if m.state.User != nil {
		u := m.state.User
		b.WriteString(m.styles.Text.Render(fmt.Sprintf("%s  %s", u.Name, u.Location)) + "\n")
		if len(u.PrimaryCrops) > 0 {
			b.WriteString(m.styles.MutedText.Render(strings.Join(u.PrimaryCrops, ", ")) + "\n")
		}
	} else {
		b.WriteString(m.styles.MutedText.Render(m.tr("Not signed in")) + "\n")
	}
	b.WriteString("\n")

	if crops := m.state.Preferences.FavoriteCrops; len(crops) > 0 {
		b.WriteString(m.styles.AccentText.Render(m.tr("Crops")) + "\n")
		for _, crop := range crops {
			b.WriteString("  " + m.styles.Text.Render(crop) + "\n")
		}
		b.WriteString("\n")
	}

	if n := len(m.state.Notifications); n > 0 {
		latest := m.state.Notifications[0]
		line := fmt.Sprintf("%s (%d)", latest.Title, n)
		b.WriteString(m.styles.SeverityStyle(latest.Type).Render(line) + "\n")
	}

	return m.styles.Panel.Width(m.contentWidth()).Render(b.String())
}

func (m Model) renderPrices() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.tr("Market Prices")) + "  " +
		m.styles.AccentText.Render(m.crop) + "\n\n")

	if m.quote == nil {
		b.WriteString(m.styles.MutedText.Render(m.tr("Loading...")) + "\n")
		return m.styles.Panel.Width(m.contentWidth()).Render(b.String())
	}

	if note := originNote(m.quoteOrigin); note != "" {
		b.WriteString(m.styles.WarningText.Render(m.tr(note)) + "\n\n")
	}

	q := m.quote
	b.WriteString(m.styles.Text.Render(fmt.Sprintf(
		"Min %7.0f   Modal %7.0f   Max %7.0f", q.MinPrice, q.ModalPrice, q.MaxPrice)) + "\n")
	b.WriteString(m.styles.MutedText.Render(fmt.Sprintf(
		"Week %.0f-%.0f   Month avg %.0f   Volatility %.0f%%",
		q.WeeklyLow, q.WeeklyHigh, q.MonthlyAvg, q.Volatility)) + "\n\n")

	for _, mk := range q.Markets {
		change := m.styles.MutedText
		if mk.Change > 0 {
			change = m.styles.SuccessText
		} else if mk.Change < 0 {
			change = m.styles.DangerText
		}
		b.WriteString(fmt.Sprintf("  %-20s %8.0f  %s\n",
			mk.Name, mk.Price, change.Render(fmt.Sprintf("%+.1f%%", mk.Change))))
	}

	if len(m.trend) > 0 {
		b.WriteString("\n" + m.styles.AccentText.Render(m.tr("Price Trends")) + "\n")
		for _, p := range m.trend {
			b.WriteString(m.styles.MutedText.Render(
				fmt.Sprintf("  %-8s %8.0f", p.Date, p.ModalPrice)) + "\n")
		}
	}

	return m.styles.Panel.Width(m.contentWidth()).Render(b.String())
}

// originNote captions degraded price data so stale or placeholder numbers
// are never mistaken for live quotes.
func originNote(origin market.Origin) string {
	switch origin {
	case market.OriginStale:
		return "Showing recent data. Live prices are unavailable."
	case market.OriginFallback:
		return "Live prices are unavailable."
	default:
		return ""
	}
}

func (m Model) renderSearch() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.tr("Search")) + "\n\n")

	if m.searching {
		b.WriteString(m.searchInput.View() + "\n\n")
	}

	if len(m.state.SearchHistory) == 0 {
		b.WriteString(m.styles.MutedText.Render(m.tr("No recent searches")) + "\n")
	}
	for i, q := range m.state.SearchHistory {
		line := "  " + q
		if i == m.selected && !m.searching {
			line = m.styles.Selected.Render("> " + q)
		}
		b.WriteString(line + "\n")
	}

	return m.styles.Panel.Width(m.contentWidth()).Render(b.String())
}

func (m Model) renderNotifications() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render(m.tr("Notifications")) + "\n\n")

	if len(m.state.Notifications) == 0 {
		b.WriteString(m.styles.MutedText.Render(m.tr("All clear")) + "\n")
	}
	for i, n := range m.state.Notifications {
		marker := "  "
		if i == m.selected {
			marker = m.styles.Selected.Render("> ")
		}
		b.WriteString(marker + m.styles.SeverityStyle(n.Type).Render(n.Title) + "\n")
		if n.Message != "" {
			b.WriteString("    " + m.styles.MutedText.Render(n.Message) + "\n")
		}
	}

	return m.styles.Panel.Width(m.contentWidth()).Render(b.String())
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"1", "Dashboard"},
		{"2", "Market prices"},
		{"3", "Search"},
		{"4", "Notifications"},
		{"/", "New search"},
		{"enter", "Run selected search"},
		{"r", "Refresh prices"},
		{"d / D", "Dismiss one / all notifications"},
		{"X", "Clear search history"},
		{"O", "Sign out"},
		{"T", "Cycle theme"},
		{"L", "Cycle language"},
		{"q", "Quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.tr("Help")) + "\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			m.styles.AccentText.Render(fmt.Sprintf("%-7s", row[0])),
			m.styles.Text.Render(row[1])))
	}
	b.WriteString("\n" + m.styles.MutedText.Render(m.tr("Press any key to close")))

	return m.styles.Panel.Width(m.contentWidth()).Render(b.String())
}

func (m Model) contentWidth() int {
	if m.width > 4 {
		return m.width - 2
	}
	return 76
}
