package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/logolink/pkg/app/styles"
	"github.com/kerbaras/logolink/pkg/data"
	"github.com/kerbaras/logolink/pkg/utils"
)

// ChapterList is a scrollable list of chapter results rendered as cards.
type ChapterList struct {
	Items         []data.Result
	SelectedIndex int
	Width         int
	Height        int
}

func NewChapterList() *ChapterList {
	return &ChapterList{
		Items:         []data.Result{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (m *ChapterList) SetItems(items []data.Result) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *ChapterList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *ChapterList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *ChapterList) Selected() *data.Result {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

// visibleRange returns the window of items that fits the height, keeping the
// selection in view. Each card takes cardHeight lines.
func (m *ChapterList) visibleRange(cardHeight int) (int, int) {
	perPage := m.Height / cardHeight
	if perPage < 1 {
		perPage = 1
	}
	start := 0
	if m.SelectedIndex >= perPage {
		start = m.SelectedIndex - perPage + 1
	}
	end := start + perPage
	if end > len(m.Items) {
		end = len(m.Items)
	}
	return start, end
}

func (m *ChapterList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No chapters to show")
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	start, end := m.visibleRange(5)

	for i := start; i < end; i++ {
		item := m.Items[i]
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		title := item.Title
		if title == "" {
			title = "(untitled)"
		}
		header := styles.TitleStyle.Render(fmt.Sprintf("#%s %s", item.ChapterID, utils.TruncateString(title, m.Width-16)))
		status := styles.StatusStyle(item.Outcome).Render(fmt.Sprintf("%s %s", styles.Glyph(item.Outcome), item.Outcome))

		detail := styles.MutedStyle.Render("no logoUrl")
		if item.Outcome != data.OutcomeSkipped {
			detail = styles.MutedStyle.Render(fmt.Sprintf("%s → %s",
				utils.TruncateString(item.OriginalURL, (m.Width-12)/2),
				item.ExpectedFilename))
		}

		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, header, "  ", status),
			detail,
		)

		card := cardStyle.Width(m.Width - 4).Render(cardContent)
		b.WriteString(card)
		b.WriteString("\n")
	}

	if len(m.Items) > end-start {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d/%d", m.SelectedIndex+1, len(m.Items))))
	}

	return b.String()
}
