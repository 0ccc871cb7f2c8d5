package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/logolink/pkg/app/styles"
	"github.com/kerbaras/logolink/pkg/data"
)

// ProgressLine renders the lines printed for one processed chapter. Skipped
// chapters produce no output.
func ProgressLine(res data.Result) string {
	header := fmt.Sprintf("%s #%s: %s", styles.Glyph(res.Outcome), res.ChapterID, res.Title)

	switch res.Outcome {
	case data.OutcomeUpdated:
		lines := []string{
			styles.StatusUpdated.Render(header),
			"   " + res.LocalPath,
		}
		if res.AlreadyLocal {
			lines = append(lines, styles.MutedStyle.Render("   already local"))
		}
		return strings.Join(lines, "\n") + "\n"
	case data.OutcomeMissing:
		return strings.Join([]string{
			styles.StatusMissing.Render(header),
			"   Logo not found: " + res.ExpectedFilename,
			styles.MutedStyle.Render("   Keeping original URL: " + res.OriginalURL),
		}, "\n") + "\n"
	default:
		return ""
	}
}

// Summary renders the final block with the counters and the logos location.
func Summary(report data.Report, logosDir string, dryRun bool, width int) string {
	title := "✨ Update Complete!"
	if dryRun {
		title = "🔍 Dry Run Complete (nothing written)"
	}

	lines := []string{
		styles.TitleStyle.Render(title),
		"",
		styles.StatusUpdated.Render(fmt.Sprintf("✅ Updated: %d logos", report.Updated)),
		styles.StatusMissing.Render(fmt.Sprintf("⚠️  Missing: %d logos (keeping original URLs)", report.Missing)),
		styles.StatusSkipped.Render(fmt.Sprintf("⏭️  Skipped: %d chapters (no logoUrl)", report.Skipped)),
	}
	if bar := RatioBar(report, width); bar != "" {
		lines = append(lines, "", bar)
	}
	lines = append(lines, "", fmt.Sprintf("📂 Logos location: %s", logosDir))

	return styles.SummaryStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// RatioBar renders the share of updated chapters among those with a logo.
func RatioBar(report data.Report, width int) string {
	withLogo := report.Updated + report.Missing
	if withLogo == 0 || width <= 0 {
		return ""
	}
	return renderProgressBar(report.Updated, withLogo, width)
}

func renderProgressBar(current, total, width int) string {
	if total == 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}
