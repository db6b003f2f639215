package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verdicthq/verdict/internal/api"
	"github.com/verdicthq/verdict/internal/markup"
)

var (
	proceedStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3DDC84"))
	killStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	pivotStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFB347"))
	neutralStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	sectionStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	verdictBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 2)
)

// decisionStyle maps a decision to its banner style. Matching ignores case;
// unrecognized values render under the neutral style.
func decisionStyle(d api.Decision) lipgloss.Style {
	switch api.Decision(strings.ToLower(string(d))) {
	case api.DecisionProceed:
		return proceedStyle
	case api.DecisionKill:
		return killStyle
	case api.DecisionPivot, api.DecisionNeedsWork:
		return pivotStyle
	default:
		return neutralStyle
	}
}

// renderVerdict writes the full verdict report.
//
//nolint:errcheck // display-only writes; errors are not actionable
func renderVerdict(w io.Writer, env *api.VerdictEnvelope) {
	v := env.Verdict
	if v == nil {
		fmt.Fprintln(w, "No verdict available.")
		return
	}

	title := env.IdeaTitle
	if title == "" {
		title = "Your idea"
	}

	banner := fmt.Sprintf("%s\n\n%s  ·  score %d/100  ·  confidence %.0f%%",
		title,
		decisionStyle(v.Decision).Render(strings.ToUpper(string(v.Decision))),
		v.OverallScore(),
		v.Confidence*100,
	)
	fmt.Fprintln(w, verdictBoxStyle.Render(banner))
	fmt.Fprintln(w)

	renderScorecard(w, v.Scorecard)

	if len(v.KillShots) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Kill shots"))
		for _, ks := range v.KillShots {
			fmt.Fprintf(w, "  %s %s — %s\n", severityGlyph(ks.Severity),
				killStyle.Render(ks.Title), ks.Description)
			if ks.SourceAgent != "" {
				fmt.Fprintf(w, "    %s\n", dimStyle.Render("— "+ks.SourceAgent))
			}
		}
		fmt.Fprintln(w)
	}

	if len(v.Assumptions) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Assumptions to validate"))
		for _, a := range v.Assumptions {
			fmt.Fprintf(w, "  • %s\n", a)
		}
		fmt.Fprintln(w)
	}

	if len(v.TestPlan) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Validation test plan"))
		for _, item := range v.TestPlan {
			fmt.Fprintf(w, "  Day %d: %s\n", item.Day, item.Task)
			if item.SuccessCriteria != "" {
				fmt.Fprintf(w, "         %s\n", dimStyle.Render("success: "+item.SuccessCriteria))
			}
		}
		fmt.Fprintln(w)
	}

	if len(v.PivotIdeas) > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Pivot ideas"))
		for _, p := range v.PivotIdeas {
			fmt.Fprintf(w, "  • %s\n", p)
		}
		fmt.Fprintln(w)
	}

	if v.InvestorReadiness.VerdictLabel != "" || v.InvestorReadiness.Score > 0 {
		fmt.Fprintln(w, sectionStyle.Render("Investor readiness"))
		fmt.Fprintf(w, "  %d/100 — %s\n", v.InvestorReadiness.Score, v.InvestorReadiness.VerdictLabel)
		for _, r := range v.InvestorReadiness.Reasons {
			fmt.Fprintf(w, "  • %s\n", r)
		}
		fmt.Fprintln(w)
	}

	if v.Reasoning != "" {
		fmt.Fprintln(w, sectionStyle.Render("Reasoning"))
		fmt.Fprintln(w, markup.Render(v.Reasoning))
	}
}

// renderScorecard prints the per-dimension scores as an aligned table with
// bar gauges. The overall score lives in the banner, not the table.
//
//nolint:errcheck // display-only writes; errors are not actionable
func renderScorecard(w io.Writer, scores map[string]int) {
	keys := make([]string, 0, len(scores))
	labelWidth := 0
	for k := range scores {
		if k == api.OverallScoreKey {
			continue
		}
		keys = append(keys, k)
		if lw := runewidth.StringWidth(scoreLabel(k)); lw > labelWidth {
			labelWidth = lw
		}
	}
	if len(keys) == 0 {
		return
	}
	sort.Strings(keys)

	fmt.Fprintln(w, sectionStyle.Render("Scorecard"))
	for _, k := range keys {
		score := scores[k]
		fmt.Fprintf(w, "  %s  %s %3d\n", padRight(scoreLabel(k), labelWidth), gauge(score), score)
	}
	fmt.Fprintln(w)
}

// gauge renders a ten-segment bar for a 0..100 score.
func gauge(score int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	filled := score / 10
	bar := strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
	switch {
	case score >= 70:
		return proceedStyle.Render(bar)
	case score >= 40:
		return pivotStyle.Render(bar)
	default:
		return killStyle.Render(bar)
	}
}

// scoreLabel turns a snake_case scorecard key into a display label.
func scoreLabel(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func severityGlyph(severity string) string {
	switch strings.ToLower(severity) {
	case "fatal", "critical":
		return "☠"
	case "major", "high":
		return "▲"
	default:
		return "•"
	}
}

// agentHeader formats the byline for one transcript entry.
func agentHeader(entry api.TranscriptEntry, styled bool) string {
	head := entry.AgentName
	if meta, err := entry.DecodeMetadata(); err == nil && meta.Stage != "" {
		head = fmt.Sprintf("%s · %s", entry.AgentName, meta.Stage)
	}
	if !styled {
		return "── " + head
	}
	return neutralStyle.Render("── " + head)
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
