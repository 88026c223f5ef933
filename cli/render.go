package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-progress/progress"
)

// Styles for status output.
var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// RenderStatus formats a progress document for human-readable display.
func RenderStatus(doc *progress.Document) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(doc.Project))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Current work"))
	b.WriteString("\n")
	b.WriteString(renderWork(doc.CurrentWork))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Last session"))
	b.WriteString("\n")
	b.WriteString(renderSession(doc.LastSession))

	if len(doc.KnownIssues) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Known issues"))
		b.WriteString("\n")
		for _, issue := range doc.KnownIssues {
			b.WriteString(warnStyle.Render("  ! " + issue))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderWork(work progress.WorkState) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value)))
	}

	line("mode", string(work.Type))
	switch work.Type {
	case progress.WorkPlan:
		if work.Plan != nil {
			line("plan", *work.Plan)
		}
		if work.PlanTask != nil {
			line("task", fmt.Sprintf("%d", *work.PlanTask))
		}
	case progress.WorkDebug:
		if work.DebugIssue != nil {
			line("issue", *work.DebugIssue)
		}
		if work.DebugPhase != nil {
			line("phase", *work.DebugPhase)
		}
	case progress.WorkFeature:
		if work.FeatureID != nil {
			line("feature", *work.FeatureID)
		}
	}
	return b.String()
}

func renderSession(session progress.SessionRecord) string {
	var b strings.Builder
	line := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render(label+":"), valueStyle.Render(value)))
	}

	line("date", session.Date)
	line("duration", fmt.Sprintf("%d min", session.DurationMinutes))
	if session.Summary != "" {
		line("summary", session.Summary)
	}
	if len(session.Commits) > 0 {
		line("commits", fmt.Sprintf("%d", len(session.Commits)))
	}
	for _, step := range session.NextSteps {
		b.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("next:"), step))
	}
	return b.String()
}
