package tui

import (
	"fmt"
	"strings"
	"time"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)

	if len(m.Failures) > 0 {
		renderFailures(&b, m)
	}

	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	b.WriteString(titleStyle.Render("rlcluster: " + m.Name))
	if m.Driver != "" {
		b.WriteString(subtitleStyle.Render(" (" + m.Driver + ")"))
	}

	status := " "
	switch {
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Done && len(m.Failures) > 0:
		status += warningStyle.Render(fmt.Sprintf("Deployed with %d failed operations", len(m.Failures)))
	case m.Done:
		status += readyStyle.Render("Deployed")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)) + dimStyle.Render(" Deploying...")
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := calculateProgress(m)
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := barDoneStyle.Render(strings.Repeat("█", filled)) +
		barTodoStyle.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d%%\n", bar, int(progress*100))
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	for _, phase := range m.Phases {
		status := phase.status()
		style := statusStyles[status]
		mark := statusMarks[status]
		if status == statusActive {
			mark = currentSpinner(m.SpinnerFrame)
		}

		line := phase.Name
		if phase.Total > 0 && !phase.Done {
			line += fmt.Sprintf(" %d/%d", phase.Current, phase.Total)
		}
		fmt.Fprintf(b, "    %s %s\n", style.Render(mark), style.Render(line))
	}
}

func renderFailures(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render(fmt.Sprintf("  Failed operations (%d)", len(m.Failures))))
	b.WriteString("\n")

	for _, f := range m.Failures {
		fmt.Fprintf(b, "    %s %s\n", failedStyle.Render(f.Op+" "+f.Resource), dimStyle.Render(f.Err.Error()))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	parts := []string{
		fmt.Sprintf("elapsed: %s", formatDuration(time.Since(m.StartTime))),
		fmt.Sprintf("operations: %d ok, %d failed", m.Succeeded, len(m.Failures)),
	}
	b.WriteString(footerStyle.Render(fmt.Sprintf("  %s  |  q: quit", strings.Join(parts, "  |  "))))
	b.WriteString("\n")
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func calculateProgress(m Model) float64 {
	if m.Done {
		return 1.0
	}
	if len(m.Phases) == 0 {
		return 0
	}

	progress := float64(m.completed())
	for _, p := range m.Phases {
		if p.Active && p.Total > 0 {
			progress += float64(p.Current) / float64(p.Total)
		}
	}
	return progress / float64(len(m.Phases))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
