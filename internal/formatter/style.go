package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/stacksync/internal/models"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// status picks the style a finding status is rendered with.
func (p *Palette) status(s models.Status) lipgloss.Style {
	switch s {
	case models.StatusMatched:
		return p.ok
	case models.StatusMissingEndpoint, models.StatusMissingModel:
		return p.warn
	}
	return p.err
}

// RenderSummary renders a styled terminal summary of report using the default palette.
func RenderSummary(report *models.SyncReport) string {
	return styles.RenderSummary(report)
}

// RenderSummary renders one line per finding followed by the adjustment buckets.
func (p *Palette) RenderSummary(report *models.SyncReport) string {
	var b strings.Builder
	counts := report.Counts()

	b.WriteString(p.title.Render("Sync Report"))
	b.WriteString("\n")

	if len(report.Results) == 0 {
		b.WriteString(p.help.Render("no findings"))
		b.WriteString("\n")
	}
	for _, f := range report.Results {
		line := fmt.Sprintf("%-13s %s", f.Type, f.Subject())
		if other := counterpart(f); other != "" {
			line += " -> " + other
		}
		b.WriteString(fmt.Sprintf("%s %s\n", p.status(f.Status).Render(fmt.Sprintf("%-17s", f.Status)), line))
	}

	b.WriteString("\n")
	for _, a := range report.Adjustments.Critical {
		b.WriteString(p.err.Render("critical") + " " + DescribeAdjustment(a) + "\n")
	}
	for _, a := range report.Adjustments.Backend {
		b.WriteString(p.warn.Render("backend ") + " " + DescribeAdjustment(a) + "\n")
	}
	for _, a := range report.Adjustments.Frontend {
		b.WriteString(p.warn.Render("frontend") + " " + DescribeAdjustment(a) + "\n")
	}

	summary := fmt.Sprintf("%d findings, %d adjustments, %d critical", counts.Findings, counts.Adjustments, counts.Critical)
	if counts.Critical > 0 {
		b.WriteString(p.err.Render(summary))
	} else {
		b.WriteString(p.ok.Render(summary))
	}
	b.WriteString("\n")

	return b.String()
}

// RenderPlanSummary renders a styled count of tasks per kind.
func RenderPlanSummary(title, stack string, tasks []models.Task) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("%s (%s)", title, stack)))
	b.WriteString("\n")

	if len(tasks) == 0 {
		b.WriteString(styles.help.Render("no tasks"))
		b.WriteString("\n")
		return b.String()
	}

	for _, task := range tasks {
		b.WriteString(styles.ok.Render(fmt.Sprintf("%-10s", task.Kind())) + " " + DescribeTask(task) + "\n")
	}
	counts := models.CountByKind(tasks)
	parts := make([]string, 0, len(counts))
	for _, kind := range []models.TaskType{models.TaskComponent, models.TaskController, models.TaskModel, models.TaskService} {
		if n := counts[kind]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, kind))
		}
	}
	b.WriteString(styles.help.Render(strings.Join(parts, ", ")))
	b.WriteString("\n")
	return b.String()
}
