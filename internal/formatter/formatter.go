// package formatter renders operation outputs as Markdown, CSV, plain text and styled terminal summaries
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/desertthunder/stacksync/internal/models"
	"github.com/desertthunder/stacksync/internal/shared"
)

// Format names an output encoding accepted by [RenderReport] and [WriteReport].
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatText     Format = "txt"
)

// ParseFormat accepts the names above plus "md" and "text".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "txt", "text":
		return FormatText, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, s)
}

// SyncReportToCSV converts a SyncReport to CSV with one row per finding: Type, Status, Subject, Counterpart, Details
func SyncReportToCSV(report *models.SyncReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Type", "Status", "Subject", "Counterpart", "Details"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, f := range report.Results {
		record := []string{
			string(f.Type),
			string(f.Status),
			f.Subject(),
			counterpart(f),
			findingDetails(f),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// SyncReportToMarkdown converts a SyncReport to a Markdown document with a findings table and one section per adjustment bucket
func SyncReportToMarkdown(report *models.SyncReport) ([]byte, error) {
	var buf bytes.Buffer
	counts := report.Counts()

	buf.WriteString("# Frontend/Backend Sync Report\n\n")
	buf.WriteString(fmt.Sprintf("**Findings**: %d\n", counts.Findings))
	buf.WriteString(fmt.Sprintf("**Adjustments**: %d (%d critical)\n\n", counts.Adjustments, counts.Critical))

	buf.WriteString("## Findings\n\n")
	if len(report.Results) == 0 {
		buf.WriteString("_No findings._\n\n")
	} else {
		buf.WriteString("| Type | Status | Subject | Counterpart | Details |\n")
		buf.WriteString("|------|--------|---------|-------------|---------|\n")
		for _, f := range report.Results {
			buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				f.Type, f.Status, mdCell(f.Subject()), mdCell(counterpart(f)), mdCell(findingDetails(f))))
		}
		buf.WriteString("\n")
	}

	for _, bucket := range []struct {
		title string
		items []models.Adjustment
	}{
		{"Critical", report.Adjustments.Critical},
		{"Backend", report.Adjustments.Backend},
		{"Frontend", report.Adjustments.Frontend},
	} {
		buf.WriteString(fmt.Sprintf("## %s Adjustments\n\n", bucket.title))
		if len(bucket.items) == 0 {
			buf.WriteString("_None._\n\n")
			continue
		}
		for _, a := range bucket.items {
			buf.WriteString(fmt.Sprintf("- %s\n", DescribeAdjustment(a)))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// SyncReportToText converts a SyncReport to plain text
func SyncReportToText(report *models.SyncReport) ([]byte, error) {
	var buf bytes.Buffer
	counts := report.Counts()

	buf.WriteString(fmt.Sprintf("Findings: %d\n", counts.Findings))
	for i, f := range report.Results {
		line := fmt.Sprintf("%d. [%s] %s %s", i+1, f.Type, f.Subject(), f.Status)
		if other := counterpart(f); other != "" {
			line += " -> " + other
		}
		if details := findingDetails(f); details != "" {
			line += " (" + details + ")"
		}
		buf.WriteString(line + "\n")
	}

	buf.WriteString(fmt.Sprintf("\nAdjustments: %d (%d critical)\n", counts.Adjustments, counts.Critical))
	for _, bucket := range []struct {
		name  string
		items []models.Adjustment
	}{
		{"critical", report.Adjustments.Critical},
		{"backend", report.Adjustments.Backend},
		{"frontend", report.Adjustments.Frontend},
	} {
		for _, a := range bucket.items {
			buf.WriteString(fmt.Sprintf("- %s: %s\n", bucket.name, DescribeAdjustment(a)))
		}
	}

	return buf.Bytes(), nil
}

// FrontendPlanToMarkdown converts a FrontendPlan to a Markdown checklist
func FrontendPlanToMarkdown(plan *models.FrontendPlan) ([]byte, error) {
	return tasksToMarkdown("Frontend Tasks", plan.TechStack, plan.Tasks, plan.Dependencies), nil
}

// BackendPlanToMarkdown converts a BackendPlan to a Markdown checklist
func BackendPlanToMarkdown(plan *models.BackendPlan) ([]byte, error) {
	return tasksToMarkdown("Backend Tasks", plan.TechStack, plan.Tasks, plan.Dependencies), nil
}

func tasksToMarkdown(title, stack string, tasks []models.Task, deps models.List) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Tech stack**: %s\n", stack))
	buf.WriteString(fmt.Sprintf("**Tasks**: %d\n\n", len(tasks)))

	buf.WriteString("## Tasks\n\n")
	for _, task := range tasks {
		buf.WriteString(fmt.Sprintf("- [ ] %s\n", DescribeTask(task)))
	}

	if len(deps) > 0 {
		buf.WriteString("\n## Dependencies\n\n")
		for _, dep := range deps {
			buf.WriteString(fmt.Sprintf("- %s\n", describeValue(dep)))
		}
	}

	return buf.Bytes()
}

// DescribeTask returns a one-line summary of a task.
func DescribeTask(task models.Task) string {
	switch t := task.(type) {
	case models.ComponentTask:
		return withList(fmt.Sprintf("Component **%s**", orUnnamed(t.Name)), "requires", t.Requirements)
	case models.ClientServiceTask:
		s := fmt.Sprintf("Client service for `%s`", route(t.Method, t.Endpoint))
		if t.DataModel != "" {
			s += fmt.Sprintf(" returning %s", t.DataModel)
		}
		return s
	case models.ControllerTask:
		s := fmt.Sprintf("Controller action `%s`", route(t.Method, t.Endpoint))
		if t.RequestModel != "" {
			s += fmt.Sprintf(" accepting %s", t.RequestModel)
		}
		if t.ResponseModel != "" {
			s += fmt.Sprintf(" returning %s", t.ResponseModel)
		}
		return withList(s, "secured by", t.Security)
	case models.ModelTask:
		return withList(fmt.Sprintf("Model **%s**", orUnnamed(t.Name)), "properties", t.Properties)
	case models.ServiceTask:
		return withList(fmt.Sprintf("Service **%s**", orUnnamed(t.Name)), "operations", t.Operations)
	}
	return string(task.Kind())
}

// DescribeAdjustment returns a one-line summary of an adjustment.
func DescribeAdjustment(a models.Adjustment) string {
	var s string
	switch a.Type {
	case models.AdjustCreateEndpoint:
		s = fmt.Sprintf("create endpoint for %s", a.Service)
	case models.AdjustCreateModel:
		s = fmt.Sprintf("create model %s", a.Model)
	case models.AdjustAPIMethodMismatch:
		s = fmt.Sprintf("align methods of %s", a.Service)
	case models.AdjustModelPropertyMismatch:
		s = fmt.Sprintf("align properties of %s", a.Model)
	case models.AdjustAuthMechanismMismatch:
		s = "align auth mechanism"
	case models.AdjustAuthRoleMismatch:
		s = "align auth roles"
	default:
		s = string(a.Type)
	}

	if details := describeDetails(a.Details); details != "" {
		s += ": " + details
	}
	return s
}

func counterpart(f models.Finding) string {
	switch {
	case f.BackendEndpoint != nil:
		return *f.BackendEndpoint
	case f.Type == models.FindingAuth && f.Backend != nil:
		return *f.Backend
	}
	return ""
}

func findingDetails(f models.Finding) string {
	switch {
	case f.Methods != nil:
		return describeDetails(f.Methods)
	case f.PropertyDiffs != nil:
		return describeDetails(f.PropertyDiffs)
	case f.Differences != nil:
		return describeDetails(f.Differences)
	case f.Type == models.FindingAuth && f.Status == models.StatusMismatch:
		return fmt.Sprintf("frontend %s", describeValue(models.OptionalString(f.Frontend)))
	}
	return ""
}

func describeDetails(details any) string {
	var parts []string
	switch d := details.(type) {
	case nil:
		return ""
	case *models.MethodDiff:
		if d == nil {
			return ""
		}
		parts = appendList(parts, "frontend only", d.FrontendOnly)
		parts = appendList(parts, "backend only", d.BackendOnly)
	case *models.PropertyDiff:
		if d == nil {
			return ""
		}
		parts = appendList(parts, "frontend only", d.FrontendOnly)
		parts = appendList(parts, "backend only", d.BackendOnly)
		for _, m := range d.TypeMismatches {
			parts = append(parts, fmt.Sprintf("%s is %s vs %s", m.Property, m.Frontend, m.Backend))
		}
	case *models.RoleDiff:
		if d == nil {
			return ""
		}
		parts = appendList(parts, "frontend only", d.FrontendOnly)
		parts = appendList(parts, "backend only", d.BackendOnly)
	case models.SideBySide:
		return fmt.Sprintf("frontend %s, backend %s", describeValue(d.Frontend), describeValue(d.Backend))
	default:
		return describeValue(d)
	}
	return strings.Join(parts, "; ")
}

func describeValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "none"
	case string:
		return orNone(t)
	case []string:
		if len(t) == 0 {
			return "none"
		}
		return strings.Join(t, ", ")
	default:
		data, err := shared.MarshalJSON(t, false)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(data)
	}
}

func appendList(parts []string, label string, values []string) []string {
	if len(values) == 0 {
		return parts
	}
	return append(parts, fmt.Sprintf("%s: %s", label, strings.Join(values, ", ")))
}

func withList(s, label string, values models.List) string {
	if len(values) == 0 {
		return s
	}
	items := make([]string, len(values))
	for i, v := range values {
		if str, ok := v.(string); ok {
			items[i] = str
		} else {
			items[i] = describeValue(v)
		}
	}
	return fmt.Sprintf("%s (%s %s)", s, label, strings.Join(items, ", "))
}

func route(method, endpoint string) string {
	if endpoint == "" {
		endpoint = "?"
	}
	if method == "" {
		return endpoint
	}
	return strings.ToUpper(method) + " " + endpoint
}

func orUnnamed(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderReport encodes report in the given format.
func RenderReport(report *models.SyncReport, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return SyncReportToMarkdown(report)
	case FormatCSV:
		return SyncReportToCSV(report)
	case FormatText:
		return SyncReportToText(report)
	case FormatJSON, "":
		return shared.MarshalJSON(report, true)
	}
	return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
}

// WriteReport renders report in the given format and writes it to path.
//
// Defaults to sync_report.{ext} when path is empty.
func WriteReport(report *models.SyncReport, format Format, path string) (string, error) {
	if path == "" {
		path = "sync_report." + Extension(format)
	}

	data, err := RenderReport(report, format)
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}

// WriteJSONFile writes v to path as indented JSON.
func WriteJSONFile(v any, path string) error {
	data, err := shared.MarshalJSON(v, true)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

// Extension returns the file extension used for format.
func Extension(format Format) string {
	switch format {
	case FormatMarkdown:
		return "md"
	case FormatCSV:
		return "csv"
	case FormatText:
		return "txt"
	}
	return "json"
}
