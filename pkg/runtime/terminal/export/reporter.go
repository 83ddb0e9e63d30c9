package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

const messageWidth = 50

// Reporter renders reports to a terminal.
type Reporter struct {
	writer io.Writer
	styles styles
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		styles: newStyles(lipgloss.NewRenderer(writer)),
	}
}

func (c *Reporter) println(parts ...string) {
	fmt.Fprintln(c.writer, strings.Join(parts, ""))
}

// Handle prints the header, the results table, the recommendations and any
// AI narration of report.
func (c *Reporter) Handle(report domain.BucketReport) error {
	s := c.styles
	health := s.health(report.Health)

	header := strings.Join([]string{
		s.title.Render("S3 DIAGNOSTIC REPORT"),
		s.label.Render("Bucket: ") + report.BucketName,
		s.label.Render("Region: ") + report.Region,
		s.label.Render("Score:  ") + health.Render(fmt.Sprintf("%d/100", report.Score)),
		s.label.Render("Health: ") + health.Render(string(report.Health)),
	}, "\n")
	c.println(s.header.Render(header))

	c.println(c.resultsTable(report.Results))

	counts := report.Counts()
	c.println(s.muted.Render(fmt.Sprintf("%d checks: %d passed, %d failed, %d warnings, %d errors (%s)",
		counts.Total, counts.Passed, counts.Failed, counts.Warnings, counts.Errors,
		report.Duration().Round(time.Millisecond))))

	n := 0
	for _, r := range report.Results {
		if r.Recommendation == "" {
			continue
		}
		if n == 0 {
			c.println()
			c.println(s.section.Render("Recommendations:"))
		}
		n++
		marker := s.severity(domain.SeverityMedium).Render("●")
		if r.Severity >= domain.SeverityHigh {
			marker = s.severity(domain.SeverityCritical).Render("●")
		}
		c.println(fmt.Sprintf("  %s %d. [%s] %s", marker, n, r.CheckName(), r.Recommendation))
	}

	if report.AIAnalysis != "" {
		c.println(s.panel.Render(s.title.Render("AI Analysis") + "\n\n" + report.AIAnalysis))
	}
	if report.AISummary != "" {
		c.println(s.panel.BorderForeground(colorLow).Render(s.title.Render("AI Summary") + "\n\n" + report.AISummary))
	}
	return nil
}

func (c *Reporter) resultsTable(results []domain.DiagnosticResult) string {
	s := c.styles
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers("Check", "Status", "Severity", "Message", "Fix?")

	for _, r := range results {
		fix := ""
		if r.AutoFixable {
			fix = "yes"
		}
		t.Row(
			r.CheckName(),
			s.status(r.Status).Render(statusLabel(r.Status)),
			s.severity(r.Severity).Render(r.Severity.String()),
			r.Message,
			fix,
		)
	}

	t.StyleFunc(func(row, col int) lipgloss.Style {
		style := s.r.NewStyle().Padding(0, 1)
		if row == table.HeaderRow {
			return style.Bold(true)
		}
		if col == 3 {
			return style.Width(messageWidth + 2)
		}
		return style
	})
	return t.Render()
}

// Advice prints the structured parts of an AI analysis.
func (c *Reporter) Advice(advice domain.Advice) {
	s := c.styles
	if advice.HealthAssessment != "" {
		c.println(s.label.Render("AI health assessment: "), advice.HealthAssessment)
	}
	if len(advice.PriorityActions) > 0 {
		c.println(s.section.Render("Priority actions:"))
		for _, a := range advice.PriorityActions {
			c.println(fmt.Sprintf("  %d. %s", a.Priority, a.Action))
			if a.Reason != "" {
				c.println(s.muted.Render("     " + a.Reason))
			}
			for _, cmd := range a.Commands {
				c.println("     $ " + cmd)
			}
		}
	}
	c.list("Security recommendations:", advice.SecurityRecommendations)
	c.list("Cost optimization:", advice.CostOptimization)
}

func (c *Reporter) list(title string, items []string) {
	if len(items) == 0 {
		return
	}
	c.println(c.styles.section.Render(title))
	for _, item := range items {
		c.println("  - " + item)
	}
}

// FixPlan lists the fixes awaiting confirmation.
func (c *Reporter) FixPlan(selected []domain.DiagnosticResult) {
	c.println(c.styles.section.Render(fmt.Sprintf("Found %d auto-fixable issues:", len(selected))))
	for _, r := range selected {
		c.println(fmt.Sprintf("  - %s: %s", r.CheckName(), r.FixDescription))
	}
}

func (c *Reporter) FixSummary(summary domain.FixSummary) {
	s := c.styles
	if len(summary.Outcomes) == 0 {
		c.println(s.muted.Render("No fixes applied."))
		return
	}
	for _, o := range summary.Outcomes {
		if o.Success {
			c.println(s.status(domain.StatusPass).Render("✓ "), o.Check.Name(), ": ", o.Message)
		} else {
			detail := o.Error
			if detail == "" {
				detail = o.Message
			}
			c.println(s.status(domain.StatusFail).Render("✗ "), o.Check.Name(), ": ", detail)
		}
	}
	improvement := summary.Improvement()
	sign := ""
	if improvement > 0 {
		sign = "+"
	}
	c.println(s.label.Render("Score: "), fmt.Sprintf("%d -> %d (%s%d)",
		summary.Before.Score, summary.AfterScore(), sign, improvement))
}

func (c *Reporter) AccountSummary(summary domain.AccountSummary) {
	s := c.styles
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers("Bucket", "Region", "Score", "Health", "Passed", "Failed", "Warnings")

	for _, b := range summary.Buckets {
		health := s.health(b.Health).Render(string(b.Health))
		if b.Error != "" {
			health = s.health(domain.HealthError).Render(b.Error)
		}
		t.Row(
			b.Bucket,
			b.Region,
			strconv.Itoa(b.Score),
			health,
			strconv.Itoa(b.Counts.Passed),
			strconv.Itoa(b.Counts.Failed),
			strconv.Itoa(b.Counts.Warnings),
		)
	}
	c.println(t.Render())
	c.println(s.label.Render("Buckets: "), strconv.Itoa(len(summary.Buckets)),
		s.label.Render("  Average score: "), strconv.Itoa(summary.AverageScore))
}

func (c *Reporter) History(h domain.BucketHistory) {
	s := c.styles
	if len(h.Records) == 0 {
		c.println(s.muted.Render("No scans recorded for " + h.Bucket))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		Headers("Scanned", "Score", "Health", "Failed", "Warnings", "Errors")
	for _, r := range h.Records {
		t.Row(
			r.ScanStart.Local().Format("2006-01-02 15:04:05"),
			strconv.Itoa(r.Score),
			s.health(r.Health).Render(string(r.Health)),
			strconv.Itoa(r.Counts.Failed),
			strconv.Itoa(r.Counts.Warnings),
			strconv.Itoa(r.Counts.Errors),
		)
	}
	c.println(t.Render())
	c.println(s.label.Render("Trend: "), fmt.Sprintf("%s (%+d)", h.Trend, h.Delta))
}

func (c *Reporter) Buckets(buckets []string) {
	c.println(c.styles.section.Render(fmt.Sprintf("Found %d buckets:", len(buckets))))
	for _, b := range buckets {
		c.println("  - " + b)
	}
}

func (c *Reporter) Profiles(profiles []domain.AWSProfile) {
	if len(profiles) == 0 {
		c.println(c.styles.muted.Render("No AWS profiles found."))
		return
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.border).
		Headers("Profile", "Region", "Source")
	for _, p := range profiles {
		t.Row(p.Name, p.Region, string(p.Source))
	}
	c.println(t.Render())
}

// Text prints a free-form block such as a troubleshooting answer.
func (c *Reporter) Text(title, body string) {
	c.println(c.styles.panel.Render(c.styles.title.Render(title) + "\n\n" + body))
}

func (c *Reporter) Info(msg string) {
	c.println(c.styles.muted.Render(msg))
}
