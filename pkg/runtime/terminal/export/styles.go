package export

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/de-tools/bucket-doctor/pkg/models/domain"
)

var (
	colorCritical = lipgloss.Color("#FF0000")
	colorHigh     = lipgloss.Color("#FF8800")
	colorMedium   = lipgloss.Color("#FFFF00")
	colorLow      = lipgloss.Color("#00FF00")
	colorInfo     = lipgloss.Color("#58A6FF")
	colorMuted    = lipgloss.Color("#888888")
	colorAccent   = lipgloss.Color("#7B68EE")
	colorBorder   = lipgloss.Color("#444444")
)

type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
	border  lipgloss.Style
	header  lipgloss.Style
	panel   lipgloss.Style
	section lipgloss.Style
	r       *lipgloss.Renderer
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		r:     r,
		title: r.NewStyle().Bold(true).Foreground(colorAccent),
		label: r.NewStyle().Bold(true),
		muted: r.NewStyle().Foreground(colorMuted),
		border: r.NewStyle().
			Foreground(colorBorder),
		header: r.NewStyle().
			Bold(true).
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder),
		panel: r.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorInfo),
		section: r.NewStyle().Bold(true).Foreground(colorMedium),
	}
}

func (s styles) health(h domain.Health) lipgloss.Style {
	switch h {
	case domain.HealthHealthy, domain.HealthGood:
		return s.r.NewStyle().Foreground(colorLow).Bold(true)
	case domain.HealthNeedsAttention:
		return s.r.NewStyle().Foreground(colorMedium).Bold(true)
	case domain.HealthUnhealthy:
		return s.r.NewStyle().Foreground(colorHigh).Bold(true)
	case domain.HealthCritical, domain.HealthError:
		return s.r.NewStyle().Foreground(colorCritical).Bold(true)
	default:
		return s.r.NewStyle()
	}
}

func (s styles) status(st domain.CheckStatus) lipgloss.Style {
	switch st {
	case domain.StatusPass:
		return s.r.NewStyle().Foreground(colorLow)
	case domain.StatusWarning:
		return s.r.NewStyle().Foreground(colorMedium)
	case domain.StatusFail, domain.StatusError:
		return s.r.NewStyle().Foreground(colorCritical)
	case domain.StatusInfo:
		return s.r.NewStyle().Foreground(colorInfo)
	default:
		return s.r.NewStyle().Foreground(colorMuted)
	}
}

func (s styles) severity(sev domain.Severity) lipgloss.Style {
	switch sev {
	case domain.SeverityCritical:
		return s.r.NewStyle().Foreground(colorCritical).Bold(true)
	case domain.SeverityHigh:
		return s.r.NewStyle().Foreground(colorHigh).Bold(true)
	case domain.SeverityMedium:
		return s.r.NewStyle().Foreground(colorMedium)
	case domain.SeverityLow:
		return s.r.NewStyle().Foreground(colorLow)
	default:
		return s.r.NewStyle().Foreground(colorInfo)
	}
}

func statusLabel(st domain.CheckStatus) string {
	switch st {
	case domain.StatusPass:
		return "✓ PASS"
	case domain.StatusFail:
		return "✗ FAIL"
	case domain.StatusWarning:
		return "⚠ WARN"
	case domain.StatusError:
		return "✗ ERR"
	case domain.StatusInfo:
		return "ℹ INFO"
	default:
		return "- SKIP"
	}
}
