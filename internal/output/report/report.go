// Package report renders a session record for the operator's terminal.
package report

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/EddWithSauce/KabutechMushyModel/internal/model"
)

var (
	colorGreen  = lipgloss.Color("#10b981")
	colorYellow = lipgloss.Color("#f59e0b")
	colorRed    = lipgloss.Color("#ef4444")
	colorGray   = lipgloss.Color("#6b7280")
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true)
	styleLabel = lipgloss.NewStyle().Foreground(colorGray)
	styleAlert = lipgloss.NewStyle().Foreground(colorYellow)
	styleBadge = map[model.Severity]lipgloss.Style{
		model.SeverityNone:     lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
		model.SeverityModerate: lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		model.SeverityHigh:     lipgloss.NewStyle().Bold(true).Foreground(colorRed),
		model.SeverityUnknown:  lipgloss.NewStyle().Foreground(colorGray),
	}
)

// Sink renders session records as a human-readable report.
type Sink struct {
	w io.Writer
}

// New creates a report sink writing to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Write renders the record. The report always lists severity, alerts, and
// actions; measured environment readings are shown in metric order.
func (s *Sink) Write(_ context.Context, rec model.SessionRecord) error {
	var b strings.Builder

	b.WriteString(styleTitle.Render("=== KabuTech Result ==="))
	b.WriteByte('\n')

	writeField(&b, "Time", rec.Timestamp)
	writeField(&b, "Image", rec.Image)
	writeField(&b, "Class", fmt.Sprintf("%s (confidence %.4f)", rec.PredictedClass, rec.Confidence))
	writeField(&b, "Severity", severityBadge(rec.Severity))

	if len(rec.Environment) > 0 {
		b.WriteString(styleLabel.Render("Environment:"))
		b.WriteByte('\n')
		metrics := append(model.TrackedMetrics(), model.MetricSubstrateQuality)
		for _, m := range metrics {
			if v, ok := rec.Environment.Value(m); ok {
				fmt.Fprintf(&b, "  %s: %g%s\n", m, v, m.Unit())
			}
		}
	}

	if len(rec.Alerts) > 0 {
		b.WriteString(styleLabel.Render("Alerts:"))
		b.WriteByte('\n')
		for _, a := range rec.Alerts {
			b.WriteString("  ! " + styleAlert.Render(a))
			b.WriteByte('\n')
		}
	} else {
		writeField(&b, "Alerts", "none")
	}

	b.WriteString(styleLabel.Render("Actions:"))
	b.WriteByte('\n')
	for i, a := range rec.Actions {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, a)
	}

	if _, err := io.WriteString(s.w, b.String()); err != nil {
		return fmt.Errorf("report sink: %w", err)
	}
	return nil
}

// Close is a no-op; the sink does not own its writer.
func (s *Sink) Close() error {
	return nil
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(styleLabel.Render(label + ":"))
	b.WriteByte(' ')
	b.WriteString(value)
	b.WriteByte('\n')
}

func severityBadge(sev model.Severity) string {
	style, ok := styleBadge[sev]
	if !ok {
		style = styleBadge[model.SeverityUnknown]
	}
	return style.Render(strings.ToUpper(string(sev)))
}
