package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format string
	styles styles
}

type styles struct {
	heading lipgloss.Style
	muted   lipgloss.Style
	ok      lipgloss.Style
	missing lipgloss.Style
}

// NewFormatter creates a JSON formatter
func NewFormatter(writer io.Writer) *Formatter {
	return NewFormatterFor(writer, FormatJSON)
}

// NewFormatterFor creates a formatter for format ("json" or "text").
// Text colors adapt to whether writer is a terminal.
func NewFormatterFor(writer io.Writer, format string) *Formatter {
	r := lipgloss.NewRenderer(writer)
	return &Formatter{
		writer: writer,
		format: format,
		styles: styles{
			heading: r.NewStyle().Bold(true),
			muted:   r.NewStyle().Faint(true),
			ok:      r.NewStyle().Foreground(lipgloss.Color("#73F59F")),
			missing: r.NewStyle().Foreground(lipgloss.Color("#FF8787")),
		},
	}
}

// ValidateFormat reports whether format is supported.
func ValidateFormat(format string) error {
	switch format {
	case FormatJSON, FormatText:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want %q or %q)", format, FormatJSON, FormatText)
	}
}

func (f *Formatter) json(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatPrograms writes the program list.
func (f *Formatter) FormatPrograms(programs []ProgramDTO) error {
	if f.format != FormatText {
		return f.json(programs)
	}

	width := 0
	for _, p := range programs {
		width = max(width, len(p.ID))
	}

	var b strings.Builder
	for _, p := range programs {
		status := f.styles.ok.Render("available")
		if !p.Available {
			status = f.styles.missing.Render("unavailable")
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", f.styles.heading.Render(p.ID)+strings.Repeat(" ", width-len(p.ID)), p.Title, status)
		if p.Description != "" {
			fmt.Fprintf(&b, "%*s  %s\n", width, "", f.styles.muted.Render(p.Description))
		}
		if len(p.Labels) > 0 {
			fmt.Fprintf(&b, "%*s  %s\n", width, "", f.styles.muted.Render("labels: "+strings.Join(p.Labels, ", ")))
		}
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatEnrollment writes a completed enrollment.
func (f *Formatter) FormatEnrollment(e EnrollmentDTO) error {
	if f.format != FormatText {
		return f.json(e)
	}
	_, err := fmt.Fprintf(f.writer, "%s %s enrolled in %s %s\n",
		f.styles.ok.Render("✓"), e.User, f.styles.heading.Render(e.Program), f.styles.muted.Render("("+e.ID+")"))
	return err
}

// FormatRequests writes tracked requests.
func (f *Formatter) FormatRequests(reqs []RequestDTO) error {
	if f.format != FormatText {
		return f.json(reqs)
	}
	if len(reqs) == 0 {
		_, err := fmt.Fprintln(f.writer, f.styles.muted.Render("no requests"))
		return err
	}

	var b strings.Builder
	for _, r := range reqs {
		fmt.Fprintf(&b, "%s  %-10s %-16s %s\n",
			f.styles.muted.Render(r.CreatedAt.Format(time.DateTime)), r.Program, r.User, r.Title)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}
