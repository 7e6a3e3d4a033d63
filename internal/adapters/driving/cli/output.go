package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/custodia-labs/devmap/internal/core/domain"
)

// palette holds the styles used for human-readable results. The zero
// palette renders plain text.
type palette struct {
	title   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	label   lipgloss.Style
	muted   lipgloss.Style
}

// paletteFor returns a coloured palette when w is a terminal.
func paletteFor(w io.Writer) palette {
	if !isTerminal(w) {
		return palette{}
	}
	return palette{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A6E3A1")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8")),
		warning: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086")),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// renderResult writes a result the way an operator reads it: the matched
// row, or the reason and any capacity to create.
func renderResult(w io.Writer, p palette, r *domain.MatchResult, used domain.MappingSystem, trail bool) {
	field := func(name, format string, args ...any) {
		fmt.Fprintf(w, "  %s %s\n", p.label.Render(fmt.Sprintf("%-12s", name+":")), fmt.Sprintf(format, args...))
	}

	if r.Succeeded() {
		fmt.Fprintln(w, p.success.Render("MATCHED"))
		field("model", "%s (id %d)", r.ModelDescription, r.ModelID)
		field("capacity", "%s (id %d)", r.CapacitySize, r.CapacityID)
		field("confidence", "%.2f", r.Confidence)
		field("strategy", "%s", r.Strategy)
	} else {
		fmt.Fprintln(w, p.failure.Render(strings.ToUpper(r.ErrorCode.String())))
		field("reason", "%s", r.ErrorMessage)
	}
	field("engine", "%s (%s)", orDash(r.Engine), orDash(string(used)))

	if f := r.Features; f != nil && f.HasFamily() {
		field("features", "%s", f.Summary())
	}

	if sg := r.Suggestion; sg != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.warning.Render(fmt.Sprintf("Create capacity %s for model %q (id %d)",
			sg.CapacityLabel, sg.ModelDescription, sg.ModelID)))
		field("existing", "%s", joinOrDash(sg.ExistingCapacities))
		field("expected", "%s", joinOrDash(sg.ExpectedCapacities))
		field("missing", "%s", joinOrDash(sg.MissingCapacities))
	}

	if trail && r.Context != nil {
		fmt.Fprintln(w)
		fmt.Fprintln(w, p.title.Render(fmt.Sprintf("Decision trail %s (%s)", r.Context.ID, r.Context.Duration())))
		for _, e := range r.Context.Entries() {
			fmt.Fprintf(w, "  %s %s\n", p.muted.Render(fmt.Sprintf("%-5s", e.Level)), e.Message)
		}
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func joinOrDash(s []string) string {
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, ", ")
}
