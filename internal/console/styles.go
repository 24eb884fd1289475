package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("#20B9B4")
	colorSuccess = lipgloss.Color("#2CD7C7")
	colorWarning = lipgloss.Color("#F4D03F")
	colorError   = lipgloss.Color("#E74C3C")
	colorMuted   = lipgloss.Color("#5C7A84")
)

// styles are bound to the output renderer so colour is dropped when the
// console is not attached to a terminal.
type styles struct {
	title   lipgloss.Style
	option  lipgloss.Style
	prompt  lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	error   lipgloss.Style
	muted   lipgloss.Style
	value   lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorAccent),
		option:  r.NewStyle().Foreground(colorAccent),
		prompt:  r.NewStyle().Bold(true),
		success: r.NewStyle().Foreground(colorSuccess),
		warning: r.NewStyle().Foreground(colorWarning),
		error:   r.NewStyle().Foreground(colorError),
		muted:   r.NewStyle().Foreground(colorMuted),
		value:   r.NewStyle().Bold(true).Foreground(colorSuccess),
	}
}
