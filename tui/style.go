package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleDescription = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255"))

	styleTitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)

	styleMenuHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleActionNumber = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34")).
				Bold(true)

	styleActionTitle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindDescription lineKind = iota
	kindTitle
	kindMenuHeader
	kindAction
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "== ") && strings.HasSuffix(line, " =="):
		return kindTitle
	case line == "You can:", line == "There is nothing to do here.":
		return kindMenuHeader
	case isMenuLine(line):
		return kindAction
	case strings.HasPrefix(line, "You can't"),
		strings.HasPrefix(line, "Which do you mean"),
		strings.Contains(line, "is not available right now ("):
		return kindError
	default:
		return kindDescription
	}
}

// isMenuLine matches "  3) open the door".
func isMenuLine(line string) bool {
	rest, ok := strings.CutPrefix(line, "  ")
	if !ok {
		return false
	}
	num, _, ok := strings.Cut(rest, ") ")
	if !ok || num == "" {
		return false
	}
	for _, r := range num {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// styledAction renders a menu line with the number highlighted.
func styledAction(line string) string {
	num, title, ok := strings.Cut(line, ") ")
	if !ok {
		return styleActionTitle.Render(line)
	}
	return styleActionNumber.Render(num+")") + " " + styleActionTitle.Render(title)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
