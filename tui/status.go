package tui

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathoo/roomscript/engine/state"
	"github.com/nathoo/roomscript/types"
)

// locationDisplayName derives a human-readable name from a location ID.
// "great_hall" -> "Great Hall", "castleGates" -> "Castle Gates".
func locationDisplayName(id types.LocationID) string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			cur[0] = unicode.ToUpper(cur[0])
			words = append(words, string(cur))
			cur = nil
		}
	}
	for _, r := range string(id) {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r) && len(cur) > 0 && !unicode.IsUpper(cur[len(cur)-1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing the
// current location, how many actions are on offer, the true properties,
// and the turn count.
func (m Model) renderStatusBar() string {
	s := m.engine.State

	left := fmt.Sprintf(" %s | Actions: %d", locationDisplayName(s.Location), len(m.engine.Available()))
	right := fmt.Sprintf("T:%d ", s.TurnCount)

	// Show true property names if they fit, otherwise just the count.
	if props := state.TrueProperties(s); len(props) > 0 {
		names := make([]string, len(props))
		for i, p := range props {
			names[i] = string(p)
		}
		candidate := fmt.Sprintf("%s | T:%d ", strings.Join(names, ", "), s.TurnCount)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("True: %d | T:%d ", len(props), s.TurnCount)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
