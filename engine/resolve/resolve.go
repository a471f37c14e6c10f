// Package resolve maps a player's typed choice to one of the actions on offer.
package resolve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nathoo/roomscript/types"
)

// AmbiguityError indicates multiple actions matched the input.
type AmbiguityError struct {
	Input      string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which do you mean by %q? (%s)", e.Input, names)
}

// NotFoundError indicates no offered action matched the input.
type NotFoundError struct {
	Input string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("you can't %q here", e.Input)
}

// Resolve picks the action the input refers to. Accepted forms, in order:
// the 1-based menu number, the exact title (case-insensitive), a prefix of
// exactly one title, or a word appearing in exactly one title.
func Resolve(input string, offered []types.Action) (types.Action, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Action{}, &NotFoundError{Input: input}
	}

	// 1. Menu number.
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(offered) {
			return offered[n-1], nil
		}
		return types.Action{}, &NotFoundError{Input: input}
	}

	lower := normalize(input)

	// 2. Exact title.
	for _, a := range offered {
		if normalize(a.Title) == lower {
			return a, nil
		}
	}

	// 3. Title prefix.
	if a, ok, err := unique(input, offered, func(title string) bool {
		return strings.HasPrefix(title, lower)
	}); ok || err != nil {
		return a, err
	}

	// 4. Any whole word of the title.
	if a, ok, err := unique(input, offered, func(title string) bool {
		for _, w := range strings.Fields(title) {
			if w == lower {
				return true
			}
		}
		return false
	}); ok || err != nil {
		return a, err
	}

	return types.Action{}, &NotFoundError{Input: input}
}

// unique returns the single action whose normalized title satisfies match.
// ok is false when nothing matched.
func unique(input string, offered []types.Action, match func(string) bool) (types.Action, bool, error) {
	var matches []types.Action
	for _, a := range offered {
		if match(normalize(a.Title)) {
			matches = append(matches, a)
		}
	}
	switch len(matches) {
	case 0:
		return types.Action{}, false, nil
	case 1:
		return matches[0], true, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Title
		}
		return types.Action{}, false, &AmbiguityError{Input: input, Candidates: names}
	}
}

// normalize lowercases and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
