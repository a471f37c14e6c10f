// Package cli provides the plain line-oriented session: it prints the
// current location and its action menu, reads the player's choice, and
// dispatches meta-commands.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/roomscript/engine"
	"github.com/nathoo/roomscript/engine/state"
	"github.com/nathoo/roomscript/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the session loop. It describes the starting location, then
// loops: prompt, input, dispatch, output. It returns when input ends or the
// player quits.
func (c *CLI) Run() {
	c.printLines(c.Engine.Describe())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			c.printLine("")
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return
			}
			continue
		}

		// "again" / "g" repeats the last choice.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printLines(result.Output)

		if c.Trace {
			c.printTrace(result)
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the session should end.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.ToLower(strings.Fields(input)[0])

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/look":
		c.printLines(c.Engine.Describe())

	case "/help":
		c.printLines(HelpLines())

	case "/state":
		for _, line := range StateLines(c.Engine) {
			c.printSystem(line)
		}

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

// HelpLines is the /help text, shared with the TUI.
func HelpLines() []string {
	return []string{
		"Choosing an action:",
		"  <number>       Pick an action from the menu",
		"  <title>        Type its title, or any unique part of it",
		"  again (g)      Repeat your last choice",
		"",
		"System:",
		"  /look          Describe the current location again",
		"  /state         Show location, turn, and properties",
		"  /trace         Toggle directive and event trace output",
		"  /help          Show this help",
		"  /quit          Exit",
	}
}

// StateLines describes the live game state for /state.
func StateLines(eng *engine.Engine) []string {
	s := eng.State
	lines := []string{
		fmt.Sprintf("Turn: %d", s.TurnCount),
		fmt.Sprintf("Location: %s", s.Location),
	}
	if trueProps := state.TrueProperties(s); len(trueProps) > 0 {
		names := make([]string, len(trueProps))
		for i, p := range trueProps {
			names[i] = string(p)
		}
		lines = append(lines, "True: "+strings.Join(names, ", "))
	} else {
		lines = append(lines, "True: (none)")
	}
	var falseProps []string
	for p, v := range s.Properties {
		if !v {
			falseProps = append(falseProps, string(p))
		}
	}
	if len(falseProps) > 0 {
		lines = append(lines, fmt.Sprintf("False (set): %d", len(falseProps)))
	}
	return lines
}

// TraceLines lists the directives and events behind a result.
func TraceLines(result types.Result) []string {
	var lines []string
	if len(result.Directives) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Directives: %d", len(result.Directives)))
		for _, d := range result.Directives {
			lines = append(lines, "[trace]   "+d.String())
		}
	}
	if len(result.Events) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			lines = append(lines, fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
	return lines
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range TraceLines(result) {
		c.printLine(line)
	}
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
