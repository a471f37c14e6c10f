package loader

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/nathoo/roomscript/engine/parser"
	"github.com/nathoo/roomscript/types"
	"gopkg.in/yaml.v3"
)

// Document keys.
const (
	keyDescription = "description"
	keyActions     = "actions"
)

// maxValueLen bounds how much of an offending value is quoted in errors.
const maxValueLen = 60

// LoadLocation compiles one YAML location document. The document is a
// mapping with a required string "description" and an optional "actions"
// sequence. Each action is a single-key mapping from its title to a
// single-key mapping from its condition to a sequence of directive lines.
// Anchors and aliases are followed. Surrounding whitespace is trimmed from
// the description, so a block scalar loses its final newline.
//
//	description: A grand hall.
//	actions:
//	  - unlock door:
//	      hasKey:
//	        - set isDoorOpen true
//	        - goto garden
func LoadLocation(source []byte, title string) (types.Location, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(source, &doc); err != nil {
		return types.Location{}, &LoadError{Msg: "document is not valid YAML", Err: err}
	}
	return compileDocument(&doc, title)
}

// compileDocument turns a document tree into a Location. YAML and Lua
// sources both arrive here.
func compileDocument(doc *yaml.Node, title string) (types.Location, error) {
	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return types.Location{}, &LoadError{Msg: "document is empty"}
		}
		root = root.Content[0]
	}
	root = deref(root)
	if root.Kind == 0 {
		return types.Location{}, &LoadError{Msg: "document is empty"}
	}
	if root.Kind != yaml.MappingNode {
		return types.Location{}, nodeError(root, "", "document must be a mapping", nil)
	}

	loc := types.Location{Title: title}
	var description, actions *yaml.Node
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := deref(root.Content[i]), deref(root.Content[i+1])
		switch key.Value {
		case keyDescription:
			if description != nil {
				return types.Location{}, nodeError(key, key.Value, "duplicate key", nil)
			}
			description = value
		case keyActions:
			if actions != nil {
				return types.Location{}, nodeError(key, key.Value, "duplicate key", nil)
			}
			actions = value
		default:
			return types.Location{}, nodeError(key, key.Value,
				fmt.Sprintf("unknown key (want %q or %q)", keyDescription, keyActions), nil)
		}
	}

	if description == nil {
		return types.Location{}, &LoadError{Line: root.Line, Msg: "missing required key \"description\""}
	}
	if description.Kind != yaml.ScalarNode || description.ShortTag() != "!!str" {
		return types.Location{}, nodeError(description, keyDescription, "description must be a string", nil)
	}
	loc.Description = strings.TrimSpace(description.Value)

	if actions == nil || isNull(actions) {
		return loc, nil
	}
	if actions.Kind != yaml.SequenceNode {
		return types.Location{}, nodeError(actions, keyActions, "actions must be a sequence", nil)
	}
	for i, entry := range actions.Content {
		action, err := compileAction(deref(entry), fmt.Sprintf("%s[%d]", keyActions, i))
		if err != nil {
			return types.Location{}, err
		}
		loc.Actions = append(loc.Actions, action)
	}
	return loc, nil
}

// compileAction reads {title: {condition: [directive, ...]}}.
func compileAction(entry *yaml.Node, path string) (types.Action, error) {
	titleNode, details, err := singlePair(entry, path, "action must map exactly one title to its details")
	if err != nil {
		return types.Action{}, err
	}
	if titleNode.Kind != yaml.ScalarNode || strings.TrimSpace(titleNode.Value) == "" {
		return types.Action{}, nodeError(titleNode, path, "action title must be a non-empty string", nil)
	}
	action := types.Action{Title: strings.TrimSpace(titleNode.Value)}
	path = fmt.Sprintf("%s[%q]", path, action.Title)

	condNode, dirNode, err := singlePair(details, path, "action details must map exactly one condition to its directives")
	if err != nil {
		return types.Action{}, err
	}
	if condNode.Kind != yaml.ScalarNode {
		return types.Action{}, nodeError(condNode, path, "condition must be a string", nil)
	}
	cond, err := parser.ParseCondition(condNode.Value)
	if err != nil {
		return types.Action{}, nodeError(condNode, path, "invalid condition", err)
	}
	action.Condition = cond
	path = fmt.Sprintf("%s[%q]", path, condNode.Value)

	if isNull(dirNode) {
		return action, nil
	}
	if dirNode.Kind != yaml.SequenceNode {
		return types.Action{}, nodeError(dirNode, path, "directives must be a sequence of strings", nil)
	}
	for j, line := range dirNode.Content {
		linePath := fmt.Sprintf("%s[%d]", path, j)
		line = deref(line)
		if line.Kind != yaml.ScalarNode {
			return types.Action{}, nodeError(line, linePath, "directive must be a string", nil)
		}
		d, err := parser.ParseDirective(line.Value)
		if err != nil {
			return types.Action{}, nodeError(line, linePath, "invalid directive", err)
		}
		action.Directives = append(action.Directives, d)
	}
	return action, nil
}

// singlePair returns the key and value of a mapping with exactly one entry.
func singlePair(n *yaml.Node, path, msg string) (key, value *yaml.Node, err error) {
	n = deref(n)
	if n.Kind != yaml.MappingNode {
		return nil, nil, nodeError(n, path, msg, nil)
	}
	if len(n.Content) != 2 {
		return nil, nil, nodeError(n, path,
			fmt.Sprintf("%s, found %d keys", msg, len(n.Content)/2), nil)
	}
	return deref(n.Content[0]), deref(n.Content[1]), nil
}

// deref follows alias nodes to the anchored node they name.
func deref(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// nodeError builds a LoadError pointing at n.
func nodeError(n *yaml.Node, path, msg string, err error) *LoadError {
	return &LoadError{
		Path:  path,
		Line:  n.Line,
		Msg:   msg,
		Value: rawValue(n),
		Err:   err,
	}
}

// rawValue renders a node back to compact source text for error messages.
func rawValue(n *yaml.Node) string {
	var s string
	switch n.Kind {
	case yaml.ScalarNode:
		s = strconv.Quote(n.Value)
	case 0:
		return ""
	default:
		out, err := yaml.Marshal(n)
		if err != nil {
			return ""
		}
		s = strings.Join(strings.Fields(string(out)), " ")
	}
	if len(s) > maxValueLen {
		cut := maxValueLen - 3
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut] + "..."
	}
	return s
}
