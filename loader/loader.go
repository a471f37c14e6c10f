// Package loader reads a world directory of location documents and compiles
// them into the engine's location definitions. Documents are YAML files or
// Lua chunks that return a table of the same shape. The Lua VM only runs at
// load time.
package loader

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathoo/roomscript/engine/state"
	"github.com/nathoo/roomscript/types"
)

// LoadError describes one problem with one location document.
type LoadError struct {
	File  string // file name within the world directory, empty for in-memory sources
	Path  string // node path inside the document, e.g. actions[0]["open door"]
	Line  int    // 1-based source line when known
	Msg   string
	Value string // offending raw value, if any
	Err   error  // underlying parse, yaml, or lua error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, ":%d", e.Line)
		}
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Msg)
	if e.Value != "" {
		fmt.Fprintf(&b, " (got %s)", e.Value)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadErrors collects every failure found while loading a world.
type LoadErrors struct {
	Dir    string
	Errors []*LoadError
}

func (e *LoadErrors) Error() string {
	lines := make([]string, len(e.Errors))
	for i, le := range e.Errors {
		lines[i] = le.Error()
	}
	return fmt.Sprintf("loading world %s failed with %d error(s):\n  %s",
		e.Dir, len(e.Errors), strings.Join(lines, "\n  "))
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (e *LoadErrors) Unwrap() []error {
	errs := make([]error, len(e.Errors))
	for i, le := range e.Errors {
		errs[i] = le
	}
	return errs
}

// Definition file extensions and the compiler for each.
var compilers = map[string]func([]byte, string) (types.Location, error){
	".yaml": LoadLocation,
	".yml":  LoadLocation,
	".lua":  LoadLuaLocation,
}

// Load reads every location document in dir and returns the world. Each
// file's base name, without extension, becomes the location's title. Any
// failure aborts the load; all failures are reported together.
func Load(dir string) (*state.World, error) {
	return LoadWithLogger(dir, slog.Default())
}

// LoadWithLogger is Load with an explicit logger for progress and warnings.
func LoadWithLogger(dir string, logger *slog.Logger) (*state.World, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading world directory %s: %w", dir, err)
	}

	// ReadDir returns entries sorted by name, so load order is stable.
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := compilers[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no location files (.yaml, .yml, .lua) found in %s", dir)
	}

	var (
		locations []types.Location
		failed    = &LoadErrors{Dir: dir}
		seen      = map[string]string{}
	)
	for _, name := range files {
		ext := filepath.Ext(name)
		title := strings.TrimSuffix(name, ext)

		if prev, dup := seen[title]; dup {
			failed.Errors = append(failed.Errors, &LoadError{
				File: name,
				Msg:  fmt.Sprintf("location %q is already defined by %s", title, prev),
			})
			continue
		}
		seen[title] = name

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			failed.Errors = append(failed.Errors, &LoadError{File: name, Msg: "unreadable", Err: err})
			continue
		}

		loc, err := compilers[strings.ToLower(ext)](data, title)
		if err != nil {
			failed.Errors = append(failed.Errors, inFile(err, name))
			continue
		}
		loc.Source = name
		locations = append(locations, loc)
		logger.Debug("loaded location", "file", name, "title", title, "actions", len(loc.Actions))
	}
	if len(failed.Errors) > 0 {
		return nil, failed
	}

	world := state.NewWorld(locations)
	for _, w := range Warnings(world) {
		logger.Warn(w.Msg, "file", w.File, "location", w.Location)
	}
	logger.Info("world loaded", "dir", dir, "locations", len(locations))
	return world, nil
}

// inFile attributes err to the named file.
func inFile(err error, name string) *LoadError {
	if le, ok := err.(*LoadError); ok {
		le.File = name
		return le
	}
	return &LoadError{File: name, Msg: "invalid document", Err: err}
}
