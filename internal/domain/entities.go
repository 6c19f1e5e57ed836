package domain

import (
	"path/filepath"
	"strings"
)

// MethodKind distinguishes functions, which must return a value, from
// procedures, which must not.
type MethodKind string

const (
	Function  MethodKind = "Функция"
	Procedure MethodKind = "Процедура"
)

// Method is one parsed function or procedure. Start and End are 0-based line
// numbers; End stays 0 until the terminator line is seen.
type Method struct {
	Kind      MethodKind `json:"kind"`
	Start     int        `json:"start"`
	End       int        `json:"end"`
	Lines     []string   `json:"lines"`
	HasReturn bool       `json:"has_return"`
	Tagged    bool       `json:"tagged"`
	Directive string     `json:"directive,omitempty"`
}

// Module is one source file, keyed by its full path.
type Module struct {
	Path    string             `json:"path"`
	Methods map[string]*Method `json:"methods"`
}

func NewModule(path string) *Module {
	return &Module{
		Path:    filepath.Clean(path),
		Methods: make(map[string]*Method),
	}
}

// Project holds every discovered module. Client and Server point into
// Modules and are nil when no module matched their pattern.
type Project struct {
	Modules []*Module
	Client  *Module
	Server  *Module
}

// Finding is a single rule violation.
type Finding struct {
	Check   string
	Message string
	Module  string
	Method  string
	InDiff  bool
}

// LineSet is a set of 0-based line numbers.
type LineSet map[int]struct{}

func (s LineSet) Add(from, to int) {
	for l := from; l <= to; l++ {
		s[l] = struct{}{}
	}
}

func (s LineSet) Has(line int) bool {
	_, ok := s[line]
	return ok
}

// Changes maps repository-relative file paths to the lines touched by the
// head commit.
type Changes struct {
	Root  string
	Files map[string]LineSet
}

// Lines returns the changed lines of the file at path. Absolute paths are
// made relative to Root first. It reports false for files outside the
// repository and files the commit did not touch.
func (c Changes) Lines(path string) (LineSet, bool) {
	if c.Files == nil {
		return nil, false
	}
	key := filepath.Clean(path)
	if filepath.IsAbs(key) {
		if c.Root == "" {
			return nil, false
		}
		rel, err := filepath.Rel(c.Root, key)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return nil, false
		}
		key = rel
	}
	lines, ok := c.Files[key]
	return lines, ok
}
