// Package bsl turns 1C:Enterprise module text into methods. Parsing is line
// based: each line is classified by regular expressions, there is no lexer.
package bsl

import (
	"fmt"
	"strings"

	"bslcheck/internal/adapter/fs"
	"bslcheck/internal/domain"
)

type Parser struct {
	classifier *Classifier
}

func NewParser(classifier *Classifier) *Parser {
	return &Parser{classifier: classifier}
}

// parseState is the parser's position within a module.
type parseState struct {
	inMethod  bool
	directive string
	current   *domain.Method
}

// Parse maps method names to methods. A later method with the same name
// replaces an earlier one.
//
// A method start seen inside a body starts a new method without closing the
// old one, and a method that is never closed keeps End == 0.
func (p *Parser) Parse(lines []string) map[string]*domain.Method {
	methods := make(map[string]*domain.Method)
	var st parseState

	for i, line := range lines {
		if kind, name, ok := p.classifier.MethodStart(line); ok {
			st.current = &domain.Method{
				Kind:      kind,
				Start:     i,
				Directive: st.directive,
			}
			methods[name] = st.current
			st.directive = ""
			st.inMethod = true
			continue
		}

		if p.classifier.MethodEnd(line) {
			// The last method seen keeps absorbing terminators, even stray ones.
			if st.current != nil {
				st.current.End = i
			}
			st.inMethod = false
			st.directive = ""
			continue
		}

		if st.inMethod {
			st.current.Lines = append(st.current.Lines, line)
			if p.classifier.Return(line) {
				st.current.HasReturn = true
			}
			if p.classifier.Tag(line) {
				st.current.Tagged = true
			}
			continue
		}

		if d, ok := p.classifier.Directive(line); ok {
			st.directive = d
		}
	}

	return methods
}

// ParseModule reads the file at path and parses it into a module.
func (p *Parser) ParseModule(path string) (*domain.Module, error) {
	content, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module %s: %w", path, err)
	}

	module := domain.NewModule(path)
	module.Methods = p.Parse(SplitLines(content))
	return module, nil
}

// SplitLines splits module text on line breaks, dropping the trailing \r of
// CRLF files. A final newline does not produce an extra empty line.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
