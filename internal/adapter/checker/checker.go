// Package checker holds the rules run over a parsed project.
package checker

import (
	"sort"

	"bslcheck/internal/domain"
)

// InDiff reports whether any line in [m.Start, m.End) was changed in the
// module at path. Unknown modules are never in the diff, and neither is an
// unclosed method, whose range is empty.
func InDiff(m *domain.Method, path string, changes domain.Changes) bool {
	lines, ok := changes.Lines(path)
	if !ok {
		return false
	}
	for l := m.Start; l < m.End; l++ {
		if lines.Has(l) {
			return true
		}
	}
	return false
}

type namedMethod struct {
	name   string
	method *domain.Method
}

// methodsInOrder lists a module's methods by position in the file.
func methodsInOrder(mod *domain.Module) []namedMethod {
	out := make([]namedMethod, 0, len(mod.Methods))
	for name, m := range mod.Methods {
		out = append(out, namedMethod{name: name, method: m})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].method.Start != out[j].method.Start {
			return out[i].method.Start < out[j].method.Start
		}
		return out[i].name < out[j].name
	})
	return out
}
