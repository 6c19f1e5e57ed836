package port

import (
	"iter"

	"bslcheck/internal/domain"
)

// Checker is one rule run over a parsed project. A checker that cannot run
// yields a single error and stops.
type Checker interface {
	Name() string
	Check(p *domain.Project, changes domain.Changes) iter.Seq2[domain.Finding, error]
}
