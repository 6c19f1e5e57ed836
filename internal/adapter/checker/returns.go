package checker

import (
	"fmt"
	"iter"

	"bslcheck/internal/domain"
)

// Returns reports functions without a return statement. Procedures are
// never reported.
type Returns struct{}

func NewReturns() *Returns {
	return &Returns{}
}

func (c *Returns) Name() string { return "returns" }

func (c *Returns) Check(p *domain.Project, changes domain.Changes) iter.Seq2[domain.Finding, error] {
	return func(yield func(domain.Finding, error) bool) {
		for _, mod := range p.Modules {
			for _, nm := range methodsInOrder(mod) {
				if nm.method.Kind != domain.Function || nm.method.HasReturn {
					continue
				}
				f := domain.Finding{
					Check:   c.Name(),
					Message: fmt.Sprintf("Нет возврата у функции %s в модуле %s", nm.name, mod.Path),
					Module:  mod.Path,
					Method:  nm.name,
					InDiff:  InDiff(nm.method, mod.Path, changes),
				}
				if !yield(f, nil) {
					return
				}
			}
		}
	}
}
