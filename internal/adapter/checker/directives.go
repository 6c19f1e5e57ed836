package checker

import (
	"fmt"
	"iter"
	"regexp"

	"bslcheck/internal/domain"
)

// DefaultManagedForm matches the paths of managed form modules.
const DefaultManagedForm = `.*Форма.bsl$`

// Directives reports methods of managed form modules that have no
// &Directive annotation before them.
type Directives struct {
	managedForm *regexp.Regexp
}

func NewDirectives(managedForm string) (*Directives, error) {
	if managedForm == "" {
		managedForm = DefaultManagedForm
	}
	re, err := regexp.Compile(managedForm)
	if err != nil {
		return nil, fmt.Errorf("invalid managed form pattern %q: %w", managedForm, err)
	}
	return &Directives{managedForm: re}, nil
}

func (c *Directives) Name() string { return "directives" }

func (c *Directives) Check(p *domain.Project, changes domain.Changes) iter.Seq2[domain.Finding, error] {
	return func(yield func(domain.Finding, error) bool) {
		for _, mod := range p.Modules {
			if !c.managedForm.MatchString(mod.Path) {
				continue
			}
			for _, nm := range methodsInOrder(mod) {
				if nm.method.Directive != "" {
					continue
				}
				f := domain.Finding{
					Check:   c.Name(),
					Message: fmt.Sprintf("Нет директивы у функции %s в модуле %s", nm.name, mod.Path),
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
