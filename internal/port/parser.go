package port

import "bslcheck/internal/domain"

// ModuleParser turns one source file into a module.
type ModuleParser interface {
	ParseModule(path string) (*domain.Module, error)
}
