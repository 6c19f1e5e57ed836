package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bslcheck/internal/domain"
	"bslcheck/internal/port"
)

// Roles identifies the client and server object modules by path substring.
type Roles struct {
	ClientModule string
	ServerModule string
}

func (r Roles) IsClient(path string) bool {
	return r.ClientModule != "" && strings.Contains(path, r.ClientModule)
}

func (r Roles) IsServer(path string) bool {
	return r.ServerModule != "" && strings.Contains(path, r.ServerModule)
}

// ProgressFunc is called after each module is parsed.
type ProgressFunc func(processed, total int, currentFile string)

// AnalyzeUseCase runs the whole analysis of a source tree.
type AnalyzeUseCase struct {
	locator  port.ChangeLocator
	walker   port.FileWalker
	parser   port.ModuleParser
	checkers []port.Checker
	roles    Roles
	logger   *slog.Logger
}

// NewAnalyzeUseCase creates a new analyze use case. Checkers run in the
// order given.
func NewAnalyzeUseCase(
	locator port.ChangeLocator,
	walker port.FileWalker,
	parser port.ModuleParser,
	checkers []port.Checker,
	roles Roles,
	logger *slog.Logger,
) *AnalyzeUseCase {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AnalyzeUseCase{
		locator:  locator,
		walker:   walker,
		parser:   parser,
		checkers: checkers,
		roles:    roles,
		logger:   logger,
	}
}

// CheckerError records a checker that could not run.
type CheckerError struct {
	Checker string
	Err     error
}

func (e CheckerError) Error() string {
	return fmt.Sprintf("checker %s: %v", e.Checker, e.Err)
}

func (e CheckerError) Unwrap() error {
	return e.Err
}

// AnalyzeResult contains the partitioned findings of a run.
type AnalyzeResult struct {
	InDiff        []domain.Finding
	Other         []domain.Finding
	ModulesParsed int
	Errors        []CheckerError
}

// Analyze locates the head commit's changes, parses every module under root
// and runs the checkers. Failing to read the diff aborts before any module
// is parsed.
func (u *AnalyzeUseCase) Analyze(ctx context.Context, root string, progress ProgressFunc) (*AnalyzeResult, error) {
	changes, err := u.locator.Locate(ctx, root)
	if err != nil {
		return nil, err
	}
	u.logger.Debug("diff located", "root", changes.Root, "files", len(changes.Files))

	project, err := u.LoadProject(root, progress)
	if err != nil {
		return nil, err
	}

	result := u.Check(project, changes)
	result.ModulesParsed = len(project.Modules)
	return result, nil
}

// LoadProject parses every module under root and assigns the client and
// server roles. A later module matching a role replaces an earlier one.
func (u *AnalyzeUseCase) LoadProject(root string, progress ProgressFunc) (*domain.Project, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	project := &domain.Project{}
	for i, file := range files {
		module, err := u.parser.ParseModule(file.Path)
		if err != nil {
			return nil, err
		}
		project.Modules = append(project.Modules, module)

		if u.roles.IsClient(module.Path) {
			project.Client = module
		}
		if u.roles.IsServer(module.Path) {
			project.Server = module
		}

		u.logger.Debug("module parsed", "path", module.Path, "bytes", file.Size, "methods", len(module.Methods))
		if progress != nil {
			progress(i+1, len(files), file.Path)
		}
	}

	return project, nil
}

// Check runs every checker and splits the findings into those inside the
// diff and the rest, keeping checker order within each group. A checker that
// fails is recorded and the remaining checkers still run.
func (u *AnalyzeUseCase) Check(project *domain.Project, changes domain.Changes) *AnalyzeResult {
	result := &AnalyzeResult{}

	var all []domain.Finding
	for _, c := range u.checkers {
		findings, err := runChecker(c, project, changes)
		all = append(all, findings...)
		if err != nil {
			u.logger.Warn("checker failed", "checker", c.Name(), "error", err)
			result.Errors = append(result.Errors, CheckerError{Checker: c.Name(), Err: err})
			continue
		}
		u.logger.Debug("checker done", "checker", c.Name(), "findings", len(findings))
	}

	for _, f := range all {
		if f.InDiff {
			result.InDiff = append(result.InDiff, f)
		} else {
			result.Other = append(result.Other, f)
		}
	}

	return result
}

func runChecker(c port.Checker, project *domain.Project, changes domain.Changes) (findings []domain.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	for f, ferr := range c.Check(project, changes) {
		if ferr != nil {
			return findings, ferr
		}
		findings = append(findings, f)
	}
	return findings, nil
}
