package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"bslcheck/internal/adapter/bsl"
	"bslcheck/internal/adapter/checker"
	"bslcheck/internal/adapter/fs"
	"bslcheck/internal/adapter/git"
	"bslcheck/internal/adapter/notify"
	"bslcheck/internal/port"
	"bslcheck/internal/usecase"
)

var (
	checkSrcRoot  string
	checkLogFile  string
	checkNotify   string
	checkRepoDir  string
	checkProgress bool
)

var checkCmd = &cobra.Command{
	Use:   "check [src-root]",
	Short: "Check the modules of a source tree",
	Long: `Parse every .bsl module under src-root and run the return, directive and
client/server parity checks. Findings in lines changed by HEAD are listed
first in the log; if there are any, the operator is alerted.

Examples:
  bslcheck check src/MyProcessor
  bslcheck check --src-root src/MyProcessor --notify console`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkSrcRoot, "src-root", "s", "", "module source directory")
	checkCmd.Flags().StringVar(&checkLogFile, "log", "", "findings log file (default from config)")
	checkCmd.Flags().StringVar(&checkNotify, "notify", "", "alert mode: dialog, console, none (default from config)")
	checkCmd.Flags().StringVar(&checkRepoDir, "repo", "", "git repository (default is the one containing src-root)")
	checkCmd.Flags().BoolVar(&checkProgress, "progress", false, "show a progress bar while parsing")
}

func runCheck(cmd *cobra.Command, args []string) error {
	src := checkSrcRoot
	if len(args) > 0 {
		src = args[0]
	}
	root, err := resolveSrcRoot(src)
	if err != nil {
		return err
	}

	cfg, logger, err := loadConfig(root)
	if err != nil {
		return err
	}
	if checkLogFile != "" {
		cfg.Report.LogFile = checkLogFile
	}
	if checkNotify != "" {
		cfg.Report.Notify = checkNotify
	}
	if checkRepoDir != "" {
		cfg.Git.RepoDir = checkRepoDir
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	classifier, err := bsl.NewClassifier(cfg.Rules.Tag)
	if err != nil {
		return err
	}
	directives, err := checker.NewDirectives(cfg.Rules.ManagedForm)
	if err != nil {
		return err
	}
	notifier, err := notify.New(cfg.Report.Notify, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	analyzeUC := usecase.NewAnalyzeUseCase(
		git.NewLocator(cfg.Git.RepoDir, cfg.Git.Pathspec, cfg.Git.Timeout),
		fs.NewWalker(cfg.Source.Includes, cfg.Source.Excludes, cfg.Source.RespectGitignore),
		bsl.NewParser(classifier),
		[]port.Checker{checker.NewReturns(), directives, checker.NewParity()},
		usecase.Roles{ClientModule: cfg.Rules.ClientModule, ServerModule: cfg.Rules.ServerModule},
		logger,
	)

	var progress usecase.ProgressFunc
	if checkProgress {
		progress = newProgress(cmd)
	}

	logger.Info("checking modules", "src_root", root)
	result, err := analyzeUC.Analyze(context.Background(), root, progress)
	if err != nil {
		return err
	}

	reportUC := usecase.NewReportUseCase(cfg.Report.LogFile, notifier)
	notified, err := reportUC.Report(result)
	if err != nil {
		// The log is written before the alert, so a failed alert is not fatal.
		if _, statErr := os.Stat(cfg.Report.LogFile); statErr == nil {
			logger.Warn("failed to notify", "error", err)
		} else {
			return err
		}
	}

	logger.Info("check complete",
		"modules", result.ModulesParsed,
		"in_commit", len(result.InDiff),
		"other", len(result.Other),
		"checker_errors", len(result.Errors),
		"notified", notified,
		"log", cfg.Report.LogFile,
	)
	return nil
}

// resolveSrcRoot makes src absolute with symlinks resolved, so module paths
// line up with the repository root reported by git.
func resolveSrcRoot(src string) (string, error) {
	if src == "" {
		return "", fmt.Errorf("source directory not specified")
	}
	path, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("source directory not found: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", path)
	}

	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path, nil
}

func newProgress(cmd *cobra.Command) usecase.ProgressFunc {
	var bar *progressbar.ProgressBar
	out := cmd.ErrOrStderr()

	return func(processed, total int, currentFile string) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(out),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]Parsing[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(out)
				}),
			)
		}
		bar.Describe(fmt.Sprintf("[cyan]Parsing[reset] %s", filepath.Base(currentFile)))
		_ = bar.Set(processed)
	}
}
