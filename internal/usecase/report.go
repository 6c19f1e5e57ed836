package usecase

import (
	"bslcheck/internal/adapter/report"
	"bslcheck/internal/port"
)

const notifyTitle = "Обнаружены проблемы в коммите"

// ReportUseCase writes the findings log and alerts the operator when the
// current commit introduced problems.
type ReportUseCase struct {
	logFile  string
	notifier port.Notifier
}

func NewReportUseCase(logFile string, notifier port.Notifier) *ReportUseCase {
	return &ReportUseCase{
		logFile:  logFile,
		notifier: notifier,
	}
}

// Report writes the log and reports whether the operator was alerted.
func (u *ReportUseCase) Report(result *AnalyzeResult) (bool, error) {
	if err := report.WriteFile(u.logFile, result.InDiff, result.Other); err != nil {
		return false, err
	}

	if len(result.InDiff) == 0 {
		return false, nil
	}

	if err := u.notifier.Notify(notifyTitle, "Подробности в "+u.logFile); err != nil {
		return false, err
	}
	return true, nil
}
