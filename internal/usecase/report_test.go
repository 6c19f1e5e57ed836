package usecase

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bslcheck/internal/domain"
)

type recordingNotifier struct {
	title, message string
	calls          int
	err            error
}

func (n *recordingNotifier) Notify(title, message string) error {
	n.calls++
	n.title, n.message = title, message
	return n.err
}

func TestReportWithDiffFindingsNotifies(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "Build", "code-analysis.log")
	notifier := &recordingNotifier{}

	result := &AnalyzeResult{
		InDiff: []domain.Finding{{Message: "Не найден серверный метод: Общая", InDiff: true}},
		Other:  []domain.Finding{{Message: "Нет директивы у функции А в модуле Форма.bsl"}},
	}

	notified, err := NewReportUseCase(logFile, notifier).Report(result)
	require.NoError(t, err)
	assert.True(t, notified)
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "Обнаружены проблемы в коммите", notifier.title)
	assert.Equal(t, "Подробности в "+logFile, notifier.message)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, "Проблемы в текущем коммите:\n"+
		"Не найден серверный метод: Общая\n"+
		"Остальные проблемы:\n"+
		"Нет директивы у функции А в модуле Форма.bsl\n", string(data))
}

func TestReportWithoutDiffFindingsIsSilent(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "code-analysis.log")
	notifier := &recordingNotifier{}

	notified, err := NewReportUseCase(logFile, notifier).Report(&AnalyzeResult{
		Other: []domain.Finding{{Message: "x"}},
	})
	require.NoError(t, err)
	assert.False(t, notified)
	assert.Equal(t, 0, notifier.calls)
	assert.FileExists(t, logFile)
}

func TestReportNotifierFailure(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "code-analysis.log")
	notifier := &recordingNotifier{err: errors.New("no display")}

	notified, err := NewReportUseCase(logFile, notifier).Report(&AnalyzeResult{
		InDiff: []domain.Finding{{Message: "x", InDiff: true}},
	})
	assert.Error(t, err)
	assert.False(t, notified)
	assert.FileExists(t, logFile)
}
