// Package report writes the findings log.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"bslcheck/internal/domain"
)

const (
	HeaderInDiff = "Проблемы в текущем коммите:"
	HeaderOther  = "Остальные проблемы:"
)

// Write prints the two report sections to w, findings in the given order.
func Write(w io.Writer, inDiff, other []domain.Finding) error {
	// Write errors stick to bw and come back from Flush.
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, HeaderInDiff)
	for _, f := range inDiff {
		fmt.Fprintln(bw, f.Message)
	}
	fmt.Fprintln(bw, HeaderOther)
	for _, f := range other {
		fmt.Fprintln(bw, f.Message)
	}

	return bw.Flush()
}

// WriteFile replaces the log at path, creating parent directories.
func WriteFile(path string, inDiff, other []domain.Finding) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer f.Close()

	if err := Write(f, inDiff, other); err != nil {
		return fmt.Errorf("failed to write log file: %w", err)
	}
	return f.Close()
}
