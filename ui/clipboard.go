package ui

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrNoClipboard is returned when the platform has no clipboard utility.
var ErrNoClipboard = errors.New("clipboard unavailable")

// CopyReport places report on the system clipboard.
func CopyReport(report string) error {
	if clipboard.Unsupported {
		return ErrNoClipboard
	}
	if err := clipboard.WriteAll(report); err != nil {
		return fmt.Errorf("copying report: %w", err)
	}
	return nil
}
