// Package snapshot writes a session's task sequence as JSON.
// It is an export only; nothing reads it back.
package snapshot

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/idilsaglam/tasks/internal/model"
)

// Write encodes tasks as indented JSON followed by a newline.
func Write(w io.Writer, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
