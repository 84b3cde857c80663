package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
)

type ConsoleOutput struct {
	w io.Writer
}

// NewConsoleOutput writes to w, or stdout when w is nil.
func NewConsoleOutput(w io.Writer) *ConsoleOutput {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleOutput{w: w}
}

func (c *ConsoleOutput) WriteSnapshot(_ context.Context, snap *Snapshot) error {
	msg, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.ID, err)
	}
	if _, err := fmt.Fprintf(c.w, "[%s] %s\n", snap.topic(), msg); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (c *ConsoleOutput) Close() error {
	if f, ok := c.w.(*os.File); ok {
		// stdout may not support sync
		_ = f.Sync()
	}
	return nil
}
