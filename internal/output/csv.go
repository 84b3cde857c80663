package output

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

type csvFile struct {
	file   *os.File
	writer *csv.Writer
}

// CSVOutput keeps one data.csv per table and partition, writing the header
// when the file is first created.
type CSVOutput struct {
	basePath string
	folder   string

	mu    sync.Mutex
	files map[string]*csvFile
}

func NewCSVOutput(basePath, folder string) *CSVOutput {
	return &CSVOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*csvFile),
	}
}

func (c *CSVOutput) WriteSnapshot(_ context.Context, snap *Snapshot) error {
	partition := partitionPath(snap.GeneratedAt)

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range snap.tables() {
		fullPath := filepath.Join(c.basePath, c.folder, snap.topic(), t.name, partition)
		f, err := c.open(fullPath, t.rows[0].header())
		if err != nil {
			return fmt.Errorf("open %s table: %w", t.name, err)
		}
		for _, r := range t.rows {
			if err := f.writer.Write(r.record()); err != nil {
				return err
			}
		}
		f.writer.Flush()
		if err := f.writer.Error(); err != nil {
			return fmt.Errorf("write %s table: %w", t.name, err)
		}
	}
	return nil
}

func (c *CSVOutput) open(dir string, header []string) (*csvFile, error) {
	if f, ok := c.files[dir]; ok {
		return f, nil
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	name := filepath.Join(dir, "data.csv")
	_, statErr := os.Stat(name)
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	f := &csvFile{file: file, writer: csv.NewWriter(file)}
	if os.IsNotExist(statErr) {
		if err := f.writer.Write(header); err != nil {
			file.Close()
			return nil, err
		}
	}
	c.files[dir] = f
	return f, nil
}

func (c *CSVOutput) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for key, f := range c.files {
		f.writer.Flush()
		if err := f.writer.Error(); err != nil && firstErr == nil {
			firstErr = err
		}
		if err := f.file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(c.files, key)
	}
	return firstErr
}
