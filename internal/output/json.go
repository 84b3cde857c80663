package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/chrisdamba/foodash/internal/cloudwriter"
)

// JSONOutput appends one document per line to
// <base>/<folder>/<view>/<partition>/data.json. With a cloud writer each
// snapshot becomes its own object under <folder>/<view>/<partition>/.
type JSONOutput struct {
	basePath string
	folder   string

	mu    sync.Mutex
	files map[string]*os.File

	cloud  cloudwriter.CloudWriterFactory
	bucket string
}

func NewJSONOutput(basePath, folder string) *JSONOutput {
	return &JSONOutput{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONOutput) WithCloud(factory cloudwriter.CloudWriterFactory, bucket string) *JSONOutput {
	j.cloud = factory
	j.bucket = bucket
	return j
}

func (j *JSONOutput) WriteSnapshot(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", snap.ID, err)
	}
	partition := partitionPath(snap.GeneratedAt)

	if j.cloud != nil {
		key := objectPath(j.folder, snap.topic(), partition, snap.ID+".json")
		w, err := j.cloud.NewWriter(ctx, j.bucket, key)
		if err != nil {
			return fmt.Errorf("failed to create cloud writer: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			_ = w.Close()
			return err
		}
		return w.Close()
	}

	fullPath := filepath.Join(j.basePath, j.folder, snap.topic(), partition)
	j.mu.Lock()
	defer j.mu.Unlock()

	file, ok := j.files[fullPath]
	if !ok {
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return err
		}
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		j.files[fullPath] = file
	}

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write snapshot %s: %w", snap.ID, err)
	}
	return nil
}

func (j *JSONOutput) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	var firstErr error
	for key, file := range j.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(j.files, key)
	}
	return firstErr
}
