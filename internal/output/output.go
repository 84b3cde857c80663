// Package output publishes computed dashboards. Every computation becomes a
// Snapshot with its own id; sinks write it to the console, partitioned
// JSON/CSV/Parquet files (locally or on S3) or a Kafka topic.
package output

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/lucsky/cuid"

	"github.com/chrisdamba/foodash/internal/cloudwriter"
	"github.com/chrisdamba/foodash/internal/dashboard"
	"github.com/chrisdamba/foodash/internal/models"
)

type OutputDestination interface {
	WriteSnapshot(ctx context.Context, snap *Snapshot) error
	Close() error
}

// Snapshot is one published dashboard result.
type Snapshot struct {
	ID string `json:"snapshotId"`
	*dashboard.Result
}

func NewSnapshot(res *dashboard.Result) *Snapshot {
	return &Snapshot{ID: cuid.New(), Result: res}
}

// topic is the view name, used as Kafka topic suffix, console prefix and
// top-level folder.
func (s *Snapshot) topic() string {
	return string(s.View)
}

// partitionPath lays files out by generation hour the way Hive-style
// readers expect.
func partitionPath(t time.Time) string {
	t = t.UTC()
	year, month, day := t.Date()
	return fmt.Sprintf("year=%d/month=%02d/day=%02d/hour=%02d", year, month, day, t.Hour())
}

func objectPath(parts ...string) string {
	return strings.TrimPrefix(path.Join(parts...), "/")
}

// New builds the destination selected by cfg.OutputFormat.
func New(ctx context.Context, cfg *models.Config) (OutputDestination, error) {
	var cloud cloudwriter.CloudWriterFactory
	if cfg.OutputDestination == models.OutputDestinationS3 {
		factory, err := cloudwriter.NewS3WriterFactory(ctx, cfg.CloudStorage.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		cloud = factory
	}

	switch cfg.OutputFormat {
	case models.OutputFormatConsole, "":
		return NewConsoleOutput(nil), nil
	case models.OutputFormatJSON:
		out := NewJSONOutput(cfg.OutputPath, cfg.OutputFolder)
		if cloud != nil {
			out.WithCloud(cloud, cfg.CloudStorage.BucketName)
		}
		return out, nil
	case models.OutputFormatCSV:
		if cloud != nil {
			return nil, fmt.Errorf("csv output only supports the local destination")
		}
		return NewCSVOutput(cfg.OutputPath, cfg.OutputFolder), nil
	case models.OutputFormatParquet:
		out := NewParquetOutput(cfg.OutputPath, cfg.OutputFolder)
		if cloud != nil {
			out.WithCloud(cloud, cfg.CloudStorage.BucketName)
		}
		return out, nil
	case models.OutputFormatKafka:
		return NewKafkaOutput(cfg)
	default:
		return nil, fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
}
