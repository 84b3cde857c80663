package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/chrisdamba/foodash/internal/cloudwriter"
)

// ParquetOutput writes every table of a snapshot to its own file,
// <folder>/<view>/<table>/<partition>/<snapshot id>.parquet, under basePath
// or in the configured bucket.
type ParquetOutput struct {
	basePath string
	folder   string

	cloud  cloudwriter.CloudWriterFactory
	bucket string
}

func NewParquetOutput(basePath, folder string) *ParquetOutput {
	return &ParquetOutput{basePath: basePath, folder: folder}
}

func (p *ParquetOutput) WithCloud(factory cloudwriter.CloudWriterFactory, bucket string) *ParquetOutput {
	p.cloud = factory
	p.bucket = bucket
	return p
}

func (p *ParquetOutput) WriteSnapshot(ctx context.Context, snap *Snapshot) error {
	for _, t := range snap.tables() {
		if err := p.writeTable(ctx, snap, t); err != nil {
			return fmt.Errorf("write %s table of %s: %w", t.name, snap.ID, err)
		}
	}
	return nil
}

func (p *ParquetOutput) writeTable(ctx context.Context, snap *Snapshot, t table) error {
	fw, err := p.createFile(ctx, snap, t.name)
	if err != nil {
		return err
	}

	pw, err := writer.NewParquetWriter(fw, t.schema, 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, r := range t.rows {
		if err := pw.Write(r); err != nil {
			fw.Close()
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return err
	}
	return fw.Close()
}

func (p *ParquetOutput) createFile(ctx context.Context, snap *Snapshot, tableName string) (source.ParquetFile, error) {
	partition := partitionPath(snap.GeneratedAt)
	name := snap.ID + ".parquet"

	if p.cloud != nil {
		key := objectPath(p.folder, snap.topic(), tableName, partition, name)
		cw, err := p.cloud.NewWriter(ctx, p.bucket, key)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		return NewCloudParquetFile(cw), nil
	}

	dir := filepath.Join(p.basePath, p.folder, snap.topic(), tableName, partition)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	fw, err := local.NewLocalFileWriter(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	return fw, nil
}

func (p *ParquetOutput) Close() error {
	return nil
}

// CloudParquetFile adapts a write-only cloud object to source.ParquetFile.
type CloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func NewCloudParquetFile(cw cloudwriter.CloudWriter) *CloudParquetFile {
	return &CloudParquetFile{cloudWriter: cw}
}

// Open and Create return the receiver: the object is created by writing to it.
func (c *CloudParquetFile) Open(string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Create(string) (source.ParquetFile, error) {
	return c, nil
}

func (c *CloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	default:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *CloudParquetFile) Read([]byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *CloudParquetFile) Write(b []byte) (int, error) {
	n, err := c.cloudWriter.Write(b)
	c.offset += int64(n)
	return n, err
}

func (c *CloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
