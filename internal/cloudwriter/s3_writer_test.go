package cloudwriter

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type fakePutter struct {
	bucket, key string
	body        []byte
	calls       int
	err         error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.calls++
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Writer_UploadsOnClose(t *testing.T) {
	putter := &fakePutter{}
	w, err := NewS3WriterFactoryWithClient(putter).NewWriter(context.Background(), "dashboards", "growth/a.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("hello ")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("world")); err != nil {
		t.Fatal(err)
	}
	if putter.calls != 0 {
		t.Fatal("uploaded before close")
	}

	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if putter.calls != 1 {
		t.Errorf("PutObject called %d times, want 1", putter.calls)
	}
	if putter.bucket != "dashboards" || putter.key != "growth/a.json" || string(putter.body) != "hello world" {
		t.Errorf("unexpected upload %s/%s: %q", putter.bucket, putter.key, putter.body)
	}
	if _, err := w.Write([]byte("late")); err == nil {
		t.Error("expected error writing after close")
	}
}

func TestS3Writer_UploadError(t *testing.T) {
	boom := errors.New("access denied")
	w, _ := NewS3WriterFactoryWithClient(&fakePutter{err: boom}).NewWriter(context.Background(), "b", "k")
	if err := w.Close(); !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped access denied", err)
	}
}

func TestS3WriterFactory_RequiresBucket(t *testing.T) {
	if _, err := NewS3WriterFactoryWithClient(&fakePutter{}).NewWriter(context.Background(), "", "k"); err == nil {
		t.Error("expected error for empty bucket")
	}
}
