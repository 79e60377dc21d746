package snapshots

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type fakeObjects struct {
	objects map[string][]byte
	types   map[string]string
	headErr error
}

func newFakeObjects() *fakeObjects {
	return &fakeObjects{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = b
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b))}, nil
}

func (f *fakeObjects) HeadBucket(_ context.Context, _ *s3.HeadBucketInput, _ ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func TestStore_PutGet(t *testing.T) {
	fake := newFakeObjects()
	s := &Store{client: fake, bucket: "snapshots"}
	ctx := context.Background()

	if err := s.Put(ctx, "stock/a.json", []byte(`{"ok":true}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if ct := fake.types["snapshots/stock/a.json"]; ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	got, err := s.Get(ctx, "stock/a.json")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != `{"ok":true}` {
		t.Errorf("Get = %s", got)
	}

	if _, err := s.Get(ctx, "stock/missing.json"); err == nil {
		t.Error("expected error for missing key")
	}
}

func TestStore_Ping(t *testing.T) {
	fake := newFakeObjects()
	s := &Store{client: fake, bucket: "snapshots"}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	fake.headErr = errors.New("forbidden")
	if err := s.Ping(context.Background()); err == nil {
		t.Fatal("expected Ping error")
	}
}

func TestStockReportKey(t *testing.T) {
	rid := uuid.MustParse("550e8400-e29b-41d4-a716-446655440000")
	at := time.Date(2025, 1, 15, 10, 30, 0, 0, time.FixedZone("CET", 3600))

	got := StockReportKey(rid, at)
	want := "stock/550e8400-e29b-41d4-a716-446655440000/20250115T093000Z.json"
	if got != want {
		t.Fatalf("StockReportKey = %q, want %q", got, want)
	}
}

func TestEndpointURL(t *testing.T) {
	tests := []struct {
		endpoint string
		ssl      bool
		want     string
	}{
		{"localhost:9000", false, "http://localhost:9000"},
		{"minio.internal:443", true, "https://minio.internal:443"},
		{"http://already:9000", true, "http://already:9000"},
		{"https://s3.amazonaws.com", false, "https://s3.amazonaws.com"},
	}
	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			if got := endpointURL(tt.endpoint, tt.ssl); got != tt.want {
				t.Fatalf("endpointURL(%q, %v) = %q, want %q", tt.endpoint, tt.ssl, got, tt.want)
			}
		})
	}
}
