package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestLocalPutGetDelete(t *testing.T) {
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "blobs")
	l, err := NewLocal(root)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	key := RenderKey(uuid.New())
	data := []byte("\x89PNG fake")
	if err := l.Put(ctx, key, ContentTypePNG, data); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(key))); err != nil {
		t.Errorf("blob file missing: %v", err)
	}

	got, err := l.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get = %q, want %q", got, data)
	}

	// Put replaces existing content.
	if err := l.Put(ctx, key, ContentTypePNG, []byte("v2")); err != nil {
		t.Fatal(err)
	}
	if got, _ := l.Get(ctx, key); string(got) != "v2" {
		t.Errorf("after overwrite: %q", got)
	}

	if err := l.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := l.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete: got %v, want ErrNotFound", err)
	}
	if err := l.Delete(ctx, key); err != nil {
		t.Errorf("Delete of a missing blob: %v", err)
	}

	// No temporary files are left behind.
	entries, _ := os.ReadDir(filepath.Join(root, "renders"))
	if len(entries) != 0 {
		t.Errorf("leftover files: %v", entries)
	}
}

func TestLocalRejectsBadKeys(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"", "../escape.png", "/abs.png", "a//b", "a/./b", `a\b`} {
		if err := l.Put(ctx, key, ContentTypePNG, []byte("x")); err == nil {
			t.Errorf("Put(%q) should fail", key)
		}
		if _, err := l.Get(ctx, key); err == nil || errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%q) should fail with a key error, got %v", key, err)
		}
	}
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2a9e-0000-4000-8000-000000000001")
	tests := []struct {
		got, want string
	}{
		{IconKey(id, "svg"), "icons/6f1c2a9e-0000-4000-8000-000000000001.svg"},
		{IconKey(id, ".png"), "icons/6f1c2a9e-0000-4000-8000-000000000001.png"},
		{PreviewKey(id), "previews/6f1c2a9e-0000-4000-8000-000000000001.png"},
		{RenderKey(id), "renders/6f1c2a9e-0000-4000-8000-000000000001.png"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
		if !validKey(tt.got) {
			t.Errorf("%q should be a valid key", tt.got)
		}
	}
}

func TestNewS3Disabled(t *testing.T) {
	s, err := NewS3(S3Config{Endpoint: "http://localhost:9000", Bucket: "kachel"})
	if s != nil || err != nil {
		t.Errorf("NewS3 without credentials = %v, %v; want nil, nil", s, err)
	}
}

func TestS3ObjectKeyPrefix(t *testing.T) {
	s, err := NewS3(S3Config{
		Endpoint: "http://localhost:9000/", Region: "us-east-1",
		AccessKey: "a", SecretKey: "b", Bucket: "kachel", Prefix: "/tiles/",
	})
	if err != nil || s == nil {
		t.Fatalf("NewS3 = %v, %v", s, err)
	}
	k, err := s.objectKey("renders/x.png")
	if err != nil || k != "tiles/renders/x.png" {
		t.Errorf("objectKey = %q, %v; want tiles/renders/x.png", k, err)
	}
	if _, err := s.objectKey("../x"); err == nil {
		t.Error("objectKey should reject traversal")
	}
}
