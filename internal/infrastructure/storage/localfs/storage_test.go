package localfs

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
)

func TestSaveOpenRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := s.Save(ctx, "staging/doc-1_card.jpg", bytes.NewBufferString("jpeg-bytes")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	r, err := s.Open(ctx, "staging/doc-1_card.jpg")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("read %q", data)
	}
}

func TestExists(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx := context.Background()

	if err := s.EnsureFolder(ctx, "02_保険証"); err != nil {
		t.Fatalf("EnsureFolder() error = %v", err)
	}
	ok, err := s.Exists(ctx, "02_保険証", "保険証_山田太郎_20240301.jpg")
	if err != nil || ok {
		t.Fatalf("Exists() = %v, %v; want false, nil", ok, err)
	}

	if err := s.Save(ctx, "02_保険証/保険証_山田太郎_20240301.jpg", bytes.NewBufferString("x")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	ok, err = s.Exists(ctx, "02_保険証", "保険証_山田太郎_20240301.jpg")
	if err != nil || !ok {
		t.Fatalf("Exists() = %v, %v; want true, nil", ok, err)
	}
}

func TestShareLink(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	link, err := s.ShareLink(context.Background(), "02_保険証/card.jpg")
	if err != nil {
		t.Fatalf("ShareLink() error = %v", err)
	}
	if !strings.HasPrefix(link, "file://") || !strings.HasSuffix(link, "02_保険証/card.jpg") {
		t.Fatalf("link = %q", link)
	}
}

func TestOpenMissingFile(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, err := s.Open(context.Background(), "missing.bin"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
