package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/tujitume/internal/testutil"
)

func TestNewKey(t *testing.T) {
	at := time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC)
	key := NewKey("Team Photo.JPG", at)
	re := regexp.MustCompile(`^images/2026/03/[0-9a-f]{8}-Team_Photo\.JPG$`)
	if !re.MatchString(key) {
		t.Errorf("NewKey: got %q", key)
	}
	if NewKey("a.png", at) == NewKey("a.png", at) {
		t.Error("keys for the same name should differ")
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"logo.png", "logo.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\pic.jpg`, "pic.jpg"},
		{"héllo wörld.png", "h__llo_w__rld.png"},
		{"", "file"},
		{strings.Repeat("a", 120) + ".png", strings.Repeat("a", 96) + ".png"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := SanitizeFilename(tt.in); got != tt.want {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLocal_PutURLDelete(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	root := t.TempDir()
	l, err := NewLocal(root, "/files/media/")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	ref, err := Upload(ctx, l, "logo.png", strings.NewReader("PNGDATA"), "image/png", time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(ref, "/files/media/images/2026/10/") || !strings.HasSuffix(ref, "-logo.png") {
		t.Errorf("ref: got %q", ref)
	}

	key := strings.TrimPrefix(ref, "/files/media/")
	b, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(b) != "PNGDATA" {
		t.Errorf("content: got %q, want %q", b, "PNGDATA")
	}

	if err := l.Delete(ctx, key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(l.Path(key)); !os.IsNotExist(err) {
		t.Errorf("file should be gone, stat err = %v", err)
	}
	if err := l.Delete(ctx, key); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestLocal_RejectsBadKeys(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}
	for _, key := range []string{"", "/abs/x.png", "images/../../x.png", "a//b", `a\b`} {
		if err := l.Put(context.Background(), key, strings.NewReader("x"), ""); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Put(%q): got %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestS3_URL(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	aws, err := NewS3(ctx, S3Config{Region: "af-south-1", Bucket: "tujitume-media", Prefix: "/site/"})
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if got, want := aws.URL("images/2026/10/abc-logo.png"), "https://tujitume-media.s3.af-south-1.amazonaws.com/site/images/2026/10/abc-logo.png"; got != want {
		t.Errorf("URL: got %q, want %q", got, want)
	}

	minio, err := NewS3(ctx, S3Config{Bucket: "media", Endpoint: "http://localhost:9000"})
	if err != nil {
		t.Fatalf("NewS3: %v", err)
	}
	if got, want := minio.URL("images/x.png"), "http://localhost:9000/media/images/x.png"; got != want {
		t.Errorf("URL: got %q, want %q", got, want)
	}
}

func TestOpen(t *testing.T) {
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s, err := Open(ctx, Config{Type: "LOCAL", LocalPath: t.TempDir()})
	if err != nil {
		t.Fatalf("Open(local): %v", err)
	}
	if _, ok := s.(*Local); !ok {
		t.Errorf("Open(local): got %T", s)
	}
	if _, err := Open(ctx, Config{Type: "s3"}); err == nil {
		t.Error("Open(s3) without bucket should fail")
	}
	if _, err := Open(ctx, Config{Type: "ftp"}); err == nil {
		t.Error("Open(ftp) should fail")
	}
}
