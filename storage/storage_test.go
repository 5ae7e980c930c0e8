package storage

import (
	"strings"
	"testing"
)

func TestNewObjectPath(t *testing.T) {
	path := NewObjectPath("화면설계서_v2.PPTX")

	if !strings.HasPrefix(path, "uploads/") {
		t.Errorf("path %q should live under uploads/", path)
	}
	if !strings.HasSuffix(path, ".pptx") {
		t.Errorf("path %q should keep the original extension lowercased", path)
	}
}

func TestNewObjectPathIsCollisionResistant(t *testing.T) {
	a := NewObjectPath("deck.ppt")
	b := NewObjectPath("deck.ppt")
	if a == b {
		t.Errorf("two paths for the same filename must differ, both were %q", a)
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	b := &Bucket{name: "screen-designs"}

	url := b.PublicURL("uploads/1756684800000-a1b2c3d4.pptx")
	want := "https://storage.googleapis.com/screen-designs/uploads/1756684800000-a1b2c3d4.pptx"
	if url != want {
		t.Fatalf("PublicURL = %q, want %q", url, want)
	}

	objectPath, err := b.ObjectPathFromURL(url)
	if err != nil {
		t.Fatalf("ObjectPathFromURL failed: %v", err)
	}
	if objectPath != "uploads/1756684800000-a1b2c3d4.pptx" {
		t.Errorf("round trip produced %q", objectPath)
	}
}

func TestObjectPathFromForeignURL(t *testing.T) {
	b := &Bucket{name: "screen-designs"}

	if _, err := b.ObjectPathFromURL("https://example.com/uploads/x.ppt"); err == nil {
		t.Error("foreign URL must be rejected")
	}
	if _, err := b.ObjectPathFromURL("https://storage.googleapis.com/other-bucket/x.ppt"); err == nil {
		t.Error("URL from another bucket must be rejected")
	}
	if _, err := b.ObjectPathFromURL("https://storage.googleapis.com/screen-designs/"); err == nil {
		t.Error("URL without an object path must be rejected")
	}
}
