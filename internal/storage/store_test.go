package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func knownFormat(f string) bool {
	return f == "gif" || f == "mp4" || f == "png" || f == "svg"
}

func TestResolveDefault(t *testing.T) {
	st := New("")
	path, format := st.Resolve("insertion", 40, "gif", "", knownFormat)
	if path != filepath.Join("reports", "insertion_n40.gif") {
		t.Errorf("unexpected path %s", path)
	}
	if format != "gif" {
		t.Errorf("unexpected format %s", format)
	}
}

func TestResolveExplicit(t *testing.T) {
	st := New("out")
	tests := []struct {
		out        string
		format     string
		wantFormat string
	}{
		{"anim.mp4", "gif", "mp4"},
		{"anim.GIF", "mp4", "gif"},
		{"anim.webm", "gif", "gif"},
		{"frames", "png", "png"},
	}
	for _, tt := range tests {
		path, format := st.Resolve("selection", 10, tt.format, tt.out, knownFormat)
		if path != tt.out {
			t.Errorf("out %s: path %s", tt.out, path)
		}
		if format != tt.wantFormat {
			t.Errorf("out %s: format %s, want %s", tt.out, format, tt.wantFormat)
		}
	}
}

func TestManifestRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(filepath.Join(tmpDir, "reports"))
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := NewMetadata()
	if meta.ID == "" {
		t.Fatal("expected non-empty render id")
	}
	meta.Algorithm = "selection"
	meta.N = 12
	meta.Seed = 42
	meta.FPS = 24
	meta.Frames = 99
	meta.Output = filepath.Join(tmpDir, "reports", "sub", "selection_n12.gif")

	path, err := WriteManifest(meta)
	if err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("manifest not created")
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.ID != meta.ID || loaded.Algorithm != "selection" || loaded.Frames != 99 || loaded.Seed != 42 {
		t.Errorf("unexpected manifest %+v", loaded)
	}
}

func TestNewMetadataUnique(t *testing.T) {
	if NewMetadata().ID == NewMetadata().ID {
		t.Error("render ids should be unique")
	}
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	older := NewMetadata()
	older.Output = filepath.Join(dir, "insertion_n4.gif")
	older.Timestamp = older.Timestamp.Add(-time.Hour)
	newer := NewMetadata()
	newer.Output = filepath.Join(dir, "selection_n4.gif")

	for _, m := range []RenderMetadata{older, newer} {
		if _, err := WriteManifest(m); err != nil {
			t.Fatal(err)
		}
	}
	// not a manifest
	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	list, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(list))
	}
	if list[0].ID != newer.ID || list[1].ID != older.ID {
		t.Errorf("expected newest first")
	}
}
