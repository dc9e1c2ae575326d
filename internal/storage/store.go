package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultDir is where renders land when no explicit path is given.
const DefaultDir = "reports"

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	if baseDir == "" {
		baseDir = DefaultDir
	}
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Resolve picks the output path and format of a render. An explicit out path
// wins, and a recognised extension on it overrides format. Otherwise the path
// is <baseDir>/<algorithm>_n<n>.<format>.
func (s *Store) Resolve(algorithm string, n int, format, out string, known func(string) bool) (path, resolvedFormat string) {
	if out != "" {
		ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
		if ext != "" && known(ext) {
			return out, ext
		}
		return out, format
	}
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_n%d.%s", algorithm, n, format)), format
}

// EnsureParent creates the directory that will hold path.
func EnsureParent(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

type RenderMetadata struct {
	ID        string    `json:"id"`
	Algorithm string    `json:"algorithm"`
	N         int       `json:"n"`
	Seed      int64     `json:"seed"`
	FPS       int       `json:"fps"`
	Format    string    `json:"format"`
	Output    string    `json:"output"`
	Frames    int       `json:"frames"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Palette   string    `json:"palette"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMetadata stamps a fresh render ID and timestamp.
func NewMetadata() RenderMetadata {
	return RenderMetadata{
		ID:        uuid.NewString(),
		Timestamp: time.Now(),
	}
}

// ManifestPath returns the sidecar path for an output path.
func ManifestPath(output string) string {
	return output + ".json"
}

// WriteManifest stores meta next to its output.
func WriteManifest(meta RenderMetadata) (string, error) {
	path := ManifestPath(meta.Output)
	if err := EnsureParent(path); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}
	return path, nil
}

func LoadManifest(path string) (*RenderMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var meta RenderMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// List loads every manifest directly under the base directory, newest first.
func (s *Store) List() ([]*RenderMetadata, error) {
	paths, err := filepath.Glob(filepath.Join(s.baseDir, "*.json"))
	if err != nil {
		return nil, err
	}

	var out []*RenderMetadata
	for _, p := range paths {
		meta, err := LoadManifest(p)
		if err != nil {
			continue
		}
		out = append(out, meta)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}
