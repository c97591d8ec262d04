package scenes

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultScene is the embedded scene used when no -scene flag is given.
const DefaultScene = "demo.yaml"

// Dir is the on-disk directory checked before the embedded scenes.
var Dir = "scenes"

//go:embed *.yaml
var ScenesFS embed.FS

// Load returns the raw scene file, preferring the copy on disk.
func Load(name string) ([]byte, error) {
	clean := cleanScenePath(name)
	if data, err := os.ReadFile(DiskPath(clean)); err == nil {
		return data, nil
	}
	return ScenesFS.ReadFile(clean)
}

func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(DiskPath(cleanScenePath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

// DiskPath maps a scene name to its location under Dir. Absolute paths are
// returned unchanged.
func DiskPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(Dir, filepath.FromSlash(cleanScenePath(name)))
}

func cleanScenePath(path string) string {
	if path == "" {
		return DefaultScene
	}
	if filepath.IsAbs(path) {
		return path
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "scenes/"); ok {
		s = after
	}
	if !isSceneFile(s) {
		s += ".yaml"
	}
	return s
}
