package loader

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed scenes/*.yaml
var ScenesFS embed.FS

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// diskRoot is where on-disk copies override the embedded files, so scenes
// can be edited without a rebuild.
var diskRoot = "loader"

// Load reads a scene file. The copy under loader/scenes on disk wins, then
// name is tried as a plain path, then the embedded set.
func Load(name string) ([]byte, error) {
	return read(ScenesFS, "scenes", name)
}

// LoadScript reads a tengo script the same way Load reads scenes.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, "scripts", name)
}

func read(fsys embed.FS, dir, name string) ([]byte, error) {
	clean := cleanPath(dir, name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	if data, err := os.ReadFile(name); err == nil {
		return data, nil
	}
	return fsys.ReadFile(clean)
}

// Scenes lists the embedded scene names.
func Scenes() []string {
	entries, err := ScenesFS.ReadDir("scenes")
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}
	return out
}

func cleanPath(dir, path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "loader/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, dir+"/"); ok {
		s = after
	}
	return dir + "/" + s
}

func diskPath(clean string) string {
	return filepath.Join(diskRoot, filepath.FromSlash(clean))
}
