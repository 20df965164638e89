package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Dir is the on-disk override root. A file present under Dir shadows the
// embedded copy of the same name.
var Dir = "prefabs"

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// LoadScript returns a tuning script, preferring the disk copy.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

// Load returns a tuning file, preferring the disk copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// ModTime reports the disk override's modification time, if one exists.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanPrefabPath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPrefabPath(p string) string {
	if p == "" {
		return ""
	}
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(p string) string {
	if p == "" {
		return ""
	}
	s := cleanPrefabPath(p)
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
