package scene

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ardnew/mung"

	"github.com/ardnew/domcol/pkg"
)

// PathEnv names the environment variable listing scene directories.
const PathEnv = pkg.EnvPrefix + "SCENE_PATH"

// Exts are the extensions tried, in order, for a scene name without one.
var Exts = []string{".yaml", ".yml", ".json"}

// SearchPath returns the directories searched for scenes: the working
// directory, the entries of [PathEnv], then extra. Directories that do not
// exist are dropped.
func SearchPath(extra ...string) []string {
	var prefix []string
	if cwd, err := os.Getwd(); err == nil {
		prefix = append(prefix, cwd)
	}

	list := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(isDir),
	).String()

	dirs := filepath.SplitList(list)

	for _, dir := range extra {
		if isDir(dir) {
			dirs = append(dirs, dir)
		}
	}

	return dirs
}

// Search returns the path of the scene called name. A name that is a path
// to an existing file is returned as is. Otherwise name, and name with
// each of [Exts], is looked up in each directory of [SearchPath].
func Search(name string, extra ...string) (string, error) {
	if isFile(name) {
		return name, nil
	}

	return SearchIn(name, SearchPath(extra...)...)
}

// SearchIn looks up name in dirs, in order.
func SearchIn(name string, dirs ...string) (string, error) {
	candidates := []string{name}
	if filepath.Ext(name) == "" {
		for _, ext := range Exts {
			candidates = append(candidates, name+ext)
		}
	}

	for _, dir := range dirs {
		for _, c := range candidates {
			if path := filepath.Join(dir, c); isFile(path) {
				return path, nil
			}
		}
	}

	return "", ErrNotFound.With(slog.String("name", name))
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}
