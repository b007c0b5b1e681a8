package cmd

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"

	"github.com/ardnew/domcol/log"
	"github.com/ardnew/domcol/plot"
	"github.com/ardnew/domcol/scene"
)

type contextKey struct{}

// WithContext returns a copy of ctx carrying ktx.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// kongVar returns the kong variable name, or "" outside a kong run.
func kongVar(ctx context.Context, name string) string {
	ktx := kongContextFrom(ctx)
	if ktx == nil || ktx.Model == nil {
		return ""
	}

	return ktx.Model.Vars()[name]
}

type (
	equationFilesKey struct{}
	sceneKey         struct{}
)

// equationFiles reads equations, one per line, from a set of files.
type equationFiles struct {
	read     []io.Reader
	hasStdin bool
}

// stdinSource names standard input as a source.
const stdinSource = "-"

// commentPrefix starts a line that is not an equation.
const commentPrefix = "%"

// WithEquationFiles returns a copy of ctx carrying the given equation files.
//
// Files are deduplicated by device and inode, so a file named twice, or
// through a symlink, is read once. Every "-" names stdin, which is read once
// and last.
func WithEquationFiles(ctx context.Context, sources []string) context.Context {
	files := buildEquationFiles(sources)
	if files == nil {
		return ctx
	}

	return context.WithValue(ctx, equationFilesKey{}, files)
}

func equationFilesFrom(ctx context.Context) *equationFiles {
	files, _ := ctx.Value(equationFilesKey{}).(*equationFiles)

	return files
}

// Equations returns the non-blank lines of every file, in order. Lines
// beginning with '%' are comments.
func (s *equationFiles) Equations() ([]string, error) {
	readers := s.read
	if s.hasStdin {
		readers = append(readers[:len(readers):len(readers)], os.Stdin)
	}

	defer func() {
		for _, r := range s.read {
			if c, ok := r.(io.Closer); ok {
				_ = c.Close()
			}
		}
	}()

	ra := readahead.NewReader(io.MultiReader(readers...))
	defer ra.Close()

	var list []string

	sc := bufio.NewScanner(ra)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		list = append(list, line)
	}

	return list, sc.Err()
}

func buildEquationFiles(sources []string) *equationFiles {
	if len(sources) == 0 {
		return nil
	}

	var files equationFiles

	seen := make(map[fileKey]struct{})

	stdinInfo, _ := os.Stdin.Stat()
	stdinKey, _ := makeFileKey(stdinInfo)

	for _, src := range sources {
		if src == stdinSource {
			seen[stdinKey] = struct{}{}

			continue
		}

		if r, ok := openUniqueFile(src, seen); ok {
			files.read = append(files.read, r)
		}
	}

	// Stdin may also have been named by a path such as /dev/stdin.
	_, files.hasStdin = seen[stdinKey]

	if len(files.read) == 0 && !files.hasStdin {
		return nil
	}

	return &files
}

// fileKey identifies a file by device and inode.
type fileKey struct {
	dev uint64
	ino uint64
}

// openUniqueFile opens path unless a file with the same identity is in seen.
func openUniqueFile(path string, seen map[fileKey]struct{}) (io.Reader, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, false
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, false
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, false
	}

	key, ok := makeFileKey(info)
	if !ok {
		return nil, false
	}

	if _, dup := seen[key]; dup {
		return nil, false
	}

	seen[key] = struct{}{}

	f, err := os.Open(resolved)
	if err != nil {
		return nil, false
	}

	return f, true
}

func makeFileKey(info os.FileInfo) (fileKey, bool) {
	if info == nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}

// sceneRef names a scene and the extra directories to search for it.
type sceneRef struct {
	name string
	dirs []string
}

// WithScene returns a copy of ctx naming the scene commands start from. An
// empty name selects the default scene.
func WithScene(ctx context.Context, name string, dirs ...string) context.Context {
	return context.WithValue(ctx, sceneKey{}, sceneRef{name: name, dirs: dirs})
}

// input assembles the scene a command works on.
func input(ctx context.Context, args []string) (*scene.Scene, error) {
	sc := scene.Default()

	if ref, _ := ctx.Value(sceneKey{}).(sceneRef); ref.name != "" {
		path, err := scene.Search(ref.name, ref.dirs...)
		if err != nil {
			return nil, err
		}

		if sc, err = scene.LoadFile(ctx, path); err != nil {
			return nil, err
		}

		log.DebugContext(ctx, "loaded scene",
			slog.String("path", path),
			slog.Int("equations", len(sc.Equations)),
		)
	}

	if files := equationFilesFrom(ctx); files != nil {
		list, err := files.Equations()
		if err != nil {
			return nil, ErrReadEquations.Wrap(err)
		}

		sc.Equations = append(sc.Equations, list...)
	}

	sc.Equations = append(sc.Equations, args...)

	return sc, nil
}

// report logs every rejected equation and returns the joined errors.
func report(ctx context.Context, res *plot.Result) error {
	for _, eq := range res.Equations {
		if !eq.OK() {
			log.WarnContext(ctx, "equation rejected",
				slog.Int("equation", eq.Index),
				slog.String("source", eq.Source),
				slog.Any("error", eq.Err),
			)
		}
	}

	return res.Errors()
}
