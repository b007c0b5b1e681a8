package edit

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/ardnew/domcol/log"
)

const defaultEditor = "vi"

// commentPrefix starts a line that is not an equation.
const commentPrefix = "%"

const listHeader = "% One equation per line. Lines starting with % are ignored.\n"

// editListCommand implements [tea.ExecCommand]. It writes the equation list
// to a temp file, opens the user's editor on it, and reads the list back.
type editListCommand struct {
	ctxFunc func() context.Context
	logger  log.Logger
	list    []string
	edited  []string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

// SetStdin sets the stdin reader for the command.
func (c *editListCommand) SetStdin(r io.Reader) { c.stdin = r }

// SetStdout sets the stdout writer for the command.
func (c *editListCommand) SetStdout(w io.Writer) { c.stdout = w }

// SetStderr sets the stderr writer for the command.
func (c *editListCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run edits the list. The edited list is empty if the user removed every
// equation.
func (c *editListCommand) Run() error {
	ctx := c.ctxFunc()

	f, err := os.CreateTemp(os.TempDir(), "domcol-edit-*.txt")
	if err != nil {
		return ErrEditor.Wrap(err)
	}

	tmpPath := f.Name()

	defer os.Remove(tmpPath)

	_, err = io.WriteString(f, formatList(c.list))
	if cerr := f.Close(); err == nil {
		err = cerr
	}

	if err != nil {
		return ErrEditor.Wrap(err)
	}

	if err := runEditor(ctx, c.stdin, c.stdout, c.stderr, tmpPath); err != nil {
		return ErrEditor.Wrap(err).With(slog.String("file", tmpPath))
	}

	r, err := os.Open(tmpPath)
	if err != nil {
		return ErrEditor.Wrap(err)
	}
	defer r.Close()

	c.edited, err = parseList(r)

	c.logger.TraceContext(ctx, "editor list read",
		slog.Int("before", len(c.list)),
		slog.Int("after", len(c.edited)),
	)

	return err
}

// formatList renders list in the format read by [parseList].
func formatList(list []string) string {
	var b strings.Builder

	b.WriteString(listHeader)

	for _, eq := range list {
		b.WriteString(eq)
		b.WriteByte('\n')
	}

	return b.String()
}

// parseList reads one equation per non-blank, non-comment line.
func parseList(r io.Reader) ([]string, error) {
	var list []string

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		list = append(list, line)
	}

	return list, sc.Err()
}

// runEditor runs the user's editor on path.
func runEditor(
	ctx context.Context,
	stdin io.Reader,
	stdout io.Writer,
	stderr io.Writer,
	path string,
) error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = defaultEditor
	}

	cmd := exec.CommandContext(ctx, editor, path)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	return cmd.Run()
}
