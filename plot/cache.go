package plot

import (
	"context"
	"log/slog"
	"strconv"
	"sync"

	"github.com/zeebo/xxh3"

	"github.com/ardnew/domcol/lang"
	"github.com/ardnew/domcol/shader"
)

// globalCache stores lowered equations keyed by a hash of (source,
// dialect).
//
//nolint:gochecknoglobals
var globalCache sync.Map

// entry is the result of lowering one source text. Errors carry no
// equation index; the caller stamps its own.
type entry struct {
	ast  *lang.AST
	err  error
	body string
	once sync.Once
}

func cacheKey(text string, d shader.Dialect) string {
	hash := xxh3.Hash([]byte(text)) ^ xxh3.Hash([]byte(d.String()))

	return strconv.FormatUint(hash, 36)
}

// lower returns the validated tree and lowered body of text, using the
// cache unless disabled.
func (c *config) lower(ctx context.Context, text string) *entry {
	if !c.cache {
		e := new(entry)
		e.fill(ctx, c, text)

		return e
	}

	key := cacheKey(text, c.dialect)
	value, hit := globalCache.LoadOrStore(key, new(entry))
	e := value.(*entry)

	c.logger.TraceContext(ctx, "cache lookup",
		slog.String("key", key),
		slog.Bool("cache_hit", hit),
	)

	e.once.Do(func() { e.fill(ctx, c, text) })

	return e
}

func (e *entry) fill(ctx context.Context, c *config, text string) {
	ast, err := lang.ParseString(ctx, text, lang.WithLogger(c.logger))
	if err == nil {
		ast, err = lang.Validate(ctx, ast)
	}

	if err == nil {
		e.body, err = shader.Lower(ast)
	}

	if err != nil {
		e.err = err

		return
	}

	e.ast = ast
}

// ClearCache removes every cached lowering.
func ClearCache() {
	globalCache.Clear()
}
