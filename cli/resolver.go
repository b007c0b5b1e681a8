package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"

	"github.com/ardnew/domcol/log"
)

// resolve returns a [kong.ConfigurationLoader] for YAML config files.
//
// Nested mappings are flattened by joining keys with hyphens, so
//
//	log:
//	  level: debug
//
// sets --log-level. A key may use underscores in place of hyphens. Lists
// become comma-separated values. A file that cannot be decoded is logged and
// otherwise ignored; the command line and defaults still apply.
func resolve(ctx context.Context) kong.ConfigurationLoader {
	return func(r io.Reader) (kong.Resolver, error) {
		ra := readahead.NewReader(r)
		defer ra.Close()

		data, err := io.ReadAll(ra)
		if err != nil {
			log.WarnContext(ctx, "ignored config", slog.String("error", err.Error()))

			return config{}, nil
		}

		var doc map[string]any
		if err := yaml.UnmarshalContext(ctx, data, &doc); err != nil {
			log.WarnContext(ctx, "ignored config", slog.String("error", err.Error()))

			return config{}, nil
		}

		cfg := make(config)
		cfg.flatten("", doc)

		log.TraceContext(ctx, "loaded config", slog.Int("keys", len(cfg)))

		return cfg, nil
	}
}

// config implements [kong.Resolver] over flattened YAML keys.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	return nil, nil //nolint:nilnil
}

func (c config) flatten(prefix string, m map[string]any) {
	for key, value := range m {
		key = strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			key = prefix + "-" + key
		}

		if sub, ok := value.(map[string]any); ok {
			c.flatten(key, sub)

			continue
		}

		c[key] = scalar(value)
	}
}

// scalar converts a decoded YAML value to the form kong parses. Numbers
// become strings.
func scalar(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, elem := range v {
			parts[i] = fmt.Sprint(scalar(elem))
		}

		return strings.Join(parts, ",")
	default:
		return v
	}
}
