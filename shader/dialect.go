package shader

import (
	"fmt"
	"strings"
)

// Dialect selects the shading language of generated source.
type Dialect int

//go:generate go tool stringer --linecomment --type Dialect --output dialect_string.go

const (
	GLSL Dialect = iota // glsl
	Kage                // kage
)

// Dialects returns every supported dialect.
func Dialects() []Dialect { return []Dialect{GLSL, Kage} }

// ParseDialect returns the dialect named s, ignoring case.
func ParseDialect(s string) (Dialect, error) {
	for _, d := range Dialects() {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}

	return 0, fmt.Errorf("unknown shader dialect %q", s)
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (d *Dialect) UnmarshalText(text []byte) error {
	v, err := ParseDialect(string(text))
	if err != nil {
		return err
	}

	*d = v

	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (d Dialect) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// Ext returns the customary file extension for source in d.
func (d Dialect) Ext() string {
	if d == Kage {
		return ".kage"
	}

	return ".frag"
}

// FunctionName returns the name of the function generated for the
// equation at index.
func FunctionName(index int) string { return fmt.Sprintf("equation_%d", index) }
