package shader

import (
	"regexp"
	"strconv"
	"strings"
)

var functionPattern = map[Dialect]*regexp.Regexp{
	GLSL: regexp.MustCompile(`(?m)^vec2 equation_(\d+)\(vec2 z\) \{ return (.+); \}$`),
	Kage: regexp.MustCompile(`(?m)^func equation_(\d+)\(z vec2\) vec2 \{ return (.+) \}$`),
}

// Detect reports the dialect of a program produced by [Assemble].
func Detect(src string) Dialect {
	if strings.Contains(src, "\npackage main\n") {
		return Kage
	}

	return GLSL
}

// Functions recovers the equation functions of a program produced by
// [Assemble], in source order.
func Functions(src string) []Function {
	matches := functionPattern[Detect(src)].FindAllStringSubmatch(src, -1)
	functions := make([]Function, 0, len(matches))

	for _, m := range matches {
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}

		functions = append(functions, Function{Index: index, Body: m[2]})
	}

	return functions
}
