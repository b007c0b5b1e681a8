package shader

import (
	_ "embed"
	"fmt"
	"strings"
)

var (
	//go:embed preamble.glsl
	glslPreamble string
	//go:embed preamble.kage
	kagePreamble string
)

// Uniform names of the view parameters, per dialect.
const (
	uniformResolution = "resolution"
	uniformCenter     = "center"
	uniformScale      = "scale"
)

// Uniform returns the name dialect d gives the view parameter named by
// one of "resolution", "center", or "scale". Kage requires exported names.
func Uniform(d Dialect, name string) string {
	if d == Kage && name != "" {
		return strings.ToUpper(name[:1]) + name[1:]
	}

	return name
}

// Background is the gray the entry point starts from.
var Background = [3]float64{0.5, 0.5, 0.5}

// Assemble returns a complete program for dialect d containing the given
// functions in order. With no functions the program renders [Background].
func Assemble(functions []Function, d Dialect) string {
	var b strings.Builder

	header(&b, d)

	if d == Kage {
		b.WriteString(kagePreamble)
	} else {
		b.WriteString(glslPreamble)
	}

	for _, f := range functions {
		b.WriteByte('\n')
		b.WriteString(f.Source(d))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	entry(&b, functions, d)

	return b.String()
}

func header(b *strings.Builder, d Dialect) {
	res := Uniform(d, uniformResolution)
	ctr := Uniform(d, uniformCenter)
	scl := Uniform(d, uniformScale)

	switch d {
	case Kage:
		b.WriteString("//kage:unit pixels\n\npackage main\n\n")
		fmt.Fprintf(b, "var %s vec2\nvar %s vec2\nvar %s float\n\n", res, ctr, scl)
	default:
		b.WriteString("precision highp float;\n\n")
		fmt.Fprintf(b, "uniform vec2 %s;\nuniform vec2 %s;\nuniform float %s;\n\n", res, ctr, scl)
	}
}

func entry(b *strings.Builder, functions []Function, d Dialect) {
	res := Uniform(d, uniformResolution)
	ctr := Uniform(d, uniformCenter)
	scl := Uniform(d, uniformScale)
	gray := fmt.Sprintf("vec3(%s, %s, %s)",
		floatLit(Background[0]), floatLit(Background[1]), floatLit(Background[2]))

	switch d {
	case Kage:
		b.WriteString("func Fragment(dstPos vec4, srcPos vec2, color vec4) vec4 {\n")

		// Kage rejects unused locals, so the coordinate is only computed
		// when some layer reads it.
		if len(functions) > 0 {
			b.WriteString("\tp := dstPos.xy - imageDstOrigin()\n")
			fmt.Fprintf(b, "\tz := %s + vec2(p.x-%s.x*0.5, %s.y*0.5-p.y)*%s/%s.y\n",
				ctr, res, res, scl, res)
		}

		fmt.Fprintf(b, "\trgb := %s\n", gray)

		for k, f := range functions {
			fmt.Fprintf(b, "\trgb = mix(rgb, domain_color(%s(z)), %s)\n", f.Name(), weight(k))
		}

		b.WriteString("\treturn vec4(rgb, 1.0)\n}\n")

	default:
		b.WriteString("void main() {\n")
		fmt.Fprintf(b, "\tvec2 z = %s + (gl_FragCoord.xy - %s * 0.5) * %s / %s.y;\n", ctr, res, scl, res)
		fmt.Fprintf(b, "\tvec3 rgb = %s;\n", gray)

		for k, f := range functions {
			fmt.Fprintf(b, "\trgb = mix(rgb, domain_color(%s(z)), %s);\n", f.Name(), weight(k))
		}

		b.WriteString("\tgl_FragColor = vec4(rgb, 1.0);\n}\n")
	}
}

// weight returns the blend weight of the k-th layer.
func weight(k int) string {
	return fmt.Sprintf("1.0 / %d.0", k+1)
}
