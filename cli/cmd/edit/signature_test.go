package edit

import (
	"slices"
	"testing"
)

func TestDetectFunctionCall(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		cursor     int
		wantName   string
		wantIndex  int
		wantInCall bool
	}{
		{"no_call", "z^2", 3, "", 0, false},
		{"open_paren", "sin(", 4, "sin", 0, true},
		{"first_arg", "sin(z", 5, "sin", 0, true},
		{"second_arg", "pow(z,", 6, "pow", 1, true},
		{"second_arg_value", "pow(z, 2", 8, "pow", 1, true},
		{"nested_inner", "pow(sin(z", 9, "sin", 0, true},
		{"nested_outer", "pow(sin(z), ", 12, "pow", 1, true},
		{"closed", "sin(z)", 6, "", 0, false},
		{"cursor_inside", "pow(z, 2)", 5, "pow", 0, true},
		{"grouping", "(z+1", 4, "", 0, false},
		{"brace_first", `\frac{1`, 7, "frac", 0, true},
		{"brace_second", `\frac{1}{z`, 10, "frac", 1, true},
		{"brace_nested", `\frac{\sin(z`, 12, "sin", 0, true},
		{"brace_after_nested", `\frac{\sin(z)}{`, 15, "frac", 1, true},
		{"superscript", "z^{2", 4, "", 0, false},
		{"implicit_product", "2isin(", 6, "sin", 0, true},
		{"unknown", "foo(", 4, "foo", 0, true},
		{"leading_digits", "2foo(", 5, "foo", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detectFunctionCall(tt.input, tt.cursor)
			if got.name != tt.wantName || got.argIndex != tt.wantIndex || got.inCall != tt.wantInCall {
				t.Errorf("detectFunctionCall(%q, %d) = %+v, want {name:%s argIndex:%d inCall:%v}",
					tt.input, tt.cursor, got, tt.wantName, tt.wantIndex, tt.wantInCall)
			}
		})
	}
}

func TestGetSignature(t *testing.T) {
	tests := []struct {
		name       string
		want       string
		wantParams []string
	}{
		{"pow", "pow(base, exponent)", []string{"base", "exponent"}},
		{"frac", "frac(numerator, denominator)", []string{"numerator", "denominator"}},
		{"sin", "sin(w)", []string{"w"}},
		{"z", "", nil},
		{"nope", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, params, doc := getSignature(tt.name)
			if got != tt.want || !slices.Equal(params, tt.wantParams) {
				t.Errorf("getSignature(%q) = (%q, %q), want (%q, %q)",
					tt.name, got, params, tt.want, tt.wantParams)
			}

			if (doc != "") != (tt.want != "") {
				t.Errorf("getSignature(%q) doc = %q", tt.name, doc)
			}
		})
	}
}

func TestRenderSignatureHint(t *testing.T) {
	params := []string{"base", "exponent"}

	for i := range 3 {
		if got := plain(renderSignatureHint("pow(base, exponent)", params, i)); got != "pow(base, exponent)" {
			t.Errorf("argIndex %d: got %q", i, got)
		}
	}

	if got := plain(renderSignatureHint("z", nil, 0)); got != "z" {
		t.Errorf("got %q, want %q", got, "z")
	}
}

func BenchmarkDetectFunctionCall(b *testing.B) {
	const input = `\frac{\sin(z^2 + 1)}{pow(z, 3) - \cos(z)}`

	for b.Loop() {
		for cursor := range len(input) + 1 {
			detectFunctionCall(input, cursor)
		}
	}
}
