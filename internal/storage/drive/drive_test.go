package drive

import "testing"

func TestEscapeQuery(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"it's a wrap":    `it\'s a wrap`,
		`back\slash`:     `back\\slash`,
		`both\'together`: `both\\\'together`,
	}
	for in, want := range cases {
		if got := escapeQuery(in); got != want {
			t.Errorf("escapeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}
