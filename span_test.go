package rapidyaml

import "testing"

func TestSpanEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Span
		want bool
	}{
		{"equal contents, different backing", Span("hello"), Span([]byte("hello")), true},
		{"different length", Span("hi"), Span("hiya"), false},
		{"different contents same length", Span("cat"), Span("bat"), false},
		{"both empty", Span(nil), Span(""), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("Equal(%q, %q) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestSpanEmpty(t *testing.T) {
	if !(Span(nil)).Empty() {
		t.Error("nil span should be empty")
	}
	if (Span("x")).Empty() {
		t.Error("non-empty span reported empty")
	}
}
