package app

import (
	"reflect"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello", 10, []string{"hello"}},
		{"exact", "hello", 5, []string{"hello"}},
		{"split", "hello world", 5, []string{"hello", " worl", "d"}},
		{"newlines", "a\nb", 10, []string{"a", "b"}},
		{"empty paragraph", "a\n\nb", 10, []string{"a", "", "b"}},
		{"zero width", "hello", 0, nil},
		{"multibyte", "géométrie", 4, []string{"géom", "étri", "e"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("wrap(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", []string{""}},
		{"one", []string{"one"}},
		{"a\nb\nc", []string{"a", "b", "c"}},
		{"trailing\n", []string{"trailing", ""}},
	}
	for _, tt := range tests {
		if got := splitLines(tt.text); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitLines(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
