package qrlabel

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.RGBA
	}{
		{"black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{"", color.RGBA{0, 0, 0, 255}},
		{"#ff0000", color.RGBA{255, 0, 0, 255}},
		{"#F00", color.RGBA{255, 0, 0, 255}},
		{"#102030", color.RGBA{16, 32, 48, 255}},
	}
	for _, tc := range cases {
		got, err := ParseColor(tc.in)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parse %q: expected %v, got %v", tc.in, tc.want, got)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"notacolor", "#zz0000", "#12345"} {
		if _, err := ParseColor(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}
