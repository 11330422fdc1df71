package xlfill

import "testing"

func TestMatchTokenPlainText(t *testing.T) {
	tok, ok := matchToken("{{name}}", "{{", "}}", nil)
	if !ok {
		t.Fatalf("expected match")
	}
	if tok.Field != "name" || tok.Value != "name" || tok.HandlerSuffix != "" {
		t.Fatalf("unexpected token %+v", tok)
	}
}

func TestMatchTokenHandlerSuffix(t *testing.T) {
	tok, ok := matchToken("{{device.qrcode}}", "{{", "}}", []string{".qrcode"})
	if !ok {
		t.Fatalf("expected match")
	}
	if tok.HandlerSuffix != ".qrcode" {
		t.Fatalf("expected handler suffix, got %q", tok.HandlerSuffix)
	}
	if tok.Field != "device" || tok.Value != "device" {
		t.Fatalf("unexpected token %+v", tok)
	}
}

func TestMatchTokenFieldUpToFirstDot(t *testing.T) {
	tok, ok := matchToken("{{asset.photo.image}}", "{{", "}}", []string{".image"})
	if !ok {
		t.Fatalf("expected match")
	}
	if tok.HandlerSuffix != ".image" {
		t.Fatalf("expected image suffix, got %q", tok.HandlerSuffix)
	}
	if tok.Value != "asset.photo" {
		t.Fatalf("expected trimmed value, got %q", tok.Value)
	}
	if tok.Field != "asset" {
		t.Fatalf("expected field up to first dot, got %q", tok.Field)
	}
}

func TestMatchTokenLongestSuffixWins(t *testing.T) {
	// Suffixes arrive longest first, the order Suffixes() guarantees.
	tok, ok := matchToken("{{asset.photo.image}}", "{{", "}}", []string{".photo.image", ".image"})
	if !ok {
		t.Fatalf("expected match")
	}
	if tok.HandlerSuffix != ".photo.image" {
		t.Fatalf("expected longest suffix, got %q", tok.HandlerSuffix)
	}
	if tok.Value != "asset" {
		t.Fatalf("unexpected value %q", tok.Value)
	}
}

func TestMatchTokenCustomDelimiters(t *testing.T) {
	tok, ok := matchToken("${name}", "${", "}", nil)
	if !ok {
		t.Fatalf("expected match")
	}
	if tok.Value != "name" {
		t.Fatalf("unexpected value %q", tok.Value)
	}
}

func TestMatchTokenRejectsNonPlaceholders(t *testing.T) {
	for _, value := range []string{"", "name", "{{}}", "{{", "}}", "{name}", "{{.qrcode}}"} {
		if _, ok := matchToken(value, "{{", "}}", []string{".qrcode"}); ok {
			t.Fatalf("expected no match for %q", value)
		}
	}
}
