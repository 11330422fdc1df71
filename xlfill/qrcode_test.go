package xlfill

import (
	"bytes"
	"image/png"
	"testing"
)

func TestEncodeQRCode(t *testing.T) {
	data, err := EncodeQRCode("https://example.com/asset/42", 100)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Fatalf("expected 100x100, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestEncodeQRCodeDefaultSize(t *testing.T) {
	data, err := EncodeQRCode("x", 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if img.Bounds().Dx() != defaultPlacementSize {
		t.Fatalf("expected default size, got %d", img.Bounds().Dx())
	}
}

func TestEncodeQRCodeEmpty(t *testing.T) {
	_, err := EncodeQRCode("", 100)
	if err == nil {
		t.Fatalf("expected error for empty content")
	}
	if KindFromError(err) != KindValidation {
		t.Fatalf("expected validation kind, got %v", err)
	}
}
