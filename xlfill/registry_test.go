package xlfill

import (
	"context"
	"testing"
)

func noopHandler(ctx context.Context, cell *Cell, fieldName, fieldValue string, data map[string]any) (*HandlerResult, error) {
	return nil, nil
}

func TestHandlerRegistryRegister(t *testing.T) {
	reg := NewHandlerRegistry()
	if err := reg.Register(".qrcode", noopHandler); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, ok := reg.Resolve(".qrcode"); !ok {
		t.Fatalf("expected handler to resolve")
	}

	err := reg.Register(".qrcode", noopHandler)
	if err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if fillErr, ok := err.(*FillError); !ok || fillErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHandlerRegistryValidation(t *testing.T) {
	reg := NewHandlerRegistry()
	if err := reg.Register("", noopHandler); err == nil {
		t.Fatalf("expected error for empty suffix")
	}
	if err := reg.Register(".x", nil); err == nil {
		t.Fatalf("expected error for nil handler")
	}
}

func TestHandlerRegistrySuffixOrdering(t *testing.T) {
	reg := NewHandlerRegistry()
	for _, suffix := range []string{".image", ".photo.image", ".qr"} {
		if err := reg.Register(suffix, noopHandler); err != nil {
			t.Fatalf("register %s: %v", suffix, err)
		}
	}

	suffixes := reg.Suffixes()
	want := []string{".photo.image", ".image", ".qr"}
	if len(suffixes) != len(want) {
		t.Fatalf("expected %d suffixes, got %d", len(want), len(suffixes))
	}
	for i := range want {
		if suffixes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, suffixes)
		}
	}
}

func TestHandlerRegistryReplaceAndDeregister(t *testing.T) {
	reg := NewHandlerRegistry()
	if err := reg.Replace(".qrcode", noopHandler); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := reg.Replace(".qrcode", noopHandler); err != nil {
		t.Fatalf("replace existing: %v", err)
	}
	if len(reg.Suffixes()) != 1 {
		t.Fatalf("expected one suffix, got %v", reg.Suffixes())
	}

	reg.Deregister(".qrcode")
	if _, ok := reg.Resolve(".qrcode"); ok {
		t.Fatalf("expected handler removed")
	}
	if len(reg.Suffixes()) != 0 {
		t.Fatalf("expected no suffixes, got %v", reg.Suffixes())
	}
}
