package xlfill

import (
	"context"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{NewError(KindValidation, "bad input", nil), errorslib.CategoryValidation, "validation"},
		{NewError(KindNotFound, "missing", nil), errorslib.CategoryNotFound, "not_found"},
		{NewError(KindFetch, "download failed", nil), errorslib.CategoryOperation, "fetch"},
		{NewError(KindFont, "no font", nil), errorslib.CategoryOperation, "font"},
		{NewError(KindRender, "draw failed", nil), errorslib.CategoryOperation, "render"},
		{context.DeadlineExceeded, errorslib.CategoryOperation, "timeout"},
		{context.Canceled, errorslib.CategoryOperation, "canceled"},
		{NewError(KindInternal, "boom", nil), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s", tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s", tc.code, mapped.TextCode)
		}
	}
}

func TestKindFromError(t *testing.T) {
	if kind := KindFromError(nil); kind != "" {
		t.Fatalf("expected empty kind for nil, got %s", kind)
	}
	if kind := KindFromError(NewError(KindFetch, "x", nil)); kind != KindFetch {
		t.Fatalf("expected fetch kind, got %s", kind)
	}
	if kind := KindFromError(context.Canceled); kind != KindCanceled {
		t.Fatalf("expected canceled kind, got %s", kind)
	}
}

func TestFillErrorUnwrap(t *testing.T) {
	inner := NewError(KindFont, "inner", nil)
	outer := NewError(KindRender, "outer", inner)
	if outer.Error() != "outer: inner" {
		t.Fatalf("unexpected message %q", outer.Error())
	}
	if outer.Unwrap() != inner {
		t.Fatalf("expected inner error from Unwrap")
	}
}
