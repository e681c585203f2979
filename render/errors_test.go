package render

import (
	"context"
	"errors"
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
		{NewCodedError(KindValidation, CodeMissingTarget, "frontend_url is required", nil), errorslib.CategoryValidation, "missing_target"},
		{NewCodedError(KindValidation, CodeDisallowedScheme, "invalid scheme", nil), errorslib.CategoryValidation, "disallowed_scheme"},
		{NewCodedError(KindValidation, CodePrivateAddressBlocked, "blocked", nil), errorslib.CategoryValidation, "private_address_blocked"},
		{NewCodedError(KindValidation, CodeOriginNotAllowlisted, "not allowed", nil), errorslib.CategoryValidation, "origin_not_allowlisted"},
		{NewError(KindNotFound, "missing", nil), errorslib.CategoryNotFound, "not_found"},
		{context.DeadlineExceeded, errorslib.CategoryOperation, "timeout"},
		{context.Canceled, errorslib.CategoryOperation, "canceled"},
		{NewError(KindInternal, "boom", nil), errorslib.CategoryInternal, "internal"},
		{errors.New("plain"), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s for %v", tc.category, mapped.Category, tc.err)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s for %v", tc.code, mapped.TextCode, tc.err)
		}
	}
}

func TestAsGoErrorNil(t *testing.T) {
	if AsGoError(nil) != nil {
		t.Fatal("expected nil mapping for nil error")
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("root cause")
	wrapped := NewError(KindInternal, "render failed", inner)
	if !errors.Is(wrapped, inner) {
		t.Fatal("expected wrapped error to match inner via errors.Is")
	}
	if wrapped.Error() != "render failed: root cause" {
		t.Fatalf("unexpected error text: %s", wrapped.Error())
	}
}

func TestKindFromError(t *testing.T) {
	if kind := KindFromError(NewError(KindValidation, "x", nil)); kind != KindValidation {
		t.Fatalf("expected validation, got %s", kind)
	}
	if kind := KindFromError(context.DeadlineExceeded); kind != KindTimeout {
		t.Fatalf("expected timeout, got %s", kind)
	}
	if kind := KindFromError(context.Canceled); kind != KindCanceled {
		t.Fatalf("expected canceled, got %s", kind)
	}
	if kind := KindFromError(errors.New("other")); kind != KindInternal {
		t.Fatalf("expected internal, got %s", kind)
	}
	if kind := KindFromError(nil); kind != "" {
		t.Fatalf("expected empty kind for nil, got %s", kind)
	}
}
