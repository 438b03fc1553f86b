// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindConflict, http.StatusConflict},
		{KindInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	sentinel := Conflict("already drawn")

	if got := KindOf(sentinel); got != KindConflict {
		t.Errorf("KindOf(sentinel) = %v, want conflict", got)
	}

	wrapped := fmt.Errorf("draw: %w", sentinel)
	if got := KindOf(wrapped); got != KindConflict {
		t.Errorf("KindOf(wrapped) = %v, want conflict", got)
	}
	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is should find sentinel through wrapping")
	}

	if got := KindOf(errors.New("boom")); got != KindInternal {
		t.Errorf("KindOf(plain) = %v, want internal", got)
	}
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("Database error", cause)

	if !errors.Is(err, cause) {
		t.Error("Internal error should unwrap to its cause")
	}
	if err.Error() != "Database error: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}
