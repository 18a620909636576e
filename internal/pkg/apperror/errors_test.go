// internal/pkg/apperror/errors_test.go
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOfUnwrapsChains(t *testing.T) {
	base := NotFoundf("store %d not found", 4)
	wrapped := fmt.Errorf("loading store: %w", base)

	kind, ok := KindOf(wrapped)
	if !ok || kind != KindNotFound {
		t.Fatalf("expected not_found_error through the chain, got %v %v", kind, ok)
	}
	if !IsKind(wrapped, KindNotFound) {
		t.Fatal("IsKind failed on wrapped error")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{Validationf("bad input"), http.StatusBadRequest},
		{NotFoundf("missing"), http.StatusNotFound},
		{InvalidStatef("wrong state"), http.StatusUnprocessableEntity},
		{Conflictf("concurrent write"), http.StatusConflict},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestErrorMessageCarriesKind(t *testing.T) {
	err := InvalidStatef("record %d is already approved", 7)
	want := "invalid_state_error: record 7 is already approved"
	if err.Error() != want {
		t.Fatalf("unexpected message %q", err.Error())
	}

	wrapped := Wrap(KindConflict, errors.New("unique constraint"), "duplicate record")
	var appErr *Error
	if !errors.As(wrapped, &appErr) || appErr.Unwrap() == nil {
		t.Fatal("expected wrapped cause preserved")
	}
}
