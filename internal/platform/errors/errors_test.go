package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestHTTPStatusCode(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeConflict, http.StatusConflict},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodePanic, http.StatusInternalServerError},
		{ErrorCode(999), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatusCode(tc.code); got != tc.want {
			t.Fatalf("HTTPStatusCode(%d) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestWrapAndWire(t *testing.T) {
	cause := stderrs.New("dial tcp: refused")
	err := Wrap(cause, ErrorCodeUnavailable, "classifier down")
	if err.Error() != "classifier down: dial tcp: refused" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if Root(err) != cause {
		t.Fatalf("Root should return the cause")
	}
	wrapped := fmt.Errorf("outer: %w", WithField(err, "content"))
	w := WireFrom(wrapped)
	if w.Code != ErrorCodeUnavailable || w.Field != "content" || w.Message != "classifier down" {
		t.Fatalf("unexpected wire %+v", w)
	}
	if HTTPStatus(wrapped) != http.StatusServiceUnavailable {
		t.Fatalf("status mismatch")
	}
	if got := WireFrom(stderrs.New("plain")); got.Code != ErrorCodeUnknown {
		t.Fatalf("foreign errors map to unknown, got %+v", got)
	}
	if e, ok := As(WithOp(err, "moderate")); !ok || e.Op() != "moderate" {
		t.Fatalf("WithOp not applied")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
	dup := &pgconn.PgError{Code: "23505"}
	if !IsCode(FromPostgres(dup, "insert"), ErrorCodeDuplicateKey) {
		t.Fatalf("unique violation should map to duplicate key")
	}
	if !IsDuplicateKey(fmt.Errorf("wrapped: %w", dup)) {
		t.Fatalf("IsDuplicateKey should see through wrapping")
	}
	if !IsCode(FromPostgres(pgx.ErrNoRows, "get"), ErrorCodeNotFound) {
		t.Fatalf("no rows should map to not found")
	}
	if !IsCode(FromPostgres(stderrs.New("boom"), "get"), ErrorCodeDB) {
		t.Fatalf("foreign errors should map to db")
	}
	if !Retryable(&pgconn.PgError{Code: "40001"}) {
		t.Fatalf("serialization failure is retryable")
	}
}
