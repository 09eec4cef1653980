package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{Validation("missing field"), http.StatusBadRequest},
		{Authentication("invalid token"), http.StatusUnauthorized},
		{Forbidden("no permission"), http.StatusForbidden},
		{NotFound("job not found"), http.StatusNotFound},
		{Conflict("email already exists"), http.StatusConflict},
		{RateLimited("slow down"), http.StatusTooManyRequests},
		{Configuration("invalid API key configuration"), http.StatusInternalServerError},
		{Upstream("invalid response from AI service"), http.StatusInternalServerError},
		{Unavailable("connection refused"), http.StatusInternalServerError},
		{errors.New("some driver error"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.err); got != tc.status {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.err, got, tc.status)
		}
	}
}

func TestMessageHidesInternalDetail(t *testing.T) {
	if got := Message(errors.New("pq: relation does not exist")); got != "Internal server error" {
		t.Fatalf("Message leaked internal detail: %q", got)
	}
	if got := Message(NotFound("company not found")); got != "company not found" {
		t.Fatalf("Message = %q", got)
	}
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create job: %w", Conflict("duplicate"))
	if !IsKind(err, KindConflict) {
		t.Fatalf("expected conflict kind through wrapping")
	}
	wrapped := Wrap(KindUnavailable, "ai service unreachable", errors.New("dial tcp: connection refused"))
	if KindOf(wrapped) != KindUnavailable {
		t.Fatalf("KindOf = %v", KindOf(wrapped))
	}
	if wrapped.Unwrap() == nil {
		t.Fatalf("expected wrapped cause")
	}
}
