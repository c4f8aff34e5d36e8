package services

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestWrapTagsAndFormats(t *testing.T) {
	inner := errors.New("boom")
	err := Wrap(ErrUpstream, "aliexpress", "call", "http 500", inner)
	if !errors.Is(err, ErrUpstream) {
		t.Fatal("expected upstream marker")
	}
	if !errors.Is(err, inner) {
		t.Fatal("expected wrapped inner error")
	}
	if !strings.Contains(err.Error(), "aliexpress: call: http 500") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := Wrap(nil, "", "", "", nil)
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected default upstream marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		marker error
		want   int
	}{
		{ErrValidation, http.StatusBadRequest},
		{ErrNotFound, http.StatusBadGateway},
		{ErrConfiguration, http.StatusInternalServerError},
		{ErrUpstream, http.StatusInternalServerError},
		{ErrExternalTool, http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.marker); got != tc.want {
			t.Fatalf("HTTPStatus(%v) = %d, want %d", tc.marker, got, tc.want)
		}
	}
}
