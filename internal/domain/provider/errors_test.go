package provider

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"transient", Transient("google", "timeout", errors.New("deadline")), true},
		{"not configured", NotConfigured("google", "missing api key"), false},
		{"logical", Logical("wikipedia", "page not found"), false},
		{"malformed", Malformed("google", "bad json", errors.New("unexpected EOF")), false},
		{"plain error", errors.New("boom"), false},
		{"wrapped transient", fmt.Errorf("dispatch: %w", Transient("google", "503", nil)), true},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(NotConfigured("google", "x")); got != KindNotConfigured {
		t.Errorf("KindOf = %v, want KindNotConfigured", got)
	}
	if got := KindOf(errors.New("untyped")); got != KindMalformed {
		t.Errorf("KindOf = %v, want KindMalformed for untyped errors", got)
	}
}

func TestErrorString(t *testing.T) {
	e := Transient("google", "http 503", errors.New("service unavailable"))
	want := "google: transient: http 503: service unavailable"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	e2 := Logical("wikipedia", "no page found")
	if e2.Error() != "wikipedia: upstream_logical: no page found" {
		t.Errorf("Error() = %q", e2.Error())
	}
}

func TestUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	e := Transient("google", "dial", inner)
	if !errors.Is(e, inner) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}
