package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, CodeUnknown},
		{"plain", errors.New("boom"), CodeUnknown},
		{"direct", New(CodeNotFound, "missing"), CodeNotFound},
		{"wrapped cause", Wrap(errors.New("pq: duplicate key"), CodeConflict, "exists"), CodeConflict},
		{"fmt wrapped", fmt.Errorf("outer: %w", New(CodeForbidden, "no")), CodeForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CodeOf(tc.err); got != tc.want {
				t.Fatalf("CodeOf = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMessageOfHidesCause(t *testing.T) {
	err := Wrap(errors.New("dial tcp: connection refused"), CodeInternal, "something went wrong")
	if got := MessageOf(err); got != "something went wrong" {
		t.Fatalf("MessageOf = %q", got)
	}
	if got := MessageOf(errors.New("raw")); got != "raw" {
		t.Fatalf("MessageOf plain = %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root")
	err := Wrap(cause, CodeInternal, "ctx")
	if !errors.Is(err, cause) {
		t.Fatal("wrapped cause not reachable via errors.Is")
	}
}
