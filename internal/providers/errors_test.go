package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatus(t *testing.T) {
	cases := []struct {
		status int
		want   FailureClass
	}{
		{400, FailurePermanent},
		{401, FailurePermanent},
		{403, FailurePermanent},
		{404, FailurePermanent},
		{408, FailureTransient},
		{422, FailurePermanent},
		{429, FailureTransient},
		{500, FailureTransient},
		{502, FailureTransient},
		{503, FailureTransient},
		{504, FailureTransient},
		{524, FailureTransient},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("status_%d", tc.status), func(t *testing.T) {
			if got := ClassifyStatus(tc.status); got != tc.want {
				t.Errorf("ClassifyStatus(%d) = %s, want %s", tc.status, got, tc.want)
			}
		})
	}
}

func TestIsTransient(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"transient", Transient(fmt.Errorf("connection refused")), true},
		{"permanent", Permanent(fmt.Errorf("bad request")), false},
		{"status 503", StatusError(503, fmt.Errorf("unavailable")), true},
		{"status 404", StatusError(404, fmt.Errorf("not found")), false},
		{"wrapped transient", fmt.Errorf("call failed: %w", Transient(fmt.Errorf("timeout"))), true},
		{"unclassified", errors.New("some error"), false},
		{"nil", nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTransient(tc.err); got != tc.want {
				t.Errorf("IsTransient = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCallErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := StatusError(503, inner)

	if !errors.Is(err, inner) {
		t.Error("CallError should unwrap to its inner error")
	}
	if err.StatusCode != 503 {
		t.Errorf("status code lost: %d", err.StatusCode)
	}
}
