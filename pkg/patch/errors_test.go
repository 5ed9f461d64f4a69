package patch

import (
	"errors"
	"testing"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: "Unknown error occurred."},
		{name: "plain error", err: errors.New("boom"), want: "boom"},
		{
			name: "path appended",
			err:  &Error{Code: CodeHunkNotFound, Path: "a.txt", Message: "failed to match patch hunk context"},
			want: "failed to match patch hunk context (a.txt)",
		},
		{
			name: "path already in message",
			err:  &Error{Code: CodeMissingFile, Path: "a.txt", Message: "cannot delete missing file: a.txt"},
			want: "cannot delete missing file: a.txt",
		},
		{
			name: "wrapped structured error",
			err:  wrapError{&Error{Code: CodeInvalidPatch, Path: "b.txt", Message: "unsupported patch directive"}},
			want: "unsupported patch directive (b.txt)",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatError(tc.err); got != tc.want {
				t.Fatalf("FormatError = %q, want %q", got, tc.want)
			}
		})
	}
}

type wrapError struct{ inner error }

func (w wrapError) Error() string { return w.inner.Error() }
func (w wrapError) Unwrap() error { return w.inner }
