// Package source resolves where the patch text comes from: a file path, a
// literal patch document passed as an argument, or standard input.
package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/asynkron/applypatch/pkg/patch"
)

// Read resolves the patch text from the positional arguments, falling back
// to stdin when no argument is given. "-" always selects stdin. An argument
// that names an existing file is read from disk; an argument that contains a
// patch envelope is used verbatim; anything else is reported as a missing
// file.
func Read(args []string, stdin io.Reader) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("expected at most one patch argument, got %d", len(args))
	}

	if len(args) == 0 {
		return readStdin(stdin)
	}

	arg := args[0]
	if arg == "-" {
		return readStdin(stdin)
	}

	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		content, err := os.ReadFile(arg)
		if err != nil {
			return "", fmt.Errorf("failed to read patch file %q: %w", arg, err)
		}
		text := string(content)
		if strings.TrimSpace(text) == "" {
			return "", fmt.Errorf("patch file %q is empty", arg)
		}
		return text, nil
	}

	if strings.Contains(arg, patch.BeginMarker) {
		return arg, nil
	}

	return "", fmt.Errorf("patch file %q does not exist", arg)
}

func readStdin(stdin io.Reader) (string, error) {
	if stdin == nil {
		return "", fmt.Errorf("no patch text provided")
	}
	content, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read patch from stdin: %w", err)
	}
	text := string(content)
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no patch text provided")
	}
	return text, nil
}
