package patch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemOptions configure how operations are applied to the local
// filesystem. WorkingDir resolves relative patch paths; it defaults to the
// process working directory.
type FilesystemOptions struct {
	WorkingDir string
}

// ApplyFilesystem applies operations to the OS filesystem.
func ApplyFilesystem(ctx context.Context, operations []Operation, opts FilesystemOptions) ([]Result, error) {
	fsys, err := newOSFS(opts.WorkingDir)
	if err != nil {
		return nil, err
	}
	return Apply(ctx, operations, fsys)
}

// ApplyFilesystemPatch parses a raw patch document and applies it to the
// filesystem.
func ApplyFilesystemPatch(ctx context.Context, patchBody string, opts FilesystemOptions) ([]Result, error) {
	operations, err := Parse(patchBody)
	if err != nil {
		return nil, err
	}
	return ApplyFilesystem(ctx, operations, opts)
}

// osFS applies operations to the real filesystem rooted at workingDir.
type osFS struct {
	workingDir string
}

func newOSFS(workingDir string) (*osFS, error) {
	dir := strings.TrimSpace(workingDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		dir = wd
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &osFS{workingDir: dir}, nil
}

func (o *osFS) resolve(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", invalidf("", "invalid patch path")
	}
	cleaned := filepath.Clean(trimmed)
	if filepath.IsAbs(cleaned) {
		return cleaned, nil
	}
	return filepath.Join(o.workingDir, cleaned), nil
}

func (o *osFS) Kind(path string) (EntryKind, error) {
	abs, err := o.resolve(path)
	if err != nil {
		return EntryMissing, err
	}
	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return EntryMissing, nil
	case err != nil:
		return EntryMissing, &Error{Code: CodeIOFailure, Path: path, Message: fmt.Sprintf("failed to stat %s: %v", path, err)}
	case info.Mode().IsRegular():
		return EntryFile, nil
	default:
		return EntryOther, nil
	}
}

func (o *osFS) ReadFile(path string) (string, error) {
	abs, err := o.resolve(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", &Error{Code: CodeIOFailure, Path: path, Message: fmt.Sprintf("failed to read %s: %v", path, err)}
	}
	return string(data), nil
}

func (o *osFS) WriteFile(path, content string) error {
	abs, err := o.resolve(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		return &Error{Code: CodeIOFailure, Path: path, Message: fmt.Sprintf("failed to write %s: %v", path, err)}
	}
	return nil
}

func (o *osFS) Remove(path string) error {
	abs, err := o.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil {
		return &Error{Code: CodeIOFailure, Path: path, Message: fmt.Sprintf("failed to delete %s: %v", path, err)}
	}
	return nil
}

func (o *osFS) Rename(oldPath, newPath string) error {
	oldAbs, err := o.resolve(oldPath)
	if err != nil {
		return err
	}
	newAbs, err := o.resolve(newPath)
	if err != nil {
		return err
	}
	if err := os.Rename(oldAbs, newAbs); err != nil {
		return &Error{Code: CodeIOFailure, Path: oldPath, Message: fmt.Sprintf("failed to move %s to %s: %v", oldPath, newPath, err)}
	}
	return nil
}

func (o *osFS) EnsureParent(path string) error {
	abs, err := o.resolve(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return &Error{Code: CodeIOFailure, Path: path, Message: fmt.Sprintf("failed to create directory for %s: %v", path, err)}
	}
	return nil
}
