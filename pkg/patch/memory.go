package patch

import (
	"context"
	"path/filepath"
	"strings"
)

// ApplyToMemory applies operations to an in-memory document store
// represented by a map. The provided map is copied before mutation and the
// updated snapshot is returned.
func ApplyToMemory(ctx context.Context, operations []Operation, files map[string]string) (map[string]string, []Result, error) {
	snapshot := make(map[string]string, len(files))
	for k, v := range files {
		snapshot[k] = v
	}
	fsys := &memFS{files: snapshot}
	results, err := Apply(ctx, operations, fsys)
	if err != nil {
		return nil, nil, err
	}
	return fsys.files, results, nil
}

// ApplyMemoryPatch parses a raw patch document and applies it to an
// in-memory map of files.
func ApplyMemoryPatch(ctx context.Context, patchBody string, files map[string]string) (map[string]string, []Result, error) {
	operations, err := Parse(patchBody)
	if err != nil {
		return nil, nil, err
	}
	return ApplyToMemory(ctx, operations, files)
}

// memFS keys files by their cleaned relative path. Every entry is a regular
// file; directories do not exist as entries, so EnsureParent is a no-op.
type memFS struct {
	files map[string]string
}

func (m *memFS) key(path string) (string, error) {
	cleaned := filepath.Clean(strings.TrimSpace(path))
	if cleaned == "" || cleaned == "." {
		return "", invalidf("", "invalid patch path")
	}
	return cleaned, nil
}

func (m *memFS) Kind(path string) (EntryKind, error) {
	key, err := m.key(path)
	if err != nil {
		return EntryMissing, err
	}
	if _, ok := m.files[key]; ok {
		return EntryFile, nil
	}
	return EntryMissing, nil
}

func (m *memFS) ReadFile(path string) (string, error) {
	key, err := m.key(path)
	if err != nil {
		return "", err
	}
	content, ok := m.files[key]
	if !ok {
		return "", &Error{Code: CodeMissingFile, Path: path, Message: "failed to read " + path + ": file does not exist"}
	}
	return content, nil
}

func (m *memFS) WriteFile(path, content string) error {
	key, err := m.key(path)
	if err != nil {
		return err
	}
	m.files[key] = content
	return nil
}

func (m *memFS) Remove(path string) error {
	key, err := m.key(path)
	if err != nil {
		return err
	}
	if _, ok := m.files[key]; !ok {
		return &Error{Code: CodeMissingFile, Path: path, Message: "cannot delete missing file: " + path}
	}
	delete(m.files, key)
	return nil
}

func (m *memFS) Rename(oldPath, newPath string) error {
	oldKey, err := m.key(oldPath)
	if err != nil {
		return err
	}
	newKey, err := m.key(newPath)
	if err != nil {
		return err
	}
	content, ok := m.files[oldKey]
	if !ok {
		return &Error{Code: CodeMissingFile, Path: oldPath, Message: "cannot move missing file: " + oldPath}
	}
	if newKey != oldKey {
		m.files[newKey] = content
		delete(m.files, oldKey)
	}
	return nil
}

func (m *memFS) EnsureParent(string) error { return nil }
