package patch

import (
	"context"
	"strings"
)

// EntryKind classifies what a path refers to inside an FS.
type EntryKind int

const (
	EntryMissing EntryKind = iota
	EntryFile
	EntryOther
)

// FS is the filesystem surface the applier needs. Paths are passed through
// exactly as they appear in the patch document; implementations resolve them
// against their own root.
type FS interface {
	Kind(path string) (EntryKind, error)
	ReadFile(path string) (string, error)
	WriteFile(path, content string) error
	Remove(path string) error
	Rename(oldPath, newPath string) error
	EnsureParent(path string) error
}

// Apply executes operations in document order against fsys. The run stops at
// the first failure; operations already applied stay applied — there is no
// rollback.
func Apply(ctx context.Context, operations []Operation, fsys FS) ([]Result, error) {
	if fsys == nil {
		return nil, &Error{Message: "nil filesystem"}
	}
	var results []Result
	for _, op := range operations {
		if err := ctx.Err(); err != nil {
			return nil, &Error{Message: err.Error()}
		}
		switch op := op.(type) {
		case Add:
			if err := applyAdd(fsys, op); err != nil {
				return nil, err
			}
			results = append(results, Result{Status: "A", Path: op.Path})
		case Delete:
			if err := applyDelete(fsys, op); err != nil {
				return nil, err
			}
			results = append(results, Result{Status: "D", Path: op.Path})
		case Update:
			if err := applyUpdate(fsys, op); err != nil {
				return nil, err
			}
			path := op.Path
			if move := strings.TrimSpace(op.MovePath); move != "" {
				path = move
			}
			results = append(results, Result{Status: "M", Path: path})
		default:
			return nil, invalidf(op.TargetPath(), "unsupported patch operation for %s", op.TargetPath())
		}
	}
	return results, nil
}

func applyAdd(fsys FS, op Add) error {
	if err := fsys.EnsureParent(op.Path); err != nil {
		return err
	}
	content := strings.Join(op.Lines, "\n")
	if len(op.Lines) > 0 {
		content += "\n"
	}
	return fsys.WriteFile(op.Path, content)
}

func applyDelete(fsys FS, op Delete) error {
	kind, err := fsys.Kind(op.Path)
	if err != nil {
		return err
	}
	switch kind {
	case EntryMissing:
		return &Error{Code: CodeMissingFile, Path: op.Path, Message: "cannot delete missing file: " + op.Path}
	case EntryOther:
		return invalidf(op.Path, "cannot delete non-file path: %s", op.Path)
	}
	return fsys.Remove(op.Path)
}

// applyUpdate reads the target once, applies every hunk against the
// in-memory buffer while threading the running line-offset delta forward,
// writes the result back once, and finally performs the optional rename.
// Nothing reaches the filesystem unless all hunks matched.
func applyUpdate(fsys FS, op Update) error {
	kind, err := fsys.Kind(op.Path)
	if err != nil {
		return err
	}
	if kind == EntryMissing {
		return &Error{Code: CodeMissingFile, Path: op.Path, Message: "cannot update missing file: " + op.Path}
	}
	text, err := fsys.ReadFile(op.Path)
	if err != nil {
		return err
	}
	buffer := newFileBuffer(text)

	lineDelta := 0
	for _, hunk := range op.Hunks {
		original, replacement, err := hunk.Decode()
		if err != nil {
			return withPath(err, op.Path)
		}
		var hint *int
		start, hasStart := hunk.OriginalStart()
		if hasStart {
			offset := start - 1 + lineDelta
			if offset < 0 {
				offset = 0
			}
			hint = &offset
		}
		index, err := findSequence(buffer.lines, original, hint)
		if err != nil {
			return withPath(err, op.Path)
		}
		buffer.lines = splice(buffer.lines, index, len(original), replacement)
		if hasStart {
			// Hunks without a parseable header do not perturb the delta.
			lineDelta += len(replacement) - len(original)
		}
	}

	if err := fsys.WriteFile(op.Path, buffer.render()); err != nil {
		return err
	}
	if move := strings.TrimSpace(op.MovePath); move != "" {
		// A failed rename leaves the rewritten content at the old path; the
		// rename is not transactional.
		if err := fsys.EnsureParent(move); err != nil {
			return err
		}
		if err := fsys.Rename(op.Path, move); err != nil {
			return err
		}
	}
	return nil
}

// fileBuffer holds one file's lines while hunks are applied, plus whether
// the original text ended with a trailing newline.
type fileBuffer struct {
	lines           []string
	trailingNewline bool
}

func newFileBuffer(text string) *fileBuffer {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	trailing := strings.HasSuffix(normalized, "\n")
	var lines []string
	if normalized != "" {
		lines = strings.Split(normalized, "\n")
		if trailing {
			lines = lines[:len(lines)-1]
		}
	}
	return &fileBuffer{lines: lines, trailingNewline: trailing}
}

// render rejoins the lines, preserving the original trailing-newline state.
// An empty result still gets a trailing newline to match the convention of
// a non-empty original.
func (b *fileBuffer) render() string {
	text := strings.Join(b.lines, "\n")
	if b.trailingNewline || len(b.lines) == 0 {
		text += "\n"
	}
	return text
}

func withPath(err error, path string) error {
	if pe, ok := err.(*Error); ok && pe.Path == "" {
		pe.Path = path
	}
	return err
}

func splice[T any](input []T, index, deleteCount int, replacement []T) []T {
	if index < 0 {
		index = 0
	}
	if index > len(input) {
		index = len(input)
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	end := index + deleteCount
	if end > len(input) {
		end = len(input)
	}
	result := append([]T{}, input[:index]...)
	result = append(result, replacement...)
	result = append(result, input[end:]...)
	return result
}
