package patch

import (
	"context"
	"strings"
	"testing"
)

func TestApplyUpdateWithContext(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: f.txt",
		"@@ -1,3 +1,3 @@",
		" x",
		"-y",
		"+Y",
		" z",
		"*** End Patch",
	}, "\n")

	files := map[string]string{"f.txt": "x\ny\nz\n"}
	updated, results, err := ApplyMemoryPatch(context.Background(), doc, files)
	if err != nil {
		t.Fatalf("ApplyMemoryPatch returned error: %v", err)
	}
	if got, want := updated["f.txt"], "x\nY\nz\n"; got != want {
		t.Fatalf("updated content = %q, want %q", got, want)
	}
	if len(results) != 1 || results[0].Status != "M" || results[0].Path != "f.txt" {
		t.Fatalf("unexpected results: %#v", results)
	}
	// The input map must stay untouched.
	if files["f.txt"] != "x\ny\nz\n" {
		t.Fatalf("input map mutated: %q", files["f.txt"])
	}
}

func TestApplyUpdatePreservesTrailingNewlineState(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: f.txt",
		"@@",
		"-b",
		"+B",
		"*** End Patch",
	}, "\n")

	withNewline, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{"f.txt": "a\nb\n"})
	if err != nil {
		t.Fatalf("ApplyMemoryPatch returned error: %v", err)
	}
	if got := withNewline["f.txt"]; got != "a\nB\n" {
		t.Fatalf("trailing newline lost: %q", got)
	}

	withoutNewline, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{"f.txt": "a\nb"})
	if err != nil {
		t.Fatalf("ApplyMemoryPatch returned error: %v", err)
	}
	if got := withoutNewline["f.txt"]; got != "a\nB" {
		t.Fatalf("trailing newline invented: %q", got)
	}
}

func TestApplyUpdateIdentityHunkLeavesFileByteIdentical(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: f.txt",
		"@@ -1,2 +1,2 @@",
		" a",
		" b",
		"*** End Patch",
	}, "\n")

	original := "a\nb\nc"
	updated, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{"f.txt": original})
	if err != nil {
		t.Fatalf("ApplyMemoryPatch returned error: %v", err)
	}
	if updated["f.txt"] != original {
		t.Fatalf("identity hunk changed the file: %q", updated["f.txt"])
	}
}

func TestApplyUpdateTwiceFailsOnceOriginalIsGone(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: f.txt",
		"@@",
		"-old",
		"+new",
		"*** End Patch",
	}, "\n")

	once, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{"f.txt": "old\n"})
	if err != nil {
		t.Fatalf("first application failed: %v", err)
	}
	if _, _, err := ApplyMemoryPatch(context.Background(), doc, once); err == nil {
		t.Fatalf("second application should fail once the original block is gone")
	}
}

func TestApplyUpdateHintFollowsLineDelta(t *testing.T) {
	t.Parallel()

	// "dup" appears twice. The second hunk's header points at the later
	// occurrence, which the first hunk shifts down by three lines; the
	// search hint must follow that drift or the earlier occurrence wins.
	original := strings.Join([]string{
		"h1", "h2", "h3", "h4", "h5", "h6", "dup", "m1", "m2", "dup", "t1",
	}, "\n") + "\n"

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: f.txt",
		"@@ -1,1 +1,4 @@",
		" h1",
		"+i1",
		"+i2",
		"+i3",
		"@@ -10,1 +13,1 @@",
		"-dup",
		"+DUP",
		"*** End Patch",
	}, "\n")

	updated, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{"f.txt": original})
	if err != nil {
		t.Fatalf("ApplyMemoryPatch returned error: %v", err)
	}
	want := strings.Join([]string{
		"h1", "i1", "i2", "i3", "h2", "h3", "h4", "h5", "h6", "dup", "m1", "m2", "DUP", "t1",
	}, "\n") + "\n"
	if updated["f.txt"] != want {
		t.Fatalf("hint did not follow the delta:\ngot  %q\nwant %q", updated["f.txt"], want)
	}
}

func TestApplyUpdateEmptyOriginalAppendsAtEOF(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: f.txt",
		"@@",
		"+tail",
		"*** End Patch",
	}, "\n")

	updated, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{"f.txt": "head\n"})
	if err != nil {
		t.Fatalf("ApplyMemoryPatch returned error: %v", err)
	}
	if got, want := updated["f.txt"], "head\ntail\n"; got != want {
		t.Fatalf("appended content = %q, want %q", got, want)
	}
}

func TestApplyUpdateMismatchFailsWithoutPartialWrite(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: f.txt",
		"@@ -1,1 +1,1 @@",
		"-a",
		"+A",
		"@@ -2,1 +2,1 @@",
		"-nope",
		"+NOPE",
		"*** End Patch",
	}, "\n")

	files := map[string]string{"f.txt": "a\nb\n"}
	_, _, err := ApplyMemoryPatch(context.Background(), doc, files)
	if err == nil {
		t.Fatalf("expected context-match failure")
	}
	var pe *Error
	if !asPatchError(err, &pe) || pe.Code != CodeHunkNotFound || pe.Path != "f.txt" {
		t.Fatalf("unexpected error: %#v", err)
	}
	// The first hunk only mutated the in-memory buffer; the store keeps the
	// original content.
	if files["f.txt"] != "a\nb\n" {
		t.Fatalf("store mutated despite failure: %q", files["f.txt"])
	}
}

func TestApplyUpdateMissingFile(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: ghost.txt",
		"@@",
		"-x",
		"*** End Patch",
	}, "\n")

	_, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{})
	var pe *Error
	if !asPatchError(err, &pe) || pe.Code != CodeMissingFile {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestApplyDeleteMissingFile(t *testing.T) {
	t.Parallel()

	doc := "*** Begin Patch\n*** Delete File: ghost.txt\n*** End Patch"
	_, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{"other.txt": "x"})
	var pe *Error
	if !asPatchError(err, &pe) || pe.Code != CodeMissingFile {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestApplyStopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Add File: first.txt",
		"+created",
		"*** Delete File: ghost.txt",
		"*** Add File: second.txt",
		"+never",
		"*** End Patch",
	}, "\n")

	operations, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	fsys := &memFS{files: map[string]string{}}
	if _, err := Apply(context.Background(), operations, fsys); err == nil {
		t.Fatalf("expected failure on the delete operation")
	}
	// Already-applied operations stay applied, later ones never run.
	if _, ok := fsys.files["first.txt"]; !ok {
		t.Fatalf("first add should remain applied")
	}
	if _, ok := fsys.files["second.txt"]; ok {
		t.Fatalf("operations after the failure must not run")
	}
}

func TestApplyMalformedHunkLineSurfacesAtApplyTime(t *testing.T) {
	t.Parallel()

	doc := strings.Join([]string{
		"*** Begin Patch",
		"*** Update File: f.txt",
		"@@",
		"xbad",
		"*** End Patch",
	}, "\n")

	_, _, err := ApplyMemoryPatch(context.Background(), doc, map[string]string{"f.txt": "a\n"})
	if err == nil || !strings.Contains(err.Error(), "unsupported hunk prefix") {
		t.Fatalf("unexpected error: %v", err)
	}
	var pe *Error
	if !asPatchError(err, &pe) || pe.Path != "f.txt" {
		t.Fatalf("error should carry the target path: %#v", err)
	}
}

func TestApplyHonorsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	operations := []Operation{Delete{Path: "f.txt"}}
	_, err := Apply(ctx, operations, &memFS{files: map[string]string{"f.txt": "x"}})
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyNilFilesystem(t *testing.T) {
	t.Parallel()

	if _, err := Apply(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for nil filesystem")
	}
}
