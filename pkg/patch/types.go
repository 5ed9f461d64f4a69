package patch

// Operation is one file-level instruction from a patch document. The set of
// implementations is closed: Add, Delete and Update.
//
// The exported fields make it possible to inspect the parsed structure when
// building tooling around the parser.
type Operation interface {
	// TargetPath returns the path the operation acts on.
	TargetPath() string

	isOperation()
}

// Add creates or overwrites a file with verbatim content.
type Add struct {
	Path string
	// Lines hold the payload with the leading '+' already stripped.
	Lines []string
}

// Delete removes an existing regular file. It carries no payload.
type Delete struct {
	Path string
}

// Update edits an existing file in place and optionally renames it
// afterwards.
type Update struct {
	Path     string
	MovePath string
	Hunks    []Hunk
}

// TargetPath implements Operation.
func (a Add) TargetPath() string { return a.Path }

// TargetPath implements Operation.
func (d Delete) TargetPath() string { return d.Path }

// TargetPath implements Operation.
func (u Update) TargetPath() string { return u.Path }

func (Add) isOperation()    {}
func (Delete) isOperation() {}
func (Update) isOperation() {}

// Result describes the outcome for a single file when applying a patch.
// Status uses git-style letters: "A" added, "M" modified, "D" deleted.
type Result struct {
	Status string
	Path   string
}
