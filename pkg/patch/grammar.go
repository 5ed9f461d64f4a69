package patch

import (
	"regexp"
	"strconv"
	"strings"
)

// Literal markers of the patch grammar. Every top-level directive line
// starts with "*** "; the begin and end markers delimit the document.
const (
	BeginMarker      = "*** Begin Patch"
	EndMarker        = "*** End Patch"
	AddFilePrefix    = "*** Add File:"
	UpdateFilePrefix = "*** Update File:"
	DeleteFilePrefix = "*** Delete File:"
	MoveToPrefix     = "*** Move to:"
	EndOfFileMarker  = "*** End of File"
)

const (
	directivePrefix   = "*** "
	noNewlinePrefix   = "\\ "
	placeholderHeader = "@@"
)

// hunkHeaderRe recognizes "@@ -<orig>[,<n>] +<new>[,<m>] @@" headers. The
// new-file number is required by the grammar but unused by the applier.
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,\d+)? \+\d+(?:,\d+)? @@`)

// parseHunkHeader extracts the 1-based original-file start line from a hunk
// header. Headers that do not match the numeric form are accepted as opaque
// placeholders and yield no line-number hint.
func parseHunkHeader(header string) (int, bool) {
	match := hunkHeaderRe.FindStringSubmatch(strings.TrimSpace(header))
	if match == nil {
		return 0, false
	}
	start, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return start, true
}
