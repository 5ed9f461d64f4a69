package patch

import "strings"

// Hunk is one contiguous edit unit within an Update operation: an optional
// header carrying a line-number hint and a body of tagged lines. The header
// may be the synthetic "@@" placeholder when the document supplied none.
type Hunk struct {
	Header string
	Lines  []string
}

// OriginalStart returns the 1-based original-file line number carried by the
// hunk header. The second return is false for placeholder or malformed
// headers, which are accepted but yield no search hint.
func (h Hunk) OriginalStart() (int, bool) {
	return parseHunkHeader(h.Header)
}

// Decode splits the hunk body into the original block expected to exist
// contiguously in the target file and the replacement block to substitute
// for it. Either side may be empty (pure insertion or pure deletion).
func (h Hunk) Decode() (original, replacement []string, err error) {
	for _, raw := range h.Lines {
		if strings.HasPrefix(raw, noNewlinePrefix) {
			// "\ No newline at end of file" marker, dropped wherever it
			// appears.
			continue
		}
		if raw == "" {
			return nil, nil, invalidf("", "malformed hunk line")
		}
		content := raw[1:]
		switch raw[0] {
		case ' ':
			original = append(original, content)
			replacement = append(replacement, content)
		case '-':
			original = append(original, content)
		case '+':
			replacement = append(replacement, content)
		default:
			return nil, nil, invalidf("", "unsupported hunk prefix %q", string(raw[0]))
		}
	}
	return original, replacement, nil
}
