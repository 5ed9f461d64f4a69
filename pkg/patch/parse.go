package patch

import "strings"

// normalizeLines converts any line-ending style to "\n", splits the text and
// drops the single trailing empty element produced by a final newline. A
// leading byte-order mark on the first line is stripped.
func normalizeLines(text string) []string {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > 0 {
		lines[0] = strings.TrimLeft(lines[0], "\ufeff")
	}
	return lines
}

// Parse converts the textual representation of a patch document into the
// ordered operations it describes. The document must open with the begin
// marker and close with the end marker; everything between is dispatched on
// the directive prefixes of the grammar.
func Parse(text string) ([]Operation, error) {
	lines := normalizeLines(text)
	idx := 0
	for idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
		idx++
	}
	if idx >= len(lines) || strings.TrimSpace(lines[idx]) != BeginMarker {
		return nil, invalidf("", "patch must start with %q", BeginMarker)
	}
	idx++

	var operations []Operation
	for idx < len(lines) {
		line := lines[idx]
		if strings.TrimSpace(line) == "" {
			idx++
			continue
		}
		if strings.TrimSpace(line) == EndMarker {
			return operations, nil
		}
		switch {
		case strings.HasPrefix(line, AddFilePrefix):
			op, next, err := parseAdd(lines, idx)
			if err != nil {
				return nil, err
			}
			operations = append(operations, op)
			idx = next
		case strings.HasPrefix(line, DeleteFilePrefix):
			path := strings.TrimSpace(line[len(DeleteFilePrefix):])
			if path == "" {
				return nil, invalidf("", "missing path for delete operation")
			}
			operations = append(operations, Delete{Path: path})
			idx++
		case strings.HasPrefix(line, UpdateFilePrefix):
			op, next, err := parseUpdate(lines, idx)
			if err != nil {
				return nil, err
			}
			operations = append(operations, op)
			idx = next
		default:
			return nil, invalidf("", "unsupported patch directive: %s", line)
		}
	}
	return nil, invalidf("", "patch missing %q", EndMarker)
}

// parseAdd consumes an add-file directive and its '+'-prefixed payload,
// returning the operation and the index of the first unconsumed line.
func parseAdd(lines []string, idx int) (Add, int, error) {
	path := strings.TrimSpace(lines[idx][len(AddFilePrefix):])
	idx++
	var payload []string
	for idx < len(lines) {
		row := lines[idx]
		if strings.HasPrefix(row, directivePrefix) {
			break
		}
		if !strings.HasPrefix(row, "+") {
			return Add{}, 0, invalidf(path, "added file lines must start with '+'")
		}
		payload = append(payload, row[1:])
		idx++
	}
	if path == "" {
		return Add{}, 0, invalidf("", "missing path for add operation")
	}
	return Add{Path: path, Lines: payload}, idx, nil
}

// parseUpdate consumes an update-file directive, an optional move-to
// directive and the hunk body that follows, splitting the body on "@@"
// header lines. Body lines seen before any header are collected under a
// synthetic placeholder header.
func parseUpdate(lines []string, idx int) (Update, int, error) {
	path := strings.TrimSpace(lines[idx][len(UpdateFilePrefix):])
	if path == "" {
		return Update{}, 0, invalidf("", "missing path for update operation")
	}
	idx++

	op := Update{Path: path}
	if idx < len(lines) && strings.HasPrefix(lines[idx], MoveToPrefix) {
		op.MovePath = strings.TrimSpace(lines[idx][len(MoveToPrefix):])
		idx++
	}

	var (
		header     string
		headerSeen bool
		body       []string
		consumed   bool
	)
	for idx < len(lines) {
		row := lines[idx]
		if strings.TrimSpace(row) == EndOfFileMarker {
			// End-of-hunk sentinel: consumed and discarded without
			// altering state.
			idx++
			continue
		}
		if strings.HasPrefix(row, directivePrefix) {
			break
		}
		consumed = true
		if strings.HasPrefix(row, "@@") {
			if headerSeen {
				op.Hunks = append(op.Hunks, Hunk{Header: header, Lines: body})
			}
			header = row
			headerSeen = true
			body = nil
		} else {
			if !headerSeen {
				header = placeholderHeader
				headerSeen = true
			}
			body = append(body, row)
		}
		idx++
	}
	if headerSeen {
		op.Hunks = append(op.Hunks, Hunk{Header: header, Lines: body})
	}
	if len(op.Hunks) == 0 {
		if !consumed {
			return Update{}, 0, invalidf(path, "update %q missing hunk data", path)
		}
		op.Hunks = append(op.Hunks, Hunk{Header: placeholderHeader})
	}
	return op, idx, nil
}
