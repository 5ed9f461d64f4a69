package patch

// findSequence locates needle as a contiguous block inside haystack and
// returns its start index. When a hint is supplied the scan starts there and
// wraps around to the positions before it, so blocks shifted by earlier
// edits are still found quickly while inaccurate headers degrade to a full
// scan. Matching is exact per line, including all whitespace.
//
// An empty needle means pure insertion: the result is the hint clamped into
// the valid range, or end-of-file when no hint is given.
func findSequence(haystack, needle []string, hint *int) (int, error) {
	if len(needle) == 0 {
		if hint != nil {
			return clamp(*hint, 0, len(haystack)), nil
		}
		return len(haystack), nil
	}
	maxStart := len(haystack) - len(needle)
	if maxStart < 0 {
		return 0, &Error{Code: CodeHunkNotFound, Message: "patch hunk longer than target file"}
	}
	if hint == nil {
		for pos := 0; pos <= maxStart; pos++ {
			if matchesAt(haystack, needle, pos) {
				return pos, nil
			}
		}
	} else {
		start := clamp(*hint, 0, maxStart)
		for pos := start; pos <= maxStart; pos++ {
			if matchesAt(haystack, needle, pos) {
				return pos, nil
			}
		}
		for pos := 0; pos < start; pos++ {
			if matchesAt(haystack, needle, pos) {
				return pos, nil
			}
		}
	}
	return 0, &Error{Code: CodeHunkNotFound, Message: "failed to match patch hunk context"}
}

func matchesAt(haystack, needle []string, pos int) bool {
	for i, want := range needle {
		if haystack[pos+i] != want {
			return false
		}
	}
	return true
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
