package sheets

import "strings"

// DriveFileID extracts the file ID from a drive share reference. It
// understands "open?id=..." URLs, "/file/d/<id>/..." path URLs, and bare
// file IDs. Returns an empty string when no ID can be derived.
func DriveFileID(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}

	if idx := strings.Index(ref, "id="); idx >= 0 {
		return trimQueryTail(ref[idx+len("id="):])
	}
	if strings.Contains(ref, "/") {
		// Share URLs look like [https://]drive.google.com/file/d/<id>/view;
		// the ID always follows the "d" segment.
		parts := strings.Split(ref, "/")
		for i, part := range parts {
			if part == "d" && i+1 < len(parts) {
				return trimQueryTail(parts[i+1])
			}
		}
		return ""
	}
	return ref
}

func trimQueryTail(s string) string {
	if i := strings.IndexAny(s, "&?"); i >= 0 {
		s = s[:i]
	}
	return s
}
