package services

import "strings"

// ResolveMediaURL turns a stored media reference into an absolute URL by
// prefixing origin. Absolute and protocol-relative references are returned
// unchanged, as are empty ones.
func ResolveMediaURL(origin, ref string) string {
	if ref == "" || isAbsoluteURL(ref) {
		return ref
	}
	origin = strings.TrimRight(origin, "/")
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return origin + ref
}

func isAbsoluteURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") ||
		strings.HasPrefix(ref, "https://") ||
		strings.HasPrefix(ref, "//")
}
