package services

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrPathOutsideRoot is returned for any request path that escapes, or
// attempts to escape, the allowed root directory.
var ErrPathOutsideRoot = errors.New("path outside allowed root")

// ContainsTraversal reports whether the raw request path, or its
// percent-decoded form, contains a literal ".." sequence. This check
// runs before any join or clean because the transport layer may
// normalize "../" segments away before application code sees them;
// an encoded token that survives normalization must still be caught.
func ContainsTraversal(rawPath string) bool {
	if strings.Contains(rawPath, "..") {
		return true
	}
	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		// Undecodable paths are treated as traversal attempts.
		return true
	}
	return strings.Contains(decoded, "..")
}

// ResolveWithinRoot joins rel to root, canonicalizes the result and
// verifies containment: the resolved path must equal the canonical
// root or have it as a strict path prefix. Callers must run
// ContainsTraversal on the raw request string first; this is the
// second layer of the defense.
func ResolveWithinRoot(root, rel string) (string, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root %s: %w", root, err)
	}
	resolved, err := filepath.Abs(filepath.Join(rootAbs, filepath.FromSlash(rel)))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", rel, err)
	}
	if resolved != rootAbs && !strings.HasPrefix(resolved, rootAbs+string(filepath.Separator)) {
		return "", ErrPathOutsideRoot
	}
	return resolved, nil
}
