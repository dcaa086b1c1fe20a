package vfs

import (
	"path"
	"strings"

	"github.com/viant/jsrepl/model/entry"
)

// NormalizePath anchors relative paths at root, collapses duplicate
// separators and dot segments, and strips trailing slashes except for root.
func NormalizePath(location string) string {
	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}
	return path.Clean(location)
}

// ParentPath returns the parent of a normalized path; root and single
// segment paths have root as parent.
func ParentPath(location string) string {
	if location == entry.RootPath {
		return entry.RootPath
	}
	idx := strings.LastIndex(location, "/")
	if idx <= 0 {
		return entry.RootPath
	}
	return location[:idx]
}
