package utils

import (
	"path/filepath"
	"strings"
)

// DefaultMaxFileSize is the exclusive upper bound, in bytes, for captured files.
const DefaultMaxFileSize int64 = 100000

// DefaultExcludedDirs are never descended into: version control metadata,
// the build output cache and the dependency cache.
var DefaultExcludedDirs = []string{
	".git",
	".next",
	"node_modules",
}

// DefaultExtensions is the allow-list of text formats served to the viewer.
var DefaultExtensions = []string{
	".js",
	".jsx",
	".ts",
	".tsx",
	".css",
	".json",
	".md",
	".html",
}

// NormalizeExtensions lower-cases extensions, adds a missing leading dot and
// drops blanks and duplicates.
func NormalizeExtensions(extensions []string) []string {
	seen := make(map[string]struct{}, len(extensions))
	normalized := make([]string, 0, len(extensions))

	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" || ext == "." {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, ok := seen[ext]; ok {
			continue
		}
		seen[ext] = struct{}{}
		normalized = append(normalized, ext)
	}

	return normalized
}

// IsExcludedDir reports whether a directory name is on the exclusion list.
// Matching is on the entry name only, so an excluded name is skipped at any depth.
func IsExcludedDir(name string, excluded []string) bool {
	for _, dir := range excluded {
		if name == dir {
			return true
		}
	}
	return false
}

// HasAllowedExtension checks the file extension case-insensitively against a
// normalized allow-list.
func HasAllowedExtension(name string, allowed []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, candidate := range allowed {
		if ext == candidate {
			return true
		}
	}
	return false
}
