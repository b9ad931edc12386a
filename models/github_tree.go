package models

// GitHubTreeEntryType is the object type of a git tree entry
type GitHubTreeEntryType string

const (
	GitHubTreeBlob   GitHubTreeEntryType = "blob"
	GitHubTreeTree   GitHubTreeEntryType = "tree"
	GitHubTreeCommit GitHubTreeEntryType = "commit"
)

// GitHubTreeEntry is one element of the "tree" array returned by
// GET /repos/{owner}/{repo}/git/trees/{tree_sha}.
type GitHubTreeEntry struct {
	Path string              `json:"path"`
	Mode string              `json:"mode"`
	Type GitHubTreeEntryType `json:"type"`
	SHA  string              `json:"sha"`
	// Size is absent for trees and submodules.
	Size *int64 `json:"size,omitempty"`
	URL  string `json:"url,omitempty"`
}

// GitHubTreeResponse is the body of the git trees endpoint
type GitHubTreeResponse struct {
	SHA       string            `json:"sha"`
	URL       string            `json:"url"`
	Tree      []GitHubTreeEntry `json:"tree"`
	Truncated bool              `json:"truncated"`
}
