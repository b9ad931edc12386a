package models

import "time"

// FileRecord holds the path and content of one captured file
type FileRecord struct {
	Path      string `json:"path"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// Snapshot is the result of a single scan. Only Files is serialized.
type Snapshot struct {
	Files []FileRecord `json:"files"`
	Stats ScanStats    `json:"-"`
}

// SkipReason explains why a file was left out of a snapshot
type SkipReason string

const (
	SkipExtension  SkipReason = "extension"
	SkipSize       SkipReason = "size"
	SkipNotRegular SkipReason = "not_regular"
	SkipError      SkipReason = "error"
)

// ScanStats tracks what a scan visited
type ScanStats struct {
	Directories int
	Captured    int
	Skipped     map[SkipReason]int
	Duration    time.Duration
}

// NewSnapshot returns a snapshot whose Files marshals as [] rather than null.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Files: make([]FileRecord, 0),
		Stats: ScanStats{Skipped: make(map[SkipReason]int)},
	}
}

// TotalSkipped sums skipped files across all reasons
func (s ScanStats) TotalSkipped() int {
	total := 0
	for _, n := range s.Skipped {
		total += n
	}
	return total
}
