package snapshot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/meysamhadeli/dirsnap/snapshot/contracts"
	"github.com/meysamhadeli/dirsnap/snapshot/models"
	"github.com/meysamhadeli/dirsnap/utils"
	"go.uber.org/zap"
)

// Options controls which files a Scanner captures.
type Options struct {
	Root        string
	Extensions  []string
	ExcludeDirs []string
	MaxFileSize int64
}

// DefaultOptions returns the documented defaults rooted at root.
func DefaultOptions(root string) Options {
	return Options{
		Root:        root,
		Extensions:  append([]string(nil), utils.DefaultExtensions...),
		ExcludeDirs: append([]string(nil), utils.DefaultExcludedDirs...),
		MaxFileSize: utils.DefaultMaxFileSize,
	}
}

// Scanner produces directory snapshots. It holds no mutable state, so one
// Scanner can serve concurrent scans.
type Scanner struct {
	options Options
	logger  *zap.Logger
}

// NewScanner initializes a Scanner. Empty option fields fall back to defaults.
func NewScanner(options Options, logger *zap.Logger) contracts.IScanner {
	if logger == nil {
		logger = zap.NewNop()
	}

	defaults := DefaultOptions(options.Root)
	if options.Root == "" {
		defaults.Root = "."
	}
	if len(options.Extensions) > 0 {
		defaults.Extensions = options.Extensions
	}
	if options.ExcludeDirs != nil {
		defaults.ExcludeDirs = options.ExcludeDirs
	}
	if options.MaxFileSize > 0 {
		defaults.MaxFileSize = options.MaxFileSize
	}
	defaults.Extensions = utils.NormalizeExtensions(defaults.Extensions)

	return &Scanner{
		options: defaults,
		logger:  logger.Named("scanner"),
	}
}

// Root returns the directory the scanner walks.
func (s *Scanner) Root() string {
	return s.options.Root
}

// Scan walks the root and captures every eligible file.
//
// A missing directory contributes nothing. A file that cannot be stat'ed or
// read is logged and skipped. Any other failure to list a directory aborts
// the scan and no partial result is returned.
func (s *Scanner) Scan() (*models.Snapshot, error) {
	start := time.Now()
	result := models.NewSnapshot()

	// Pending directories, relative to the root. "" is the root itself.
	pending := []string{""}

	for len(pending) > 0 {
		relDir := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		absDir := filepath.Join(s.options.Root, relDir)
		entries, err := os.ReadDir(absDir)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Debug("directory not found", zap.String("dir", absDir))
				continue
			}
			return nil, fmt.Errorf("failed to read directory: %s, error: %w", absDir, err)
		}
		result.Stats.Directories++

		for _, entry := range entries {
			relPath := filepath.Join(relDir, entry.Name())

			if entry.IsDir() {
				if utils.IsExcludedDir(entry.Name(), s.options.ExcludeDirs) {
					continue
				}
				pending = append(pending, relPath)
				continue
			}

			record, reason, err := s.captureFile(relPath)
			if err != nil {
				s.logger.Warn("skipping unreadable file",
					zap.String("path", filepath.ToSlash(relPath)),
					zap.Error(err))
			}
			if reason != "" {
				result.Stats.Skipped[reason]++
				continue
			}

			result.Files = append(result.Files, *record)
			result.Stats.Captured++
		}
	}

	result.Stats.Duration = time.Since(start)
	s.logger.Debug("scan complete",
		zap.String("root", s.options.Root),
		zap.Int("captured", result.Stats.Captured),
		zap.Int("skipped", result.Stats.TotalSkipped()),
		zap.Duration("duration", result.Stats.Duration))

	return result, nil
}

// captureFile applies the eligibility filter to one entry and reads it when
// it qualifies. A non-empty reason means the file was left out.
func (s *Scanner) captureFile(relPath string) (*models.FileRecord, models.SkipReason, error) {
	if !utils.HasAllowedExtension(relPath, s.options.Extensions) {
		return nil, models.SkipExtension, nil
	}

	absPath := filepath.Join(s.options.Root, relPath)

	// Stat follows symlinks so a link to an eligible file is captured.
	info, err := os.Stat(absPath)
	if err != nil {
		return nil, models.SkipError, fmt.Errorf("failed to get file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, models.SkipNotRegular, nil
	}
	if info.Size() >= s.options.MaxFileSize {
		return nil, models.SkipSize, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, models.SkipError, fmt.Errorf("failed to read file: %w", err)
	}
	// The file may have grown between stat and read.
	if int64(len(content)) >= s.options.MaxFileSize {
		return nil, models.SkipSize, nil
	}

	return &models.FileRecord{
		Path:      filepath.ToSlash(relPath),
		Content:   string(content),
		Timestamp: info.ModTime().UnixMilli(),
	}, "", nil
}
