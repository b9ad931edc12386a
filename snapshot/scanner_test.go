package snapshot

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/meysamhadeli/dirsnap/snapshot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file under root, making parent directories as needed.
func writeFile(t testing.TB, root, relPath string, size int) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(relPath))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a", size)), 0644))
}

func recordsByPath(snapshot *models.Snapshot) map[string]models.FileRecord {
	byPath := make(map[string]models.FileRecord, len(snapshot.Files))
	for _, record := range snapshot.Files {
		byPath[record.Path] = record
	}
	return byPath
}

func TestScanner_MixedTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/page.tsx", 2048)
	writeFile(t, root, "node_modules/lib.js", 10)
	writeFile(t, root, "image.png", 10)

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)

	require.Len(t, snapshot.Files, 1)
	assert.Equal(t, "src/page.tsx", snapshot.Files[0].Path)
	assert.Len(t, snapshot.Files[0].Content, 2048)
	assert.Equal(t, 1, snapshot.Stats.Skipped[models.SkipExtension])
}

func TestScanner_SizeCutoff(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.json", 150000)
	writeFile(t, root, "edge.json", 100000)
	writeFile(t, root, "under.json", 99999)

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)

	byPath := recordsByPath(snapshot)
	assert.NotContains(t, byPath, "big.json")
	assert.NotContains(t, byPath, "edge.json", "cutoff is exclusive")
	assert.Contains(t, byPath, "under.json")
	assert.Equal(t, 2, snapshot.Stats.Skipped[models.SkipSize])
}

func TestScanner_ExcludedDirsAtAnyDepth(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "app/index.ts", 10)
	writeFile(t, root, "app/.git/config.json", 10)
	writeFile(t, root, "packages/ui/node_modules/react/index.js", 10)
	writeFile(t, root, ".next/cache/build.json", 10)
	writeFile(t, root, "packages/ui/button.jsx", 10)

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)

	byPath := recordsByPath(snapshot)
	assert.Len(t, byPath, 2)
	assert.Contains(t, byPath, "app/index.ts")
	assert.Contains(t, byPath, "packages/ui/button.jsx")
}

func TestScanner_ExtensionIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "README.MD", 10)
	writeFile(t, root, "Styles.Css", 10)
	writeFile(t, root, "Makefile", 10)
	writeFile(t, root, "notes.txt", 10)

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)

	byPath := recordsByPath(snapshot)
	assert.Len(t, byPath, 2)
	assert.Contains(t, byPath, "README.MD")
	assert.Contains(t, byPath, "Styles.Css")
}

func TestScanner_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)
	require.NotNil(t, snapshot.Files)
	assert.Empty(t, snapshot.Files)
}

func TestScanner_RootIsAFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain.ts", 10)

	snapshot, err := NewScanner(DefaultOptions(filepath.Join(dir, "plain.ts")), nil).Scan()
	assert.Error(t, err)
	assert.Nil(t, snapshot)
}

func TestScanner_VanishedFileIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	root := t.TempDir()
	writeFile(t, root, "keep.ts", 10)

	// A dangling link is listed but fails to stat, the same as a file that
	// disappears between listing and reading.
	require.NoError(t, os.Symlink(filepath.Join(root, "gone.ts"), filepath.Join(root, "vanished.ts")))

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)

	byPath := recordsByPath(snapshot)
	assert.Len(t, byPath, 1)
	assert.Contains(t, byPath, "keep.ts")
	assert.Equal(t, 1, snapshot.Stats.Skipped[models.SkipError])
}

func TestScanner_SymlinkToDirectoryIsNotRegular(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need elevated privileges on windows")
	}
	root := t.TempDir()
	writeFile(t, root, "real/a.ts", 10)
	require.NoError(t, os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "alias.js")))

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)

	byPath := recordsByPath(snapshot)
	assert.Len(t, byPath, 1)
	assert.Contains(t, byPath, "real/a.ts")
	assert.Equal(t, 1, snapshot.Stats.Skipped[models.SkipNotRegular])
}

func TestScanner_RecordFields(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "docs", "guide.md")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("# héllo\n"), 0644))

	modTime := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, modTime, modTime))

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)
	require.Len(t, snapshot.Files, 1)

	record := snapshot.Files[0]
	assert.Equal(t, "docs/guide.md", record.Path)
	assert.Equal(t, "# héllo\n", record.Content)
	assert.Equal(t, modTime.UnixMilli(), record.Timestamp)
}

func TestScanner_UniquePaths(t *testing.T) {
	root := t.TempDir()
	for _, p := range []string{"a.ts", "b/a.ts", "b/c/a.ts", "d/a.ts"} {
		writeFile(t, root, p, 5)
	}

	snapshot, err := NewScanner(DefaultOptions(root), nil).Scan()
	require.NoError(t, err)

	assert.Len(t, snapshot.Files, 4)
	assert.Len(t, recordsByPath(snapshot), 4)
	assert.Equal(t, 4, snapshot.Stats.Directories)
}

func TestScanner_CustomOptions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", 10)
	writeFile(t, root, "vendor/dep.go", 10)
	writeFile(t, root, "node_modules/x.go", 10)
	writeFile(t, root, "app.ts", 10)
	writeFile(t, root, "large.go", 600)

	scanner := NewScanner(Options{
		Root:        root,
		Extensions:  []string{"GO", ""},
		ExcludeDirs: []string{"vendor"},
		MaxFileSize: 512,
	}, nil)

	snapshot, err := scanner.Scan()
	require.NoError(t, err)

	byPath := recordsByPath(snapshot)
	assert.Len(t, byPath, 2)
	assert.Contains(t, byPath, "main.go")
	assert.Contains(t, byPath, "node_modules/x.go")
}

func TestNewScanner_Defaults(t *testing.T) {
	scanner := NewScanner(Options{}, nil).(*Scanner)

	assert.Equal(t, ".", scanner.Root())
	assert.Equal(t, int64(100000), scanner.options.MaxFileSize)
	assert.ElementsMatch(t, []string{".git", ".next", "node_modules"}, scanner.options.ExcludeDirs)
	assert.Contains(t, scanner.options.Extensions, ".tsx")
}
