package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/hazard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.py"), "print('hi')\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.py"), "x = 1\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.py")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "main.py")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files but skips vendored dirs", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.py"), "print('hi')\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.py")
		writeTestFile(t, child, "x = 1\n")

		cacheDir := filepath.Join(root, "__pycache__")
		mustMkdir(t, cacheDir)
		cached := filepath.Join(cacheDir, "main.py")
		writeTestFile(t, cached, "eval(x)\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child), "Walk() did not visit nested file when recursive")
		assert.False(t, containsPath(visited, cached), "Walk() descended into __pycache__")
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.py")
	content := "import os\n" + "os.system(cmd)\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, content, string(got))
}

func TestLocalSourceFSAdapter_LoadLines(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	root := t.TempDir()

	t.Run("keeps raw lines with newlines", func(t *testing.T) {
		path := filepath.Join(root, "a.py")
		writeTestFile(t, path, "a = 1\n  b = a / 0\nlast")

		res := adapter.LoadLines(m.Path(path))
		require.True(t, res.OK())

		assert.Equal(t, m.Path(path), res.Path)
		assert.Equal(t, []string{"a = 1\n", "  b = a / 0\n", "last"}, res.Lines)
	})

	t.Run("trailing newline adds no empty line", func(t *testing.T) {
		path := filepath.Join(root, "b.py")
		writeTestFile(t, path, "x\n")

		res := adapter.LoadLines(m.Path(path))
		require.True(t, res.OK())
		assert.Equal(t, []string{"x\n"}, res.Lines)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(root, "empty.py")
		writeTestFile(t, path, "")

		res := adapter.LoadLines(m.Path(path))
		require.True(t, res.OK())
		assert.Empty(t, res.Lines)
	})

	t.Run("missing file is a failed result", func(t *testing.T) {
		res := adapter.LoadLines(m.Path(filepath.Join(root, "missing.py")))

		assert.False(t, res.OK())
		assert.Empty(t, res.Lines)
		assert.True(t, errors.Is(res.Err, os.ErrNotExist))
	})

	t.Run("binary file is a failed result", func(t *testing.T) {
		path := filepath.Join(root, "blob.py")
		writeTestBytes(t, path, []byte{0xff, 0xfe, 0x00, 0x41})

		res := adapter.LoadLines(m.Path(path))

		assert.False(t, res.OK())
		assert.ErrorIs(t, res.Err, ErrNotText)
	})
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.py")
	content := []byte("eval(x)\n")
	writeTestBytes(t, path, content)

	hash, err := adapter.HashFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, hashBytes(content), hash)

	_, err = adapter.HashFile(m.Path(filepath.Join(root, "missing.py")))
	assert.Error(t, err)
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "main.py")
	writeTestFile(t, path, "x = 1\n")

	info, err := adapter.FileInfo(m.Path(path))
	require.NoError(t, err)

	assert.False(t, info.IsDir(), "FileInfo() reported file as directory")

	dirInfo, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir(), "FileInfo() reported directory as file")
}

func TestLocalSourceFSAdapter_WriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, adapter.WriteFile(m.Path(path), []byte("report"), 0o600))

	assert.Equal(t, []byte("report"), readFileBytes(t, path))
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("no roots", func(t *testing.T) {
		sources, err := adapter.Get(nil, GetOptions{})
		require.NoError(t, err)
		assert.Empty(t, sources)
	})

	t.Run("single file root", func(t *testing.T) {
		root := t.TempDir()
		path := filepath.Join(root, "app.py")
		copyExampleFile(t, examplePath(t, "basic", "app.py"), path)

		sources, err := adapter.Get([]m.Path{m.Path(path)}, GetOptions{Extensions: []string{".py"}})
		require.NoError(t, err)
		require.Len(t, sources, 1)

		assertSource(t, &sources[0], path, readFileBytes(t, path))
	})

	t.Run("non recursive directory filters by extension", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "app.py"), "eval(x)\n")
		writeTestFile(t, filepath.Join(root, "notes.txt"), "eval(x)\n")
		mustMkdir(t, filepath.Join(root, "pkg"))
		writeTestFile(t, filepath.Join(root, "pkg", "mod.py"), "exec(x)\n")

		sources, err := adapter.Get([]m.Path{m.Path(root)}, GetOptions{Extensions: []string{".py"}})
		require.NoError(t, err)

		require.Len(t, sources, 1)
		assert.Equal(t, m.Path(filepath.Join(root, "app.py")), sources[0].Origin.Path)
	})

	t.Run("recursive pattern and dedupe across roots", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "app.py"), "eval(x)\n")
		mustMkdir(t, filepath.Join(root, "pkg"))
		nested := filepath.Join(root, "pkg", "mod.py")
		writeTestFile(t, nested, "exec(x)\n")

		sources, err := adapter.Get(
			[]m.Path{m.Path(root + "/..."), m.Path(nested)},
			GetOptions{Extensions: []string{".py"}},
		)
		require.NoError(t, err)

		require.Len(t, sources, 2)
		assert.NotNil(t, findSourceByOrigin(sources, nested))
	})

	t.Run("exclude patterns", func(t *testing.T) {
		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "app.py"), "eval(x)\n")
		writeTestFile(t, filepath.Join(root, "test_app.py"), "eval(x)\n")

		sources, err := adapter.Get([]m.Path{m.Path(root)}, GetOptions{Exclude: []string{`test_[^/]*\.py$`}})
		require.NoError(t, err)

		require.Len(t, sources, 1)
		assert.Equal(t, "app.py", filepath.Base(string(sources[0].Origin.Path)))
	})

	t.Run("invalid exclude pattern", func(t *testing.T) {
		_, err := adapter.Get([]m.Path{m.Path(t.TempDir())}, GetOptions{Exclude: []string{"("}})
		assert.Error(t, err)
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := adapter.Get([]m.Path{m.Path(filepath.Join(t.TempDir(), "nope"))}, GetOptions{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root path error")
	})
}

func TestParseRootPath(t *testing.T) {
	tests := []struct {
		in        string
		path      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"./pkg/...", "./pkg", true},
		{"./pkg", "./pkg", false},
		{"", "", false},
	}

	for _, tt := range tests {
		path, recursive := parseRootPath(tt.in)
		assert.Equal(t, tt.path, path, tt.in)
		assert.Equal(t, tt.recursive, recursive, tt.in)
	}
}

func TestHasExtension(t *testing.T) {
	assert.True(t, hasExtension("a.py", nil))
	assert.True(t, hasExtension("a.PY", []string{".py"}))
	assert.False(t, hasExtension("a.txt", []string{".py", ".pyw"}))
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}

func findSourceByOrigin(sources []m.Source, origin string) *m.Source {
	for i := range sources {
		if sources[i].Origin != nil && string(sources[i].Origin.Path) == origin {
			return &sources[i]
		}
	}

	return nil
}

func assertSource(t *testing.T, source *m.Source, originPath string, originContent []byte) {
	t.Helper()

	if source == nil {
		require.Fail(t, "source is nil")
	}

	if source.Origin == nil {
		require.Fail(t, "Origin is nil")
	}

	assert.Equal(t, m.Path(originPath), source.Origin.Path)
	assert.Equal(t, hashBytes(originContent), source.Origin.Hash)
}

func hashBytes(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}

func examplePath(t *testing.T, elem ...string) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)

	repoRoot := filepath.Clean(filepath.Join(wd, "..", ".."))
	parts := append([]string{repoRoot, "examples"}, elem...)

	return filepath.Join(parts...)
}

func copyExampleFile(t *testing.T, src, dst string) {
	t.Helper()
	content := readFileBytes(t, src)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))
	require.NoError(t, os.WriteFile(dst, content, 0o644))
}

func readFileBytes(t *testing.T, path string) []byte {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	return content
}
