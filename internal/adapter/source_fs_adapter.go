// Package adapter contains the filesystem and persistence adapters for the hazard CLI.
package adapter

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	m "github.com/mouse-blink/hazard/internal/model"
)

// ErrNotText is returned when a file is not valid UTF-8 text.
var ErrNotText = errors.New("file is not valid UTF-8 text")

// skippedDirs are never descended into during recursive walks.
var skippedDirs = map[string]struct{}{
	".git":         {},
	"__pycache__":  {},
	"node_modules": {},
	".venv":        {},
	"venv":         {},
}

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning user projects, so workflow logic can be tested
// without touching the disk.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Get resolves path patterns into the source files to scan.
	Get(roots []m.Path, opts GetOptions) ([]m.Source, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation should limit itself to the root directory (no sub-dirs).
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// LoadLines reads a text file into raw lines. It never panics or returns
	// a bare error; failures are carried in the result.
	LoadLines(path m.Path) LoadResult

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(path m.Path) (os.FileInfo, error)

	// WriteFile writes content to a file with the given permissions.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error
}

// GetOptions filters the files returned by Get.
type GetOptions struct {
	// Extensions limits files by suffix, e.g. ".py". Empty accepts every file.
	Extensions []string
	// Exclude holds regular expressions matched against absolute paths.
	Exclude []string
}

// LoadResult is the outcome of loading a file: either Lines or Err is meaningful.
type LoadResult struct {
	Path  m.Path
	Lines []string
	Err   error
}

// OK reports whether the file was loaded.
func (r LoadResult) OK() bool {
	return r.Err == nil
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type directly into the
// domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects source files for the provided roots. A trailing "/..." makes a
// root recursive. Files are returned in walk order without duplicates.
func (a *LocalSourceFSAdapter) Get(roots []m.Path, opts GetOptions) ([]m.Source, error) {
	if len(roots) == 0 {
		return []m.Source{}, nil
	}

	exclude, err := compileExcludes(opts.Exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	sources := []m.Source{}

	add := func(path string) error {
		source, ok, err := a.processFilePath(path, opts.Extensions, exclude)
		if err != nil || !ok {
			return err
		}

		if _, exists := seen[string(source.Origin.Path)]; exists {
			return nil
		}

		seen[string(source.Origin.Path)] = struct{}{}
		sources = append(sources, source)

		return nil
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := add(rootPath); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	return sources, nil
}

// Walk iterates over files under root, optionally descending into subdirectories.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive {
				return filepath.SkipDir
			}

			if _, skip := skippedDirs[info.Name()]; skip {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// LoadLines splits the file after every newline, keeping the newline in the
// raw line. A trailing newline does not produce an extra empty line.
func (a *LocalSourceFSAdapter) LoadLines(path m.Path) LoadResult {
	content, err := a.ReadFile(path)
	if err != nil {
		return LoadResult{Path: path, Err: fmt.Errorf("load %s: %w", path, err)}
	}

	if !utf8.Valid(content) {
		return LoadResult{Path: path, Err: fmt.Errorf("load %s: %w", path, ErrNotText)}
	}

	return LoadResult{Path: path, Lines: splitLines(string(content))}
}

// HashFile returns the SHA-256 hash of the file at the provided path.
func (a *LocalSourceFSAdapter) HashFile(path m.Path) (string, error) {
	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

func splitLines(content string) []string {
	if content == "" {
		return []string{}
	}

	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		out = append(out, re)
	}

	return out, nil
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if rootStr == "..." {
		return ".", true
	}

	if len(rootStr) >= 4 && rootStr[len(rootStr)-4:] == "/..." {
		return rootStr[:len(rootStr)-4], true
	}

	return rootStr, false
}

func hasExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}

	for _, ext := range extensions {
		if strings.EqualFold(filepath.Ext(path), ext) {
			return true
		}
	}

	return false
}

func (a *LocalSourceFSAdapter) processFilePath(path string, extensions []string, exclude []*regexp.Regexp) (m.Source, bool, error) {
	if !hasExtension(path, extensions) {
		return m.Source{}, false, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return m.Source{}, false, err
	}

	for _, re := range exclude {
		if re.MatchString(absPath) {
			return m.Source{}, false, nil
		}
	}

	hash, err := a.HashFile(m.Path(absPath))
	if err != nil {
		return m.Source{}, false, fmt.Errorf("hash error for %s: %w", absPath, err)
	}

	return m.Source{Origin: &m.File{Path: m.Path(absPath), Hash: hash}}, true, nil
}
