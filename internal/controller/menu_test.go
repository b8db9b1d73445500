package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	m "github.com/mouse-blink/hazard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenu_ScanThenExit(t *testing.T) {
	var out bytes.Buffer

	var scanned []m.Path

	menu := NewMenu(strings.NewReader("1\napp.py\n2\n"), &out)
	err := menu.Run(func(path m.Path) error {
		scanned = append(scanned, path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []m.Path{"app.py"}, scanned)
	assert.Contains(t, out.String(), "Security Code Scanner\n1. Scan a single file\n2. Exit\n")
	assert.Contains(t, out.String(), "Enter the path to the Python file: ")
	assert.True(t, strings.HasSuffix(out.String(), "Exiting the scanner. Goodbye!\n"))
}

func TestMenu_InvalidChoice(t *testing.T) {
	var out bytes.Buffer

	menu := NewMenu(strings.NewReader("7\n2\n"), &out)
	require.NoError(t, menu.Run(func(m.Path) error { return nil }))

	assert.Contains(t, out.String(), "Invalid choice. Please try again.\n")
}

func TestMenu_InvalidPath(t *testing.T) {
	var out bytes.Buffer

	menu := NewMenu(strings.NewReader("1\nnope.py\n2\n"), &out)
	err := menu.Run(func(path m.Path) error {
		return fmt.Errorf("stat %s: %w", path, os.ErrNotExist)
	})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Invalid file path. Please try again.\n")
}

func TestMenu_OtherScanError(t *testing.T) {
	var out bytes.Buffer

	menu := NewMenu(strings.NewReader("1\napp.py\n2\n"), &out)
	require.NoError(t, menu.Run(func(m.Path) error { return errors.New("boom") }))

	assert.Contains(t, out.String(), "Error: boom\n")
}

func TestMenu_EndOfInput(t *testing.T) {
	var out bytes.Buffer

	menu := NewMenu(strings.NewReader(""), &out)
	require.NoError(t, menu.Run(func(m.Path) error {
		t.Fatal("scan should not be called")
		return nil
	}))

	assert.Contains(t, out.String(), "Enter your choice (1/2): ")
}

func TestMenu_LastAnswerWithoutNewline(t *testing.T) {
	var out bytes.Buffer

	menu := NewMenu(strings.NewReader("1\n  app.py  "), &out)

	var scanned m.Path

	require.NoError(t, menu.Run(func(path m.Path) error {
		scanned = path
		return nil
	}))

	assert.Equal(t, m.Path("app.py"), scanned)
}

func TestMenu_DirectoryIsInvalidPath(t *testing.T) {
	var out bytes.Buffer

	menu := NewMenu(strings.NewReader("1\nsrc\n2\n"), &out)
	require.NoError(t, menu.Run(func(path m.Path) error {
		return fmt.Errorf("%s is a directory: %w", path, fs.ErrInvalid)
	}))

	assert.Contains(t, out.String(), "Invalid file path. Please try again.\n")
}
