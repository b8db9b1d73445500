package controller

import (
	"bytes"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

func TestNewUI_TTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, true)

	if _, ok := ui.(*TUI); !ok {
		t.Errorf("NewUI(true) returned %T, want *TUI", ui)
	}
}

func TestNewUI_NonTTYMode(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	ui := NewUI(cmd, false)

	if _, ok := ui.(*SimpleUI); !ok {
		t.Errorf("NewUI(false) returned %T, want *SimpleUI", ui)
	}
}

func TestIsTTY_WithRegularFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "hazard-tty")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	defer file.Close()

	if IsTTY(file) {
		t.Fatalf("IsTTY(regular file) = true, want false")
	}
}

func TestIsTTY_WithClosedFile(t *testing.T) {
	file, err := os.CreateTemp(t.TempDir(), "hazard-tty")
	if err != nil {
		t.Fatalf("CreateTemp error: %v", err)
	}
	file.Close()

	if IsTTY(file) {
		t.Fatalf("IsTTY(closed file) = true, want false")
	}
}

func TestIsTTY_WithDevNull(t *testing.T) {
	file, err := os.Open(os.DevNull)
	if err != nil {
		t.Skip("null device not available")
	}
	defer file.Close()

	if IsTTY(file) {
		t.Fatalf("IsTTY(%s) = true, want false", os.DevNull)
	}
}

func TestIsTTY_WithNonTerminal(t *testing.T) {
	var buf bytes.Buffer

	if IsTTY(&buf) {
		t.Error("IsTTY(buffer) = true, want false")
	}
}
