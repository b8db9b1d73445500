package controller

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	m "github.com/mouse-blink/hazard/internal/model"
)

// ScanFunc scans a single file chosen from the menu.
type ScanFunc func(path m.Path) error

// Menu is the interactive prompt loop: scan a file or exit.
type Menu struct {
	in  *bufio.Reader
	out io.Writer
}

// NewMenu creates a Menu reading answers from in.
func NewMenu(in io.Reader, out io.Writer) *Menu {
	return &Menu{in: bufio.NewReader(in), out: out}
}

// Run shows the menu until the user exits or input ends. Errors from scan
// are reported and the loop continues.
func (mn *Menu) Run(scan ScanFunc) error {
	for {
		mn.printf("\nSecurity Code Scanner\n")
		mn.printf("1. Scan a single file\n")
		mn.printf("2. Exit\n")

		choice, err := mn.prompt("Enter your choice (1/2): ")
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		switch choice {
		case "1":
			path, err := mn.prompt("Enter the path to the Python file: ")
			if errors.Is(err, io.EOF) {
				return nil
			}

			if err != nil {
				return err
			}

			mn.scan(scan, m.Path(path))
		case "2":
			mn.printf("Exiting the scanner. Goodbye!\n")
			return nil
		default:
			mn.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (mn *Menu) scan(scan ScanFunc, path m.Path) {
	err := scan(path)

	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrInvalid):
		mn.printf("Invalid file path. Please try again.\n")
	default:
		mn.printf("Error: %v\n", err)
	}
}

// prompt reads one trimmed answer. A final answer without a newline is
// still returned; EOF is reported only when nothing was read.
func (mn *Menu) prompt(question string) (string, error) {
	mn.printf("%s", question)

	line, err := mn.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (mn *Menu) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(mn.out, format, args...)
}
