// Package model defines the data structures shared by the scanner layers.
package model

import "strings"

// Path represents a file system path.
type Path string

// File represents a source code file.
type File struct {
	Path Path
	Hash string
}

// Source is a file selected for scanning.
type Source struct {
	Origin *File
}

// SourceLine is a single physical line of a source file.
type SourceLine struct {
	// Number is 1-indexed.
	Number int
	// Raw is the line exactly as read, including surrounding whitespace.
	Raw string
	// Text is the trimmed display form of Raw.
	Text string
}

// NewSourceLines numbers raw lines starting at 1.
func NewSourceLines(lines []string) []SourceLine {
	out := make([]SourceLine, 0, len(lines))
	for i, raw := range lines {
		out = append(out, SourceLine{
			Number: i + 1,
			Raw:    raw,
			Text:   strings.TrimSpace(raw),
		})
	}

	return out
}
