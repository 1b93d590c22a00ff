// Package markdown parses a small markdown dialect into ordered, styled
// text segments. The dialect covers exactly what the publisher can render:
// a title, two heading levels, list items, blank-line spacing and
// whole-line bold. Inline emphasis mixed with plain text is flattened to
// plain text.
package markdown

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Style is the paragraph style tag carried by a segment.
type Style string

const (
	StyleTitle    Style = "TITLE"
	StyleHeading1 Style = "HEADING_1"
	StyleHeading2 Style = "HEADING_2"
	StyleNormal   Style = "NORMAL"
	StyleListItem Style = "LIST_ITEM"
)

// Segment is one styled unit of parsed text. Text is always
// newline-terminated; concatenating segment texts in order reconstructs
// the full document body, which the request builder relies on when
// computing insertion indices.
type Segment struct {
	Text  string
	Style Style
	Bold  bool
}

// ParseFile reads a markdown file and parses it into segments.
func ParseFile(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads markdown line by line and returns the segments in source
// order. Malformed input never fails; every line maps to some segment.
// Only I/O errors are returned.
func Parse(r io.Reader) ([]Segment, error) {
	var segments []Segment

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			// Blank line: standalone newline segment to preserve spacing.
			segments = append(segments, Segment{Text: "\n", Style: StyleNormal})
			continue
		}
		segments = append(segments, parseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return segments, nil
}

// parseLine classifies a single non-blank line. Prefixes are checked
// longest-first so "### " is never taken for "## ".
func parseLine(line string) Segment {
	style := StyleNormal
	content := line

	switch {
	case strings.HasPrefix(line, "### "):
		style = StyleHeading2
		content = line[4:]
	case strings.HasPrefix(line, "## "):
		style = StyleHeading1
		content = line[3:]
	case strings.HasPrefix(line, "# "):
		style = StyleTitle
		content = line[2:]
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		style = StyleListItem
		content = "\t" + line[2:]
	}

	// Whole-line bold only: the line must carry both markers.
	bold := false
	if len(content) >= 4 && strings.HasPrefix(content, "**") && strings.HasSuffix(content, "**") {
		bold = true
		content = content[2 : len(content)-2]
	}

	// Strip any remaining emphasis markers. Inline bold/italic mixed with
	// plain text collapses to plain text.
	content = strings.ReplaceAll(content, "**", "")
	content = strings.ReplaceAll(content, "*", "")

	return Segment{Text: content + "\n", Style: style, Bold: bold}
}
