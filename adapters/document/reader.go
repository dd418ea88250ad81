// Package document turns source files into overlapping text segments sized
// for claim extraction.
package document

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Reader loads .txt, .html and .htm files. HTML is reduced to its text
// content before segmentation.
type Reader struct {
	sanitizer *bluemonday.Policy
}

// NewReader creates a document reader.
func NewReader() *Reader {
	return &Reader{sanitizer: bluemonday.StrictPolicy()}
}

// ReadSegments loads the file at path and splits it into segments of at
// most maxWords words, each overlapping the previous one by overlapWords.
// Overlap exists so a claim straddling a segment boundary is still seen
// whole by at least one extraction call.
func (r *Reader) ReadSegments(path string, maxWords, overlapWords int) ([]string, error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("segment size must be positive, got %d", maxWords)
	}
	if overlapWords < 0 || overlapWords >= maxWords {
		return nil, fmt.Errorf("overlap must be in [0, %d), got %d", maxWords, overlapWords)
	}

	text, err := r.readText(path)
	if err != nil {
		return nil, err
	}
	return Segment(text, maxWords, overlapWords), nil
}

func (r *Reader) readText(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading document: %w", err)
	}
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(path))) {
	case ".txt":
		return string(raw), nil
	case ".html", ".htm":
		stripped := r.sanitizer.Sanitize(string(raw))
		return html.UnescapeString(stripped), nil
	default:
		return "", fmt.Errorf("unsupported document format %q, want .txt, .html or .htm", filepath.Ext(path))
	}
}

// Segment splits text on whitespace into word windows. The step between
// window starts is maxWords minus overlapWords, so consecutive windows
// share overlapWords words.
func Segment(text string, maxWords, overlapWords int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	step := maxWords - overlapWords
	var segments []string
	for i := 0; i < len(words); i += step {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		segments = append(segments, strings.Join(words[i:end], " "))
	}
	return segments
}
