package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSegmentOverlap(t *testing.T) {
	words := make([]string, 10)
	for i := range words {
		words[i] = string(rune('a' + i))
	}
	segments := Segment(strings.Join(words, " "), 4, 2)

	require.Len(t, segments, 5)
	assert.Equal(t, "a b c d", segments[0])
	assert.Equal(t, "c d e f", segments[1])
	assert.Equal(t, "i j", segments[4])
}

func TestSegmentNoOverlap(t *testing.T) {
	segments := Segment("a b c d e", 2, 0)
	assert.Equal(t, []string{"a b", "c d", "e"}, segments)
}

func TestSegmentShortText(t *testing.T) {
	segments := Segment("one two", 500, 8)
	assert.Equal(t, []string{"one two"}, segments)
}

func TestSegmentEmpty(t *testing.T) {
	assert.Nil(t, Segment("   \n\t ", 10, 2))
}

func TestReadSegmentsTxt(t *testing.T) {
	path := writeFile(t, "paper.txt", "The mean was 3.85 with N = 27.")
	segments, err := NewReader().ReadSegments(path, 500, 8)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Equal(t, "The mean was 3.85 with N = 27.", segments[0])
}

func TestReadSegmentsHTML(t *testing.T) {
	html := `<html><body><script>alert(1)</script><p>t(20) = 2.10, p &lt; .05</p></body></html>`
	path := writeFile(t, "paper.html", html)

	segments, err := NewReader().ReadSegments(path, 500, 8)
	require.NoError(t, err)
	require.Len(t, segments, 1)
	assert.Contains(t, segments[0], "t(20) = 2.10, p < .05")
	assert.NotContains(t, segments[0], "alert")
}

func TestReadSegmentsUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "paper.docx", "nope")
	_, err := NewReader().ReadSegments(path, 500, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document format")
}

func TestReadSegmentsMissingFile(t *testing.T) {
	_, err := NewReader().ReadSegments(filepath.Join(t.TempDir(), "missing.txt"), 500, 8)
	require.Error(t, err)
}

func TestReadSegmentsBadWindow(t *testing.T) {
	path := writeFile(t, "paper.txt", "words")
	_, err := NewReader().ReadSegments(path, 0, 0)
	require.Error(t, err)
	_, err = NewReader().ReadSegments(path, 10, 10)
	require.Error(t, err)
}
