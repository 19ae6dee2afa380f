package archive

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/serialbook/pkg/domain"
)

func testSeries(titles ...string) *domain.Series {
	s := &domain.Series{Key: "Dark Tower", Author: "Jane Writer", OriginURL: "https://example.com/c/jane"}
	for _, title := range titles {
		s.Chapters = append(s.Chapters, domain.Chapter{
			Title:  title,
			Number: NumberFromHeading(title),
			Body:   "<p>text of " + title + "</p>",
		})
	}
	return s
}

func writeBook(t *testing.T, path string, s *domain.Series) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteEPUB(&buf, s))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

func chapterTitles(chapters []domain.Chapter) []string {
	res := make([]string, 0, len(chapters))
	for _, c := range chapters {
		res = append(res, c.Title)
	}
	return res
}

func TestWriteReadEPUB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.epub")
	writeBook(t, path, testSeries("Chapter 1", "Chapter 2", "Ch. 3 <Finale> & more", "Epilogue"))

	s, err := ReadEPUB(path)
	require.NoError(t, err)
	assert.Equal(t, "Dark Tower", s.Key)
	assert.Equal(t, "Jane Writer", s.Author)
	assert.Equal(t, "https://example.com/c/jane", s.OriginURL)
	assert.Equal(t, []string{"Chapter 1", "Chapter 2", "Ch. 3 <Finale> & more", "Epilogue"}, chapterTitles(s.Chapters))

	assert.Equal(t, intPtr(1), s.Chapters[0].Number)
	assert.Equal(t, intPtr(3), s.Chapters[2].Number)
	assert.Nil(t, s.Chapters[3].Number)

	assert.Contains(t, s.Chapters[0].Body, "text of Chapter 1")
	assert.NotContains(t, s.Chapters[0].Body, "<h1>", "heading is not duplicated into body")
	assert.Equal(t, "Chapter 2", s.Chapters[1].Origin.Title)
}

func TestWriteEPUB_SanitizesBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.epub")
	s := testSeries("Chapter 1")
	s.Chapters[0].Body = `<p onclick="evil()">hello</p><script>alert(1)</script>`
	writeBook(t, path, s)

	res, err := ReadEPUB(path)
	require.NoError(t, err)
	require.Len(t, res.Chapters, 1)
	assert.Contains(t, res.Chapters[0].Body, "hello")
	assert.NotContains(t, res.Chapters[0].Body, "script")
	assert.NotContains(t, res.Chapters[0].Body, "onclick")
}

func TestWriteEPUB_EmptyBody(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.epub")
	s := testSeries("Chapter 1")
	s.Chapters[0].Body = "   "
	writeBook(t, path, s)

	res, err := ReadEPUB(path)
	require.NoError(t, err)
	require.Len(t, res.Chapters, 1)
	assert.Contains(t, res.Chapters[0].Body, "No content available.")
}

func TestReadEPUB_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadEPUB(filepath.Join(dir, "nope.epub"))
		require.Error(t, err)
	})

	t.Run("not a zip", func(t *testing.T) {
		path := filepath.Join(dir, "bad.epub")
		require.NoError(t, os.WriteFile(path, []byte("definitely not an epub"), 0o600))
		_, err := ReadEPUB(path)
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "open epub"))
	})
}

func TestBookID(t *testing.T) {
	assert.Equal(t, BookID("Dark Tower"), BookID("Dark Tower"))
	assert.NotEqual(t, BookID("Dark Tower"), BookID("Other"))
	assert.True(t, strings.HasPrefix(BookID("Dark Tower"), "urn:uuid:"))
}
