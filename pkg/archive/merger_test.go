package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/serialbook/pkg/domain"
)

func TestMerger_Generate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books", "dark-tower.epub")
	m := NewMerger()

	require.NoError(t, m.Generate(context.Background(), testSeries("Chapter 1", "Chapter 2"), path))

	s, err := ReadEPUB(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chapter 1", "Chapter 2"}, chapterTitles(s.Chapters))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestMerger_Merge(t *testing.T) {
	meta := domain.Series{Key: "Dark Tower", Author: "Jane Writer"}

	t.Run("interleaved chapter lands in number order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.epub")
		writeBook(t, path, testSeries("Chapter 1", "Chapter 10"))

		added := testSeries("Chapter 9").Chapters
		res, err := NewMerger().Merge(context.Background(), path, meta, added)
		require.NoError(t, err)
		assert.Empty(t, res.Warning)
		assert.Equal(t, 2, res.Existing)
		assert.Equal(t, 1, res.Added)

		s, err := ReadEPUB(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Chapter 1", "Chapter 9", "Chapter 10"}, chapterTitles(s.Chapters))
		assert.Equal(t, "https://example.com/c/jane", s.OriginURL, "metadata of existing book is kept")
	})

	t.Run("merge with nothing keeps chapters", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.epub")
		writeBook(t, path, testSeries("Chapter 2", "Chapter 3", "Chapter 3", "Afterword"))

		res, err := NewMerger().Merge(context.Background(), path, meta, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, res.Added)

		s, err := ReadEPUB(path)
		require.NoError(t, err)
		got := chapterTitles(s.Chapters)
		sort.Strings(got)
		assert.Equal(t, []string{"Afterword", "Chapter 2", "Chapter 3", "Chapter 3"}, got)
	})

	t.Run("overlapping titles are kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "book.epub")
		writeBook(t, path, testSeries("Chapter 1"))

		res, err := NewMerger().Merge(context.Background(), path, meta, testSeries("Chapter 1").Chapters)
		require.NoError(t, err)
		assert.Equal(t, []string{"Chapter 1", "Chapter 1"}, chapterTitles(res.Series.Chapters))
	})

	t.Run("missing book starts empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "new.epub")

		res, err := NewMerger().Merge(context.Background(), path, meta, testSeries("Chapter 2", "Chapter 1").Chapters)
		require.NoError(t, err)
		assert.Contains(t, res.Warning, "not found")
		assert.Equal(t, 0, res.Existing)

		s, err := ReadEPUB(path)
		require.NoError(t, err)
		assert.Equal(t, "Dark Tower", s.Key)
		assert.Equal(t, "Jane Writer", s.Author)
		assert.Equal(t, []string{"Chapter 1", "Chapter 2"}, chapterTitles(s.Chapters))
	})

	t.Run("corrupt book starts empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.epub")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))

		res, err := NewMerger().Merge(context.Background(), path, meta, testSeries("Chapter 1").Chapters)
		require.NoError(t, err)
		assert.Contains(t, res.Warning, "can't read")

		s, err := ReadEPUB(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"Chapter 1"}, chapterTitles(s.Chapters))
	})
}

func TestMerger_FailedWriteKeepsBook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.epub")
	writeBook(t, path, testSeries("Chapter 1", "Chapter 2"))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	m := NewMerger()
	m.render = func(w io.Writer, _ *domain.Series) error {
		_, _ = w.Write([]byte("partial"))
		return errors.New("disk full")
	}

	_, err = m.Merge(context.Background(), path, domain.Series{Key: "Dark Tower"}, testSeries("Chapter 3").Chapters)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "temp file %s left behind", e.Name())
	}
}

func TestMerger_ConcurrentMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.epub")
	m := NewMerger()
	require.NoError(t, m.Generate(context.Background(), testSeries("Chapter 1"), path))

	const workers = 8
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			title := fmt.Sprintf("Chapter %d", n+2)
			_, err := m.Merge(context.Background(), path, domain.Series{Key: "Dark Tower"}, testSeries(title).Chapters)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	s, err := ReadEPUB(path)
	require.NoError(t, err)
	require.Len(t, s.Chapters, workers+1)
	for i, c := range s.Chapters {
		assert.Equal(t, fmt.Sprintf("Chapter %d", i+1), c.Title)
	}
}

func TestMerger_MergeSelected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.epub")
	writeBook(t, path, testSeries("Chapter 1", "Chapter 2"))
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	m := NewMerger()

	t.Run("selector sees existing chapters", func(t *testing.T) {
		var seen []string
		res, err := m.MergeSelected(context.Background(), path, domain.Series{}, func(existing []domain.Chapter) []domain.Chapter {
			seen = chapterTitles(existing)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"Chapter 1", "Chapter 2"}, seen)
		assert.Equal(t, 0, res.Added)

		after, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, before, after, "nothing written without new chapters")
	})

	t.Run("selected chapters merged", func(t *testing.T) {
		res, err := m.MergeSelected(context.Background(), path, domain.Series{}, func(existing []domain.Chapter) []domain.Chapter {
			return testSeries(fmt.Sprintf("Chapter %d", len(existing)+1)).Chapters
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, []string{"Chapter 1", "Chapter 2", "Chapter 3"}, chapterTitles(res.Series.Chapters))
	})

	t.Run("numbers set by selector used for sorting", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "volume.epub")
		writeBook(t, p, testSeries("v1c1", "v1c2"))
		res, err := m.MergeSelected(context.Background(), p, domain.Series{}, func(existing []domain.Chapter) []domain.Chapter {
			for i := range existing {
				existing[i].Number = domain.IntPtr(i + 1)
			}
			added := testSeries("v1c3").Chapters
			added[0].Number = domain.IntPtr(3)
			return added
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.Added)
		assert.Equal(t, []string{"v1c1", "v1c2", "v1c3"}, chapterTitles(res.Series.Chapters))
	})
}
