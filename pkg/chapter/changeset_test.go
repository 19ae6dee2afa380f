package chapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/serialbook/pkg/domain"
)

func TestDetector_FindNewChapters(t *testing.T) {
	d, err := NewDetector(Config{Author: "Zogarth"})
	require.NoError(t, err)

	t.Run("only missing numbers are new", func(t *testing.T) {
		existing := []domain.Chapter{
			{Title: "Book: Chapter 1", Number: domain.IntPtr(1)},
			{Title: "Book: Chapter 2", Number: domain.IntPtr(2)},
		}
		res := d.FindNewChapters(existing, items("Book: Chapter 2", "Book: Chapter 3"), "Book")
		require.Len(t, res, 1)
		require.NotNil(t, res[0].Number)
		assert.Equal(t, 3, *res[0].Number)
		assert.Equal(t, "Book: Chapter 3", res[0].Title)
	})

	t.Run("other series and unmatched are skipped", func(t *testing.T) {
		res := d.FindNewChapters(nil, items("Other: Chapter 1", "news", "Book: Chapter 5"), "Book")
		assert.Equal(t, []string{"Book: Chapter 5"}, chapterTitles(res))
	})

	t.Run("numbered match ignores title of existing", func(t *testing.T) {
		existing := []domain.Chapter{{Title: "Book: Chapter 1 (old title)", Number: domain.IntPtr(1)}}
		res := d.FindNewChapters(existing, items("Book: Chapter 1"), "Book")
		assert.Empty(t, res)
	})

	t.Run("existing unnumbered chapters don't block numbered ones", func(t *testing.T) {
		existing := []domain.Chapter{{Title: "Book: Chapter 4"}}
		res := d.FindNewChapters(existing, items("Book: Chapter 4"), "Book")
		assert.Equal(t, []string{"Book: Chapter 4"}, chapterTitles(res))
	})

	t.Run("result sorted by number", func(t *testing.T) {
		res := d.FindNewChapters(nil, items("Book: Chapter 10", "Book: Chapter 9", "Book: Chapter 11"), "Book")
		assert.Equal(t, []string{"Book: Chapter 9", "Book: Chapter 10", "Book: Chapter 11"}, chapterTitles(res))
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		res := d.FindNewChapters(nil, nil, "Book")
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})
}

func TestDetector_FindNewChaptersIdempotent(t *testing.T) {
	d, err := NewDetector(Config{Author: "Zogarth"})
	require.NoError(t, err)

	existing := []domain.Chapter{{Title: "Book: Chapter 1", Number: domain.IntPtr(1)}}
	fetched := items("Book: Chapter 3", "Book: Chapter 1", "Book: Chapter 2", "Other: Chapter 1")

	first := d.FindNewChapters(existing, fetched, "Book")
	second := d.FindNewChapters(existing, fetched, "Book")
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Book: Chapter 2", "Book: Chapter 3"}, chapterTitles(first))

	merged := append(append([]domain.Chapter{}, existing...), first...)
	domain.SortChapters(merged)
	assert.Empty(t, d.FindNewChapters(merged, fetched, "Book"))
}
