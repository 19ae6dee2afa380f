package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternalIDFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.patreon.com/posts/chapter-5-123456", "chapter-5-123456"},
		{"https://www.patreon.com/posts/chapter-5-123456/", "chapter-5-123456"},
		{"https://example.com/blog/post-1", "blog/post-1"},
		{"posts/abc", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, ExternalIDFromURL(tt.url))
		})
	}
}

func TestSlugFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://www.patreon.com/c/millennialmage/posts", "millennialmage"},
		{"https://www.patreon.com/c/millennialmage", "millennialmage"},
		{"https://www.patreon.com/millennialmage", "millennialmage"},
		{"millennialmage", "millennialmage"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugFromURL(tt.url))
		})
	}
}

func TestNameFromSlug(t *testing.T) {
	assert.Equal(t, "Primal Hunter", NameFromSlug("primal-hunter"))
	assert.Equal(t, "Zogarth", NameFromSlug("zogarth"))
}

func TestSortChapters(t *testing.T) {
	chapters := []Chapter{
		{Title: "extra 1"},
		{Title: "ch 3", Number: IntPtr(3)},
		{Title: "ch 1a", Number: IntPtr(1)},
		{Title: "extra 2"},
		{Title: "ch 1b", Number: IntPtr(1)},
		{Title: "ch 2", Number: IntPtr(2)},
	}
	SortChapters(chapters)

	titles := make([]string, 0, len(chapters))
	for _, c := range chapters {
		titles = append(titles, c.Title)
	}
	assert.Equal(t, []string{"ch 1a", "ch 1b", "ch 2", "ch 3", "extra 1", "extra 2"}, titles)
}

func TestSeries_LastChapterNumber(t *testing.T) {
	s := Series{Chapters: []Chapter{{Number: IntPtr(4)}, {}, {Number: IntPtr(9)}, {Number: IntPtr(2)}}}
	last := s.LastChapterNumber()
	if assert.NotNil(t, last) {
		assert.Equal(t, 9, *last)
	}

	empty := Series{Chapters: []Chapter{{}}}
	assert.Nil(t, empty.LastChapterNumber())
}
