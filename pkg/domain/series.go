package domain

import "slices"

// Classification is the result of parsing a post title
type Classification struct {
	SeriesKey string
	Number    *int
}

// Chapter is a single classified post attached to a series
type Chapter struct {
	Title  string
	Number *int
	Body   string
	Images []string
	Origin SourceItem
}

// Series is an ordered collection of chapters sharing a display key
type Series struct {
	Key       string
	Author    string
	OriginURL string
	Chapters  []Chapter
}

// NewChapter makes a chapter from a source item and its chapter number
func NewChapter(item SourceItem, number *int) Chapter {
	return Chapter{
		Title:  item.Title,
		Number: number,
		Body:   item.Body,
		Images: item.Images,
		Origin: item,
	}
}

// SortChapters orders chapters in place: numbered ones ascending, then unnumbered.
// The sort is stable, chapters with equal keys keep their relative order.
func SortChapters(chapters []Chapter) {
	slices.SortStableFunc(chapters, compareChapters)
}

// SortChapters orders the series chapters, see SortChapters
func (s *Series) SortChapters() {
	SortChapters(s.Chapters)
}

// LastChapterNumber returns the highest chapter number, nil if there are no numbered chapters
func (s *Series) LastChapterNumber() *int {
	var last *int
	for _, c := range s.Chapters {
		if c.Number != nil && (last == nil || *c.Number > *last) {
			n := *c.Number
			last = &n
		}
	}
	return last
}

func compareChapters(a, b Chapter) int {
	switch {
	case a.Number == nil && b.Number == nil:
		return 0
	case a.Number == nil:
		return 1
	case b.Number == nil:
		return -1
	}
	switch {
	case *a.Number < *b.Number:
		return -1
	case *a.Number > *b.Number:
		return 1
	}
	return 0
}

// IntPtr returns a pointer to n
func IntPtr(n int) *int {
	return &n
}
