package chapter

import (
	"github.com/umputun/serialbook/pkg/domain"
)

// FindNewChapters returns chapters of the target series present in fetched but missing from existing.
// A numbered chapter is new if its number isn't used by any existing chapter, an unnumbered one
// if no existing chapter has exactly the same title. Result is sorted by number, unnumbered last.
func (d *Detector) FindNewChapters(existing []domain.Chapter, fetched []domain.SourceItem, target string) []domain.Chapter {
	numbers := make(map[int]struct{}, len(existing))
	titles := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		if c.Number != nil {
			numbers[*c.Number] = struct{}{}
		}
		titles[c.Title] = struct{}{}
	}

	res := []domain.Chapter{}
	for _, item := range fetched {
		cl, ok := d.parser.Classify(item.Title)
		if !ok || cl.SeriesKey != target {
			continue
		}

		isNew := false
		if cl.Number != nil {
			_, found := numbers[*cl.Number]
			isNew = !found
		} else {
			_, found := titles[item.Title]
			isNew = !found
		}
		if isNew {
			res = append(res, domain.NewChapter(item, cl.Number))
		}
	}

	domain.SortChapters(res)
	return res
}
