package chapter

import (
	"slices"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/serialbook/pkg/domain"
)

// Detector groups posts into series using a title parser
type Detector struct {
	parser *Parser
}

// Result of organizing posts into series
type Result struct {
	Series  map[string]*domain.Series
	Dropped []domain.SourceItem // unmatched posts left out because no default series was given
}

// NewDetector makes a detector for the given config
func NewDetector(cfg Config) (*Detector, error) {
	p, err := NewParser(cfg)
	if err != nil {
		return nil, err
	}
	return &Detector{parser: p}, nil
}

// Parser returns the underlying title parser
func (d *Detector) Parser() *Parser {
	return d.parser
}

// Organize groups items into series keyed by series name. Unmatched items go to defaultKey
// as unnumbered chapters in input order; with empty defaultKey they are returned in Result.Dropped.
// Chapters of every series are sorted by number, unnumbered last.
func (d *Detector) Organize(items []domain.SourceItem, defaultKey string) Result {
	res := Result{Series: map[string]*domain.Series{}}
	var unmatched []domain.SourceItem

	for _, item := range items {
		cl, ok := d.parser.Classify(item.Title)
		if !ok {
			unmatched = append(unmatched, item)
			continue
		}
		s := d.series(res.Series, cl.SeriesKey)
		s.Chapters = append(s.Chapters, domain.NewChapter(item, cl.Number))
	}

	if len(unmatched) > 0 {
		if defaultKey != "" {
			s := d.series(res.Series, defaultKey)
			for _, item := range unmatched {
				s.Chapters = append(s.Chapters, domain.NewChapter(item, nil))
			}
		} else {
			res.Dropped = unmatched
			lgr.Printf("[WARN] %d posts didn't match any title pattern and no default series set, skipped", len(unmatched))
		}
	}

	for _, s := range res.Series {
		s.SortChapters()
	}
	return res
}

// DetectSeriesKeys returns sorted distinct series keys found in item titles
func (d *Detector) DetectSeriesKeys(items []domain.SourceItem) []string {
	seen := map[string]struct{}{}
	keys := []string{}
	for _, item := range items {
		cl, ok := d.parser.Classify(item.Title)
		if !ok {
			continue
		}
		if _, found := seen[cl.SeriesKey]; found {
			continue
		}
		seen[cl.SeriesKey] = struct{}{}
		keys = append(keys, cl.SeriesKey)
	}
	slices.Sort(keys)
	return keys
}

// series returns series by key, creating it if missing
func (d *Detector) series(all map[string]*domain.Series, key string) *domain.Series {
	if s, ok := all[key]; ok {
		return s
	}
	cfg := d.parser.Config()
	s := &domain.Series{Key: key, Author: cfg.Author, OriginURL: cfg.OriginURL}
	all[key] = s
	return s
}
