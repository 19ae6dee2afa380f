// Package books turns stored posts of a creator into EPUB books, one book per detected series,
// and keeps existing books up to date with newly stored chapters.
package books

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/serialbook/pkg/archive"
	"github.com/umputun/serialbook/pkg/chapter"
	"github.com/umputun/serialbook/pkg/domain"
)

//go:generate moq -out mocks/post_store.go -pkg mocks -skip-ensure -fmt goimports . PostStore
//go:generate moq -out mocks/creator_store.go -pkg mocks -skip-ensure -fmt goimports . CreatorStore

// PostStore provides stored posts
type PostStore interface {
	ListByCreator(ctx context.Context, creator string, limit, offset int) ([]domain.StoredPost, error)
}

// CreatorStore provides creator details
type CreatorStore interface {
	Get(ctx context.Context, slug string) (*domain.Creator, error)
}

// CreatorOptions are per-creator title parsing settings
type CreatorOptions struct {
	CustomPattern string
	SeriesName    string
	DefaultSeries string
}

// Params for Service
type Params struct {
	Posts     PostStore
	Creators  CreatorStore
	Merger    *archive.Merger
	OutputDir string
	Options   func(slug string) CreatorOptions // optional
}

// Service builds and updates books
type Service struct {
	posts     PostStore
	creators  CreatorStore
	merger    *archive.Merger
	outputDir string
	options   func(slug string) CreatorOptions
}

// SeriesSummary describes a series detected in stored posts
type SeriesSummary struct {
	Key      string `json:"key"`
	Chapters int    `json:"chapters"`
	First    *int   `json:"first,omitempty"`
	Last     *int   `json:"last,omitempty"`
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
}

// Detection is the result of series detection for a creator
type Detection struct {
	Creator   string          `json:"creator"`
	Series    []SeriesSummary `json:"series"`
	Unmatched []string        `json:"unmatched"` // titles not assigned to any series
}

// BuildResult describes a generated book
type BuildResult struct {
	Series   string `json:"series"`
	Path     string `json:"path"`
	Chapters int    `json:"chapters"`
}

// NewService makes books service
func NewService(p Params) *Service {
	if p.Options == nil {
		p.Options = func(string) CreatorOptions { return CreatorOptions{} }
	}
	if p.Merger == nil {
		p.Merger = archive.NewMerger()
	}
	return &Service{posts: p.Posts, creators: p.Creators, merger: p.Merger, outputDir: p.OutputDir, options: p.Options}
}

// Detect classifies stored posts of creator and reports detected series without writing anything
func (s *Service) Detect(ctx context.Context, slug string) (*Detection, error) {
	det, creator, items, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}

	res := det.Organize(items, "")
	out := &Detection{Creator: creator.Slug, Series: []SeriesSummary{}, Unmatched: []string{}}
	for _, key := range sortedKeys(res.Series) {
		series := res.Series[key]
		summary := SeriesSummary{Key: key, Chapters: len(series.Chapters), Path: s.BookPath(slug, key)}
		if len(series.Chapters) > 0 {
			summary.First = series.Chapters[0].Number
			summary.Last = series.LastChapterNumber()
		}
		if _, err := os.Stat(summary.Path); err == nil {
			summary.Exists = true
		}
		out.Series = append(out.Series, summary)
	}
	for _, item := range res.Dropped {
		out.Unmatched = append(out.Unmatched, item.Title)
	}
	return out, nil
}

// Build generates a book for every series found in stored posts of creator, replacing existing books.
// Posts with unrecognized titles go to defaultSeries, or to the creator's configured default series if empty.
func (s *Service) Build(ctx context.Context, slug, defaultSeries string) ([]BuildResult, error) {
	det, _, items, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}
	if defaultSeries == "" {
		defaultSeries = s.options(slug).DefaultSeries
	}

	res := det.Organize(items, defaultSeries)
	if len(res.Dropped) > 0 {
		lgr.Printf("[INFO] %d post(s) of %s not assigned to any series", len(res.Dropped), slug)
	}

	results := make([]BuildResult, 0, len(res.Series))
	for _, key := range sortedKeys(res.Series) {
		series := res.Series[key]
		path := s.BookPath(slug, key)
		if err := s.merger.Generate(ctx, series, path); err != nil {
			return results, fmt.Errorf("generate book %q: %w", key, err)
		}
		results = append(results, BuildResult{Series: key, Path: path, Chapters: len(series.Chapters)})
	}
	return results, nil
}

// Update adds chapters of seriesKey not yet present in the book at bookPath.
// Empty bookPath means the default location of the series book.
func (s *Service) Update(ctx context.Context, slug, seriesKey, bookPath string) (*archive.MergeResult, error) {
	if seriesKey == "" {
		return nil, errors.New("series is required")
	}
	det, creator, items, err := s.load(ctx, slug)
	if err != nil {
		return nil, err
	}
	if bookPath == "" {
		bookPath = s.BookPath(slug, seriesKey)
	}

	meta := domain.Series{Key: seriesKey, Author: creator.Name, OriginURL: creator.URL}
	res, err := s.merger.MergeSelected(ctx, bookPath, meta, func(existing []domain.Chapter) []domain.Chapter {
		numberChapters(det.Parser(), existing, seriesKey)
		return det.FindNewChapters(existing, items, seriesKey)
	})
	if err != nil {
		return nil, fmt.Errorf("update book %q: %w", seriesKey, err)
	}
	return res, nil
}

// numberChapters sets numbers of unnumbered chapters read from a book when their titles classify into target.
// Book headings are numbered by reduced patterns only, titles like "v7c9" or "Tale (3)" come back without number.
func numberChapters(p *chapter.Parser, chapters []domain.Chapter, target string) {
	for i := range chapters {
		if chapters[i].Number != nil {
			continue
		}
		cls, ok := p.Classify(chapters[i].Title)
		if ok && cls.SeriesKey == target && cls.Number != nil {
			chapters[i].Number = cls.Number
		}
	}
}

// UpdateExisting updates every existing book of creator's detected series, returns merge results of updated books
func (s *Service) UpdateExisting(ctx context.Context, slug string) ([]*archive.MergeResult, error) {
	detection, err := s.Detect(ctx, slug)
	if err != nil {
		return nil, err
	}
	var results []*archive.MergeResult
	for _, series := range detection.Series {
		if !series.Exists {
			continue
		}
		res, err := s.Update(ctx, slug, series.Key, series.Path)
		if err != nil {
			return results, err
		}
		if res.Added > 0 {
			results = append(results, res)
		}
	}
	return results, nil
}

// BookPath returns default book location for the series of creator
func (s *Service) BookPath(slug, seriesKey string) string {
	return filepath.Join(s.outputDir, slug, FileName(seriesKey)+".epub")
}

// FileName makes a file name from a series key, keeping letters, digits, spaces, dashes and underscores
func FileName(key string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			return r
		}
		return -1
	}, key)
	name = strings.TrimSpace(name)
	if name == "" {
		return "book"
	}
	return name
}

// load returns detector for creator and stored posts of creator in publishing order, oldest first
func (s *Service) load(ctx context.Context, slug string) (*chapter.Detector, *domain.Creator, []domain.SourceItem, error) {
	creator, err := s.creators.Get(ctx, slug)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get creator: %w", err)
	}

	opts := s.options(slug)
	det, err := chapter.NewDetector(chapter.Config{
		CustomPattern: opts.CustomPattern,
		SeriesName:    opts.SeriesName,
		Author:        creator.Name,
		OriginURL:     creator.URL,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("make detector for %s: %w", slug, err)
	}

	posts, err := s.posts.ListByCreator(ctx, slug, 0, 0)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list posts: %w", err)
	}
	items := make([]domain.SourceItem, 0, len(posts))
	for i := len(posts) - 1; i >= 0; i-- {
		items = append(items, posts[i].SourceItem)
	}
	return det, creator, items, nil
}

func sortedKeys(m map[string]*domain.Series) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
