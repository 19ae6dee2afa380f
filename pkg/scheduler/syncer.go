package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/serialbook/pkg/archive"
	"github.com/umputun/serialbook/pkg/domain"
)

//go:generate moq -out mocks/post_store.go -pkg mocks -skip-ensure -fmt goimports . PostStore
//go:generate moq -out mocks/creator_store.go -pkg mocks -skip-ensure -fmt goimports . CreatorStore
//go:generate moq -out mocks/sync_logger.go -pkg mocks -skip-ensure -fmt goimports . SyncLogger
//go:generate moq -out mocks/setting_store.go -pkg mocks -skip-ensure -fmt goimports . SettingStore
//go:generate moq -out mocks/fetcher.go -pkg mocks -skip-ensure -fmt goimports . Fetcher
//go:generate moq -out mocks/book_updater.go -pkg mocks -skip-ensure -fmt goimports . BookUpdater

// PostStore keeps fetched posts
type PostStore interface {
	ListExternalIDs(ctx context.Context, creator string) (map[string]struct{}, error)
	Upsert(ctx context.Context, post *domain.StoredPost) (bool, error)
}

// CreatorStore provides followed creators and records their sync state
type CreatorStore interface {
	Get(ctx context.Context, slug string) (*domain.Creator, error)
	List(ctx context.Context, enabledOnly bool) ([]domain.Creator, error)
	UpdateSync(ctx context.Context, slug string, syncTime time.Time) error
}

// SyncLogger records sync outcomes
type SyncLogger interface {
	Log(ctx context.Context, entry domain.SyncLogEntry) error
}

// SettingStore keeps timestamps of sync runs
type SettingStore interface {
	SetTime(ctx context.Context, key string, ts time.Time) error
}

// Fetcher retrieves recent posts of a creator feed, limit 0 means all available posts
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string, limit int) ([]domain.SourceItem, error)
}

// BookUpdater adds new chapters to existing books of a creator
type BookUpdater interface {
	UpdateExisting(ctx context.Context, slug string) ([]*archive.MergeResult, error)
}

// SyncerParams holds dependencies and settings of Syncer
type SyncerParams struct {
	Posts       PostStore
	Creators    CreatorStore
	SyncLog     SyncLogger
	Settings    SettingStore
	Fetcher     Fetcher
	Books       BookUpdater // optional, updates existing books after new posts stored
	FeedURL     func(slug string) string
	RecentLimit int
	MaxWorkers  int
}

// Syncer pulls posts of creators into the post store.
// A sync of one creator never affects others: failures are logged, recorded to the sync log
// and reported, but the remaining creators are still synced.
type Syncer struct {
	posts       PostStore
	creators    CreatorStore
	syncLog     SyncLogger
	settings    SettingStore
	fetcher     Fetcher
	books       BookUpdater
	feedURL     func(slug string) string
	recentLimit int
	maxWorkers  int
	now         func() time.Time
}

// CreatorReport is the outcome of a single creator sync
type CreatorReport struct {
	Creator      string `json:"creator"`
	Fetched      int    `json:"fetched"`
	Added        int    `json:"added"`
	Failed       int    `json:"failed,omitempty"`
	BooksUpdated int    `json:"books_updated,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Report is the outcome of a sync run over creators
type Report struct {
	ID       string          `json:"id"`
	Full     bool            `json:"full"`
	Started  time.Time       `json:"started"`
	Finished time.Time       `json:"finished"`
	Creators []CreatorReport `json:"creators"`
}

// Added returns total number of new posts stored in the run
func (r *Report) Added() int {
	total := 0
	for _, c := range r.Creators {
		total += c.Added
	}
	return total
}

// Failed returns number of creators failed to sync
func (r *Report) Failed() int {
	total := 0
	for _, c := range r.Creators {
		if c.Error != "" {
			total++
		}
	}
	return total
}

// NewSyncer makes a syncer
func NewSyncer(p SyncerParams) *Syncer {
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = 1
	}
	if p.FeedURL == nil {
		p.FeedURL = func(slug string) string { return slug }
	}
	return &Syncer{
		posts:       p.Posts,
		creators:    p.Creators,
		syncLog:     p.SyncLog,
		settings:    p.Settings,
		fetcher:     p.Fetcher,
		books:       p.Books,
		feedURL:     p.FeedURL,
		recentLimit: p.RecentLimit,
		maxWorkers:  p.MaxWorkers,
		now:         time.Now,
	}
}

// SyncAll syncs all enabled creators, or only the given one if slug is not empty.
// Full sync fetches every available post, otherwise only the recent ones.
// Error returned only if creators can't be listed; per-creator failures are in the report.
func (s *Syncer) SyncAll(ctx context.Context, full bool, slug string) (*Report, error) {
	var creators []domain.Creator
	if slug != "" {
		c, err := s.creators.Get(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("get creator %s: %w", slug, err)
		}
		creators = append(creators, *c)
	} else {
		list, err := s.creators.List(ctx, true)
		if err != nil {
			return nil, fmt.Errorf("list creators: %w", err)
		}
		creators = list
	}

	report := &Report{ID: uuid.NewString(), Full: full, Started: s.now(), Creators: make([]CreatorReport, len(creators))}
	lgr.Printf("[INFO] sync %s started for %d creator(s), full: %v", report.ID, len(creators), full)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)
	for i, c := range creators {
		g.Go(func() error {
			report.Creators[i] = s.SyncCreator(gctx, c, full)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		lgr.Printf("[ERROR] sync %s error: %v", report.ID, err)
	}
	report.Finished = s.now()

	if full && slug == "" && s.settings != nil && ctx.Err() == nil {
		if err := s.settings.SetTime(ctx, domain.SettingLastFullSync, report.Started); err != nil {
			lgr.Printf("[WARN] failed to save last full sync time: %v", err)
		}
	}

	lgr.Printf("[INFO] sync %s completed, %d new post(s), %d creator(s) failed", report.ID, report.Added(), report.Failed())
	return report, nil
}

// SyncCreator fetches posts of a single creator and stores the ones not seen before
func (s *Syncer) SyncCreator(ctx context.Context, c domain.Creator, full bool) CreatorReport {
	report := CreatorReport{Creator: c.Slug}
	limit := s.recentLimit
	if full {
		limit = 0
	}

	added, fetched, failed, err := s.storeNew(ctx, c.Slug, limit)
	report.Fetched, report.Added, report.Failed = fetched, added, failed
	if err != nil {
		lgr.Printf("[WARN] failed to sync creator %s: %v", c.Slug, err)
		report.Error = err.Error()
		s.logSync(ctx, domain.SyncLogEntry{CreatorSlug: c.Slug, SyncTime: s.now(), PostsAdded: added,
			Status: domain.SyncError, ErrorMessage: err.Error()})
		return report
	}

	if err := s.creators.UpdateSync(ctx, c.Slug, s.now()); err != nil {
		lgr.Printf("[WARN] failed to update sync time of creator %s: %v", c.Slug, err)
	}
	s.logSync(ctx, domain.SyncLogEntry{CreatorSlug: c.Slug, SyncTime: s.now(), PostsAdded: added, Status: domain.SyncSuccess})

	if added > 0 {
		lgr.Printf("[INFO] added %d new post(s) of %s", added, c.Slug)
		report.BooksUpdated = s.updateBooks(ctx, c.Slug)
	}
	return report
}

// storeNew fetches creator's feed and upserts posts with unknown ids.
// Returns error if nothing could be stored at all, individual upsert failures are counted and skipped.
func (s *Syncer) storeNew(ctx context.Context, slug string, limit int) (added, fetched, failed int, err error) {
	items, err := s.fetcher.Fetch(ctx, s.feedURL(slug), limit)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("fetch posts: %w", err)
	}
	known, err := s.posts.ListExternalIDs(ctx, slug)
	if err != nil {
		return 0, len(items), 0, fmt.Errorf("list known posts: %w", err)
	}
	if known == nil {
		known = map[string]struct{}{}
	}

	var errs []error
	for _, item := range items {
		if item.ExternalID == "" {
			lgr.Printf("[DEBUG] skip post without id of %s: %q", slug, item.Title)
			continue
		}
		if _, ok := known[item.ExternalID]; ok {
			continue
		}
		post := &domain.StoredPost{SourceItem: item, CreatorSlug: slug, FetchedAt: s.now()}
		inserted, uerr := s.posts.Upsert(ctx, post)
		if uerr != nil {
			lgr.Printf("[WARN] failed to store post %s of %s: %v", item.ExternalID, slug, uerr)
			errs = append(errs, uerr)
			failed++
			continue
		}
		known[item.ExternalID] = struct{}{}
		if inserted {
			added++
		}
	}
	if failed > 0 && added == 0 {
		return 0, len(items), failed, fmt.Errorf("store posts: %w", errors.Join(errs...))
	}
	return added, len(items), failed, nil
}

func (s *Syncer) updateBooks(ctx context.Context, slug string) int {
	if s.books == nil {
		return 0
	}
	results, err := s.books.UpdateExisting(ctx, slug)
	if err != nil {
		lgr.Printf("[WARN] failed to update books of %s: %v", slug, err)
	}
	for _, r := range results {
		lgr.Printf("[INFO] book %s updated with %d new chapter(s)", r.Path, r.Added)
	}
	return len(results)
}

func (s *Syncer) logSync(ctx context.Context, entry domain.SyncLogEntry) {
	if s.syncLog == nil {
		return
	}
	if err := s.syncLog.Log(ctx, entry); err != nil {
		lgr.Printf("[WARN] failed to record sync of %s: %v", entry.CreatorSlug, err)
	}
}
