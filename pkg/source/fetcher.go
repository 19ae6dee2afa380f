// Package source fetches creator posts from RSS/Atom feeds
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
	"golang.org/x/time/rate"

	"github.com/umputun/serialbook/pkg/content"
	"github.com/umputun/serialbook/pkg/domain"
)

//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// Extractor loads post body from the post page
type Extractor interface {
	Extract(ctx context.Context, url string) (*content.Result, error)
}

// Options for Fetcher
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Limiter   *rate.Limiter // shared by feed and page requests, unlimited if nil
	Extractor Extractor     // used for entries without content, optional
}

// Fetcher retrieves feed entries as source items
type Fetcher struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	extractor Extractor
}

// NewLimiter makes a limiter allowing one request per interval, zero interval means no limit
func NewLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// NewFetcher creates a new feed fetcher
func NewFetcher(opts Options) *Fetcher {
	if opts.UserAgent == "" {
		opts.UserAgent = "serialbook/1.0"
	}
	if opts.Limiter == nil {
		opts.Limiter = NewLimiter(0)
	}
	return &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: opts.UserAgent,
		limiter:   opts.Limiter,
		extractor: opts.Extractor,
	}
}

// Fetch retrieves feed at feedURL and converts its entries, in feed order, to source items.
// Positive limit keeps only the first limit entries.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string, limit int) ([]domain.SourceItem, error) {
	body, err := f.get(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}

	entries := feed.Items
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	items := make([]domain.SourceItem, 0, len(entries))
	for _, entry := range entries {
		item := f.toSourceItem(entry)
		if item.ExternalID == "" {
			lgr.Printf("[DEBUG] skip feed entry %q without link or guid", entry.Title)
			continue
		}
		if strings.TrimSpace(item.Body) == "" && f.extractor != nil && item.URL != "" {
			f.extract(ctx, &item)
		}
		items = append(items, item)
	}
	return items, nil
}

func (f *Fetcher) toSourceItem(entry *gofeed.Item) domain.SourceItem {
	item := domain.SourceItem{
		Title: strings.TrimSpace(entry.Title),
		URL:   entry.Link,
		Body:  entry.Content,
	}
	if strings.TrimSpace(item.Body) == "" {
		item.Body = entry.Description
	}

	switch {
	case entry.Link != "":
		item.ExternalID = domain.ExternalIDFromURL(entry.Link)
	case entry.GUID != "":
		item.ExternalID = entry.GUID
	}

	if entry.PublishedParsed != nil {
		ts := *entry.PublishedParsed
		item.Published = &ts
	} else if entry.UpdatedParsed != nil {
		ts := *entry.UpdatedParsed
		item.Published = &ts
	}

	var declared []string
	if entry.Image != nil {
		declared = append(declared, entry.Image.URL)
	}
	for _, enc := range entry.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") {
			declared = append(declared, enc.URL)
		}
	}
	item.Images = collectImages(item.URL, item.Body, declared...)
	return item
}

// extract fills body of item from its page, failures are logged and leave the item as is
func (f *Fetcher) extract(ctx context.Context, item *domain.SourceItem) {
	if err := f.limiter.Wait(ctx); err != nil {
		return
	}
	res, err := f.extractor.Extract(ctx, item.URL)
	if err != nil {
		lgr.Printf("[WARN] failed to extract content for %s: %v", item.URL, err)
		return
	}
	item.Body = res.HTML
	item.Images = collectImages(item.URL, item.Body, item.Images...)
}

func (f *Fetcher) get(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
