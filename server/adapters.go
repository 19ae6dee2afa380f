package server

import (
	"time"

	"github.com/umputun/serialbook/pkg/domain"
)

// creatorView is creator as returned by API
type creatorView struct {
	Slug       string     `json:"slug"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Enabled    bool       `json:"enabled"`
	LastSync   *time.Time `json:"last_sync,omitempty"`
	TotalPosts int        `json:"total_posts"`
}

// postView is post as returned by API, content included only for a single post
type postView struct {
	ID        string     `json:"id"`
	Creator   string     `json:"creator"`
	Title     string     `json:"title"`
	URL       string     `json:"url"`
	Published *time.Time `json:"published,omitempty"`
	FetchedAt time.Time  `json:"fetched_at"`
	IsRead    bool       `json:"is_read"`
	Images    []string   `json:"images,omitempty"`
	Content   string     `json:"content,omitempty"`
}

// postDetails is a single post with its neighbours
type postDetails struct {
	postView
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

// syncLogView is sync history record as returned by API
type syncLogView struct {
	Creator    string    `json:"creator"`
	SyncTime   time.Time `json:"sync_time"`
	PostsAdded int       `json:"posts_added"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

func toCreatorView(c domain.Creator) creatorView {
	return creatorView{Slug: c.Slug, Name: c.Name, URL: c.URL, Enabled: c.Enabled, LastSync: c.LastSync, TotalPosts: c.TotalPosts}
}

func toCreatorViews(creators []domain.Creator) []creatorView {
	res := make([]creatorView, 0, len(creators))
	for _, c := range creators {
		res = append(res, toCreatorView(c))
	}
	return res
}

func toPostView(p *domain.StoredPost, withContent bool) postView {
	v := postView{
		ID:        p.ExternalID,
		Creator:   p.CreatorSlug,
		Title:     p.Title,
		URL:       p.URL,
		Published: p.Published,
		FetchedAt: p.FetchedAt,
		IsRead:    p.IsRead,
		Images:    p.Images,
	}
	if withContent {
		v.Content = p.Body
	}
	return v
}

func toPostViews(posts []domain.StoredPost) []postView {
	res := make([]postView, 0, len(posts))
	for i := range posts {
		res = append(res, toPostView(&posts[i], false))
	}
	return res
}

func toSyncLogViews(entries []domain.SyncLogEntry) []syncLogView {
	res := make([]syncLogView, 0, len(entries))
	for _, e := range entries {
		res = append(res, syncLogView{Creator: e.CreatorSlug, SyncTime: e.SyncTime, PostsAdded: e.PostsAdded,
			Status: string(e.Status), Error: e.ErrorMessage})
	}
	return res
}
