package domain

import (
	"net/url"
	"strings"
	"time"
)

// SourceItem represents a raw post as fetched from a creator's feed
type SourceItem struct {
	Title      string
	Body       string // HTML markup
	URL        string
	Images     []string
	Published  *time.Time
	ExternalID string
}

// ExternalIDFromURL derives the stable post id from a post URL path,
// e.g. https://www.patreon.com/posts/chapter-5-123456 -> chapter-5-123456
func ExternalIDFromURL(postURL string) string {
	path := postURL
	if u, err := url.Parse(postURL); err == nil {
		path = u.Path
	}
	path = strings.Trim(path, "/")
	return strings.TrimPrefix(path, "posts/")
}

// StoredPost is a post persisted in the post store
type StoredPost struct {
	SourceItem
	CreatorSlug string
	FetchedAt   time.Time
	IsRead      bool
}

// Adjacent holds ids of the neighbour posts of a creator, empty when absent
type Adjacent struct {
	PrevID string `json:"prev"`
	NextID string `json:"next"`
}
