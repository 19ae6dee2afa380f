package domain

import (
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Creator represents a followed creator
type Creator struct {
	Slug       string
	Name       string
	URL        string
	Enabled    bool
	LastSync   *time.Time
	TotalPosts int
}

// SyncStatus of a single creator sync
type SyncStatus string

const (
	SyncSuccess SyncStatus = "success"
	SyncError   SyncStatus = "error"
)

// SyncLogEntry records the outcome of one creator sync
type SyncLogEntry struct {
	CreatorSlug  string
	SyncTime     time.Time
	PostsAdded   int
	Status       SyncStatus
	ErrorMessage string
}

// SlugFromURL extracts creator slug from a creator URL. Supported forms:
// https://www.patreon.com/c/name/posts, https://www.patreon.com/c/name and https://www.patreon.com/name
func SlugFromURL(creatorURL string) string {
	path := creatorURL
	if u, err := url.Parse(creatorURL); err == nil && u.Host != "" {
		path = u.Path
	}
	path = strings.Trim(path, "/")
	path = strings.TrimPrefix(path, "c/")
	path = strings.TrimSuffix(path, "/posts")
	slug, _, _ := strings.Cut(path, "/")
	return slug
}

// NameFromSlug makes a display name from a slug, "primal-hunter" -> "Primal Hunter"
func NameFromSlug(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	return cases.Title(language.English).String(strings.Join(words, " "))
}
