package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/serialbook/pkg/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// statusHandler returns server status with post counters and sync state
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"syncing": s.scheduler.Running(),
	}

	total, unread, err := s.db.CountPosts(ctx, "")
	if err != nil {
		renderDBError(w, r, err, "count posts")
		return
	}
	status["posts"], status["unread"] = total, unread

	creators, err := s.db.ListCreators(ctx)
	if err != nil {
		renderDBError(w, r, err, "list creators")
		return
	}
	status["creators"] = len(creators)

	lastFull, err := s.db.LastFullSync(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to get last full sync time: %v", err)
	}
	if !lastFull.IsZero() {
		status["last_full_sync"] = lastFull
	}
	renderJSON(w, r, http.StatusOK, status)
}

// listCreatorsHandler returns all creators
func (s *Server) listCreatorsHandler(w http.ResponseWriter, r *http.Request) {
	creators, err := s.db.ListCreators(r.Context())
	if err != nil {
		renderDBError(w, r, err, "list creators")
		return
	}
	renderJSON(w, r, http.StatusOK, toCreatorViews(creators))
}

// addCreatorHandler adds a creator from JSON body with url and optional name
func (s *Server) addCreatorHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL  string `json:"url"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		renderError(w, r, fmt.Errorf("creator URL is required"), http.StatusBadRequest)
		return
	}
	slug := domain.SlugFromURL(req.URL)
	if slug == "" {
		renderError(w, r, fmt.Errorf("can't get creator slug from %q", req.URL), http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		req.Name = domain.NameFromSlug(slug)
	}

	creator := domain.Creator{Slug: slug, Name: req.Name, URL: req.URL, Enabled: true}
	if err := s.db.SaveCreator(r.Context(), creator); err != nil {
		renderDBError(w, r, err, "save creator")
		return
	}
	lgr.Printf("[INFO] creator %s added", slug)
	renderJSON(w, r, http.StatusCreated, toCreatorView(creator))
}

// removeCreatorHandler removes a creator, stored posts are kept
func (s *Server) removeCreatorHandler(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := s.db.RemoveCreator(r.Context(), slug); err != nil {
		renderDBError(w, r, err, "remove creator")
		return
	}
	lgr.Printf("[INFO] creator %s removed", slug)
	w.WriteHeader(http.StatusNoContent)
}

// listPostsHandler returns page of creator's posts, newest first
func (s *Server) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pagination(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	posts, err := s.db.ListPosts(r.Context(), r.PathValue("slug"), limit, offset)
	if err != nil {
		renderDBError(w, r, err, "list posts")
		return
	}
	renderJSON(w, r, http.StatusOK, toPostViews(posts))
}

// getPostHandler returns a single post with content and ids of its neighbours
func (s *Server) getPostHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug, id := r.PathValue("slug"), r.PathValue("id")

	post, err := s.db.GetPost(ctx, slug, id)
	if err != nil {
		renderDBError(w, r, err, "get post")
		return
	}
	adj, err := s.db.AdjacentPosts(ctx, slug, id)
	if err != nil {
		renderDBError(w, r, err, "get adjacent posts")
		return
	}
	renderJSON(w, r, http.StatusOK, postDetails{postView: toPostView(post, true), Prev: adj.PrevID, Next: adj.NextID})
}

// markReadHandler marks post as read or unread
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	action := r.PathValue("action")
	if action != "read" && action != "unread" {
		renderError(w, r, fmt.Errorf("invalid action"), http.StatusBadRequest)
		return
	}
	if err := s.db.MarkRead(r.Context(), r.PathValue("slug"), r.PathValue("id"), action == "read"); err != nil {
		renderDBError(w, r, err, "mark post")
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"id": r.PathValue("id"), "is_read": action == "read"})
}

// seriesHandler previews series detected in stored posts of a creator
func (s *Server) seriesHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := r.PathValue("slug")
	if _, err := s.db.GetCreator(ctx, slug); err != nil {
		renderDBError(w, r, err, "get creator")
		return
	}
	det, err := s.detector.Detect(ctx, slug)
	if err != nil {
		renderDBError(w, r, err, "detect series")
		return
	}
	renderJSON(w, r, http.StatusOK, det)
}

// historyHandler returns recent syncs of a creator
func (s *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	limit, _, err := pagination(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("limit") == "" {
		limit = 10
	}
	entries, err := s.db.SyncHistory(r.Context(), r.PathValue("slug"), limit)
	if err != nil {
		renderDBError(w, r, err, "get sync history")
		return
	}
	renderJSON(w, r, http.StatusOK, toSyncLogViews(entries))
}

// searchHandler finds posts by title or content, optionally of a single creator
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		renderError(w, r, fmt.Errorf("search query is required"), http.StatusBadRequest)
		return
	}
	limit, _, err := pagination(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	posts, err := s.db.SearchPosts(r.Context(), query, r.URL.Query().Get("creator"), limit)
	if err != nil {
		renderDBError(w, r, err, "search posts")
		return
	}
	renderJSON(w, r, http.StatusOK, toPostViews(posts))
}

// syncStatusHandler returns sync state and report of the last completed sync
func (s *Server) syncStatusHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, map[string]any{"running": s.scheduler.Running(), "last": s.scheduler.LastReport()})
}

// syncHandler requests immediate sync of all creators, full if full=true passed
func (s *Server) syncHandler(w http.ResponseWriter, r *http.Request) {
	full, _ := strconv.ParseBool(r.URL.Query().Get("full"))
	if !s.scheduler.Trigger(full) {
		renderError(w, r, errors.New("sync already requested"), http.StatusConflict)
		return
	}
	lgr.Printf("[INFO] sync requested, full: %v", full)
	renderJSON(w, r, http.StatusAccepted, map[string]any{"status": "accepted", "full": full})
}

// pagination parses limit and offset query params
func pagination(r *http.Request) (limit, offset int, err error) {
	limit = defaultPageSize
	if v := r.URL.Query().Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", v)
		}
		limit = min(limit, maxPageSize)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if offset, err = strconv.Atoi(v); err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", v)
		}
	}
	return limit, offset, nil
}
