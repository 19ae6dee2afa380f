package server

import (
	"context"
	"time"

	"github.com/umputun/serialbook/pkg/domain"
	"github.com/umputun/serialbook/pkg/repository"
)

// RepositoryAdapter adapts repositories to server.Database interface
type RepositoryAdapter struct {
	repos *repository.Repositories
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{repos: repos}
}

// ListCreators returns all creators, disabled included
func (r *RepositoryAdapter) ListCreators(ctx context.Context) ([]domain.Creator, error) {
	return r.repos.Creator.List(ctx, false)
}

// GetCreator returns a single creator
func (r *RepositoryAdapter) GetCreator(ctx context.Context, slug string) (*domain.Creator, error) {
	return r.repos.Creator.Get(ctx, slug)
}

// SaveCreator adds or updates a creator
func (r *RepositoryAdapter) SaveCreator(ctx context.Context, c domain.Creator) error {
	return r.repos.Creator.Save(ctx, c)
}

// RemoveCreator deletes a creator, stored posts are kept
func (r *RepositoryAdapter) RemoveCreator(ctx context.Context, slug string) error {
	return r.repos.Creator.Remove(ctx, slug)
}

// ListPosts returns posts of creator, newest first
func (r *RepositoryAdapter) ListPosts(ctx context.Context, creator string, limit, offset int) ([]domain.StoredPost, error) {
	return r.repos.Post.ListByCreator(ctx, creator, limit, offset)
}

// SearchPosts finds posts by title or content
func (r *RepositoryAdapter) SearchPosts(ctx context.Context, query, creator string, limit int) ([]domain.StoredPost, error) {
	return r.repos.Post.Search(ctx, query, creator, limit)
}

// GetPost returns a single post
func (r *RepositoryAdapter) GetPost(ctx context.Context, creator, id string) (*domain.StoredPost, error) {
	return r.repos.Post.Get(ctx, creator, id)
}

// AdjacentPosts returns ids of previous and next posts of the same creator
func (r *RepositoryAdapter) AdjacentPosts(ctx context.Context, creator, id string) (domain.Adjacent, error) {
	return r.repos.Post.Adjacent(ctx, creator, id)
}

// MarkRead sets read flag of a post
func (r *RepositoryAdapter) MarkRead(ctx context.Context, creator, id string, read bool) error {
	return r.repos.Post.MarkRead(ctx, creator, id, read)
}

// CountPosts returns total and unread number of posts, of all creators if creator is empty
func (r *RepositoryAdapter) CountPosts(ctx context.Context, creator string) (total, unread int, err error) {
	if total, err = r.repos.Post.Count(ctx, creator); err != nil {
		return 0, 0, err
	}
	if unread, err = r.repos.Post.UnreadCount(ctx, creator); err != nil {
		return 0, 0, err
	}
	return total, unread, nil
}

// SyncHistory returns recent sync log records, newest first
func (r *RepositoryAdapter) SyncHistory(ctx context.Context, creator string, limit int) ([]domain.SyncLogEntry, error) {
	return r.repos.SyncLog.History(ctx, creator, limit)
}

// LastFullSync returns time of the last full sync, zero if never done
func (r *RepositoryAdapter) LastFullSync(ctx context.Context) (time.Time, error) {
	return r.repos.Setting.GetTime(ctx, domain.SettingLastFullSync)
}
