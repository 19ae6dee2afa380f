package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/serialbook/pkg/domain"
)

// SyncLogRepository keeps history of creator syncs
type SyncLogRepository struct {
	db *sqlx.DB
}

type syncLogSQL struct {
	CreatorSlug  string    `db:"creator_slug"`
	SyncTime     time.Time `db:"sync_time"`
	PostsAdded   int       `db:"posts_added"`
	Status       string    `db:"status"`
	ErrorMessage string    `db:"error_message"`
}

// NewSyncLogRepository creates a new sync log repository
func NewSyncLogRepository(db *sqlx.DB) *SyncLogRepository {
	return &SyncLogRepository{db: db}
}

// Log records a sync attempt
func (r *SyncLogRepository) Log(ctx context.Context, entry domain.SyncLogEntry) error {
	if entry.SyncTime.IsZero() {
		entry.SyncTime = time.Now()
	}
	row := syncLogSQL{
		CreatorSlug:  entry.CreatorSlug,
		SyncTime:     entry.SyncTime.UTC(),
		PostsAdded:   entry.PostsAdded,
		Status:       string(entry.Status),
		ErrorMessage: entry.ErrorMessage,
	}
	return withRetry(ctx, "log sync", func() error {
		_, err := r.db.NamedExecContext(ctx, `
			INSERT INTO sync_log (creator_slug, sync_time, posts_added, status, error_message)
			VALUES (:creator_slug, :sync_time, :posts_added, :status, :error_message)`, row)
		return err
	})
}

// History returns the latest sync records of creator, of all creators if creator is empty, newest first
func (r *SyncLogRepository) History(ctx context.Context, creator string, limit int) ([]domain.SyncLogEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	var rows []syncLogSQL
	err := r.db.SelectContext(ctx, &rows, `
		SELECT creator_slug, sync_time, posts_added, status, error_message FROM sync_log
		WHERE (? = '' OR creator_slug = ?) ORDER BY sync_time DESC, id DESC LIMIT ?`, creator, creator, limit)
	if err != nil {
		return nil, fmt.Errorf("get sync history: %w", err)
	}
	res := make([]domain.SyncLogEntry, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.SyncLogEntry{
			CreatorSlug:  row.CreatorSlug,
			SyncTime:     row.SyncTime,
			PostsAdded:   row.PostsAdded,
			Status:       domain.SyncStatus(row.Status),
			ErrorMessage: row.ErrorMessage,
		})
	}
	return res, nil
}
