package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/serialbook/pkg/domain"
)

// CreatorRepository handles creator-related database operations
type CreatorRepository struct {
	db *sqlx.DB
}

type creatorSQL struct {
	Slug       string     `db:"slug"`
	Name       string     `db:"name"`
	URL        string     `db:"url"`
	Enabled    bool       `db:"enabled"`
	LastSync   *time.Time `db:"last_sync"`
	TotalPosts int        `db:"total_posts"`
}

// NewCreatorRepository creates a new creator repository
func NewCreatorRepository(db *sqlx.DB) *CreatorRepository {
	return &CreatorRepository{db: db}
}

// Save adds creator or updates name, url and enabled flag of the existing one
func (r *CreatorRepository) Save(ctx context.Context, c domain.Creator) error {
	if c.Slug == "" {
		return errors.New("save creator: empty slug")
	}
	return withRetry(ctx, "save creator", func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO creators (slug, name, url, enabled) VALUES (?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET name = excluded.name, url = excluded.url, enabled = excluded.enabled`,
			c.Slug, c.Name, c.URL, c.Enabled)
		return err
	})
}

// Remove deletes creator, stored posts are kept. Returns ErrNotFound for unknown slug.
func (r *CreatorRepository) Remove(ctx context.Context, slug string) error {
	return withRetry(ctx, "remove creator", func() error {
		res, err := r.db.ExecContext(ctx, "DELETE FROM creators WHERE slug = ?", slug)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("creator %s: %w", slug, ErrNotFound)
		}
		return nil
	})
}

// Get returns creator by slug
func (r *CreatorRepository) Get(ctx context.Context, slug string) (*domain.Creator, error) {
	var row creatorSQL
	err := r.db.GetContext(ctx, &row,
		"SELECT slug, name, url, enabled, last_sync, total_posts FROM creators WHERE slug = ?", slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get creator %s: %w", slug, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get creator: %w", err)
	}
	c := row.toDomain()
	return &c, nil
}

// List returns creators ordered by slug, only enabled ones if enabledOnly set
func (r *CreatorRepository) List(ctx context.Context, enabledOnly bool) ([]domain.Creator, error) {
	query := "SELECT slug, name, url, enabled, last_sync, total_posts FROM creators"
	if enabledOnly {
		query += " WHERE enabled = 1"
	}
	query += " ORDER BY slug"

	var rows []creatorSQL
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list creators: %w", err)
	}
	res := make([]domain.Creator, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

// UpdateSync sets last sync time and recounts stored posts of creator
func (r *CreatorRepository) UpdateSync(ctx context.Context, slug string, syncTime time.Time) error {
	return withRetry(ctx, "update creator sync", func() error {
		_, err := r.db.ExecContext(ctx, `
			UPDATE creators
			SET last_sync = ?, total_posts = (SELECT COUNT(*) FROM posts WHERE creator_slug = ?)
			WHERE slug = ?`, syncTime.UTC(), slug, slug)
		return err
	})
}

func (c creatorSQL) toDomain() domain.Creator {
	return domain.Creator{
		Slug:       c.Slug,
		Name:       c.Name,
		URL:        c.URL,
		Enabled:    c.Enabled,
		LastSync:   c.LastSync,
		TotalPosts: c.TotalPosts,
	}
}
