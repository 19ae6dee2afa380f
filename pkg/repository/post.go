package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/serialbook/pkg/domain"
)

// ErrNotFound returned when requested record doesn't exist
var ErrNotFound = errors.New("not found")

// PostRepository handles post-related database operations
type PostRepository struct {
	db *sqlx.DB
}

// postSQL represents a post row
type postSQL struct {
	ID          string     `db:"id"`
	CreatorSlug string     `db:"creator_slug"`
	Title       string     `db:"title"`
	Content     string     `db:"content"`
	URL         string     `db:"url"`
	Published   *time.Time `db:"published_date"`
	Images      imagesSQL  `db:"images"`
	FetchedAt   time.Time  `db:"fetched_at"`
	IsRead      bool       `db:"is_read"`
}

// imagesSQL is a JSON array of image URLs
type imagesSQL []string

// Value implements driver.Valuer for database storage
func (im imagesSQL) Value() (driver.Value, error) {
	if im == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(im))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database retrieval
func (im *imagesSQL) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*im = imagesSQL{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unexpected images type %T", value)
	}
	return json.Unmarshal(data, (*[]string)(im))
}

const postColumns = `id, creator_slug, title, content, url, published_date, images, fetched_at, is_read`

// NewPostRepository creates a new post repository
func NewPostRepository(db *sqlx.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Exists checks if the post with external id is stored for creator
func (r *PostRepository) Exists(ctx context.Context, creator, externalID string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM posts WHERE creator_slug = ? AND id = ?)", creator, externalID)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

// Upsert stores post, replacing content of the already stored post with the same id.
// Read flag and fetch time of an existing post are kept. Returns true if the post was new.
func (r *PostRepository) Upsert(ctx context.Context, post *domain.StoredPost) (inserted bool, err error) {
	row := toPostSQL(post)
	if row.FetchedAt.IsZero() {
		row.FetchedAt = time.Now().UTC()
	}

	err = withRetry(ctx, "upsert post", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		var exists bool
		if err := tx.GetContext(ctx, &exists,
			"SELECT EXISTS(SELECT 1 FROM posts WHERE creator_slug = ? AND id = ?)", row.CreatorSlug, row.ID); err != nil {
			return err
		}

		query := `
			INSERT INTO posts (` + postColumns + `)
			VALUES (:id, :creator_slug, :title, :content, :url, :published_date, :images, :fetched_at, :is_read)
			ON CONFLICT(creator_slug, id) DO UPDATE SET
				title = excluded.title,
				content = excluded.content,
				url = excluded.url,
				published_date = excluded.published_date,
				images = excluded.images
		`
		if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}
		inserted = !exists
		return nil
	})
	return inserted, err
}

// ListExternalIDs returns ids of all stored posts of creator
func (r *PostRepository) ListExternalIDs(ctx context.Context, creator string) (map[string]struct{}, error) {
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, "SELECT id FROM posts WHERE creator_slug = ?", creator); err != nil {
		return nil, fmt.Errorf("list post ids: %w", err)
	}
	res := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		res[id] = struct{}{}
	}
	return res, nil
}

// Get returns a single post, ErrNotFound if missing
func (r *PostRepository) Get(ctx context.Context, creator, externalID string) (*domain.StoredPost, error) {
	var row postSQL
	err := r.db.GetContext(ctx, &row,
		"SELECT "+postColumns+" FROM posts WHERE creator_slug = ? AND id = ?", creator, externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get post %s/%s: %w", creator, externalID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	return row.toDomain(), nil
}

// ListByCreator returns creator's posts, newest first. Posts without published date sort by fetch time.
// Zero limit returns all posts.
func (r *PostRepository) ListByCreator(ctx context.Context, creator string, limit, offset int) ([]domain.StoredPost, error) {
	if limit <= 0 {
		limit = -1 // no limit in sqlite
	}
	query := "SELECT " + postColumns + ` FROM posts WHERE creator_slug = ?
		ORDER BY COALESCE(published_date, fetched_at) DESC, id DESC
		LIMIT ? OFFSET ?`
	var rows []postSQL
	if err := r.db.SelectContext(ctx, &rows, query, creator, limit, offset); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return toDomainPosts(rows), nil
}

// Search finds posts with query in title or content, optionally limited to a single creator
func (r *PostRepository) Search(ctx context.Context, query, creator string, limit int) ([]domain.StoredPost, error) {
	if limit <= 0 {
		limit = 100
	}
	pattern := "%" + query + "%"
	sqlQuery := "SELECT " + postColumns + ` FROM posts
		WHERE (title LIKE ? OR content LIKE ?) AND (? = '' OR creator_slug = ?)
		ORDER BY COALESCE(published_date, fetched_at) DESC
		LIMIT ?`
	var rows []postSQL
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, pattern, pattern, creator, creator, limit); err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return toDomainPosts(rows), nil
}

// MarkRead sets read flag of the post
func (r *PostRepository) MarkRead(ctx context.Context, creator, externalID string, read bool) error {
	return withRetry(ctx, "mark post read", func() error {
		res, err := r.db.ExecContext(ctx, "UPDATE posts SET is_read = ? WHERE creator_slug = ? AND id = ?",
			read, creator, externalID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("post %s/%s: %w", creator, externalID, ErrNotFound)
		}
		return nil
	})
}

// Count returns number of stored posts of creator, of all creators if creator is empty
func (r *PostRepository) Count(ctx context.Context, creator string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM posts WHERE (? = '' OR creator_slug = ?)", creator, creator)
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

// UnreadCount returns number of unread posts of creator, of all creators if creator is empty
func (r *PostRepository) UnreadCount(ctx context.Context, creator string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM posts WHERE (? = '' OR creator_slug = ?) AND is_read = 0",
		creator, creator)
	if err != nil {
		return 0, fmt.Errorf("count unread posts: %w", err)
	}
	return count, nil
}

// LatestPublished returns the newest publish date among creator's posts, nil if none is known
func (r *PostRepository) LatestPublished(ctx context.Context, creator string) (*time.Time, error) {
	var ts []time.Time
	err := r.db.SelectContext(ctx, &ts, `SELECT published_date FROM posts
		WHERE creator_slug = ? AND published_date IS NOT NULL
		ORDER BY published_date DESC LIMIT 1`, creator)
	if err != nil {
		return nil, fmt.Errorf("get latest post date: %w", err)
	}
	if len(ts) == 0 {
		return nil, nil
	}
	return &ts[0], nil
}

// Adjacent returns ids of the previous (older) and next (newer) posts of creator around externalID.
// Ordering uses published date when the post has one and fetch time otherwise.
// Unknown post gives empty Adjacent.
func (r *PostRepository) Adjacent(ctx context.Context, creator, externalID string) (domain.Adjacent, error) {
	var cur struct {
		Published *time.Time `db:"published_date"`
		FetchedAt time.Time  `db:"fetched_at"`
	}
	err := r.db.GetContext(ctx, &cur,
		"SELECT published_date, fetched_at FROM posts WHERE creator_slug = ? AND id = ?", creator, externalID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Adjacent{}, nil
	}
	if err != nil {
		return domain.Adjacent{}, fmt.Errorf("get post dates: %w", err)
	}

	column, pivot := "fetched_at", cur.FetchedAt
	if cur.Published != nil {
		column, pivot = "published_date", *cur.Published
	}

	var res domain.Adjacent
	neighbour := func(cmp, order string) (string, error) {
		var ids []string
		query := fmt.Sprintf("SELECT id FROM posts WHERE creator_slug = ? AND %s %s ? ORDER BY %s %s LIMIT 1",
			column, cmp, column, order)
		if err := r.db.SelectContext(ctx, &ids, query, creator, pivot); err != nil {
			return "", err
		}
		if len(ids) == 0 {
			return "", nil
		}
		return ids[0], nil
	}
	if res.PrevID, err = neighbour("<", "DESC"); err != nil {
		return domain.Adjacent{}, fmt.Errorf("get previous post: %w", err)
	}
	if res.NextID, err = neighbour(">", "ASC"); err != nil {
		return domain.Adjacent{}, fmt.Errorf("get next post: %w", err)
	}
	return res, nil
}

func toPostSQL(p *domain.StoredPost) postSQL {
	row := postSQL{
		ID:          p.ExternalID,
		CreatorSlug: p.CreatorSlug,
		Title:       p.Title,
		Content:     p.Body,
		URL:         p.URL,
		Images:      imagesSQL(p.Images),
		FetchedAt:   p.FetchedAt.UTC(),
		IsRead:      p.IsRead,
	}
	if p.Published != nil {
		ts := p.Published.UTC()
		row.Published = &ts
	}
	return row
}

func (p *postSQL) toDomain() *domain.StoredPost {
	return &domain.StoredPost{
		SourceItem: domain.SourceItem{
			Title:      p.Title,
			Body:       p.Content,
			URL:        p.URL,
			Images:     []string(p.Images),
			Published:  p.Published,
			ExternalID: p.ID,
		},
		CreatorSlug: p.CreatorSlug,
		FetchedAt:   p.FetchedAt,
		IsRead:      p.IsRead,
	}
}

func toDomainPosts(rows []postSQL) []domain.StoredPost {
	res := make([]domain.StoredPost, 0, len(rows))
	for i := range rows {
		res = append(res, *rows[i].toDomain())
	}
	return res
}
