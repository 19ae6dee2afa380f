// Package archive keeps series as EPUB books on disk. It reads existing books back into chapters,
// merges newly found chapters in chapter order and publishes the result atomically.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/gofrs/flock"

	"github.com/umputun/serialbook/pkg/domain"
)

const lockRetryDelay = 100 * time.Millisecond

// Merger updates EPUB books. Calls for the same path are serialized for the whole
// read-merge-write sequence, both within the process and across processes via a lock file.
type Merger struct {
	render func(w io.Writer, s *domain.Series) error

	mu    sync.Mutex
	paths map[string]*sync.Mutex
}

// MergeResult describes the outcome of a merge
type MergeResult struct {
	Path     string
	Series   *domain.Series // merged series as written
	Existing int            // chapters read from the previous book
	Added    int            // chapters appended by this merge
	Warning  string         // set when the previous book was missing or unreadable
}

// NewMerger makes a merger writing EPUB books
func NewMerger() *Merger {
	return &Merger{render: WriteEPUB, paths: map[string]*sync.Mutex{}}
}

// Generate writes a new book for the series at path, replacing any previous book
func (m *Merger) Generate(ctx context.Context, s *domain.Series, path string) error {
	unlock, err := m.lock(ctx, path)
	if err != nil {
		return err
	}
	defer unlock()

	if err := m.writeAtomic(path, s); err != nil {
		return err
	}
	lgr.Printf("[INFO] created book %s with %d chapters", path, len(s.Chapters))
	return nil
}

// Merge reads the book at path, adds newChapters, re-sorts all chapters and writes the book back.
// meta provides title, author and origin when the previous book is missing or lacks them.
// Missing or unreadable book is not an error, merge starts from an empty chapter list and sets Warning.
// newChapters are expected to be filtered already, overlapping chapters are kept as separate entries.
func (m *Merger) Merge(ctx context.Context, path string, meta domain.Series, newChapters []domain.Chapter) (*MergeResult, error) {
	return m.MergeSelected(ctx, path, meta, func([]domain.Chapter) []domain.Chapter { return newChapters })
}

// MergeSelected works like Merge, but new chapters are picked by selectNew from the chapters
// of the existing book while the book is locked. selectNew may set numbers of existing chapters
// with headings the reduced patterns can't number, merged chapters are sorted with those numbers.
// Nothing is written if an existing book gets no new chapters.
func (m *Merger) MergeSelected(ctx context.Context, path string, meta domain.Series,
	selectNew func(existing []domain.Chapter) []domain.Chapter) (*MergeResult, error) {
	unlock, err := m.lock(ctx, path)
	if err != nil {
		return nil, err
	}
	defer unlock()

	res := &MergeResult{Path: path}
	merged := &domain.Series{Key: meta.Key, Author: meta.Author, OriginURL: meta.OriginURL}

	existing, err := ReadEPUB(path)
	switch {
	case err == nil:
		res.Existing = len(existing.Chapters)
		merged.Chapters = append(merged.Chapters, existing.Chapters...)
		if existing.Key != "" && existing.Key != "Unknown" {
			merged.Key = existing.Key
		}
		if existing.Author != "" && existing.Author != "Unknown" {
			merged.Author = existing.Author
		}
		if existing.OriginURL != "" {
			merged.OriginURL = existing.OriginURL
		}
	case errors.Is(err, fs.ErrNotExist):
		res.Warning = fmt.Sprintf("book %s not found, starting with empty chapter list", path)
	default:
		res.Warning = fmt.Sprintf("can't read book %s, starting with empty chapter list: %v", path, err)
	}
	if res.Warning != "" {
		lgr.Printf("[WARN] %s", res.Warning)
	}

	newChapters := selectNew(merged.Chapters)
	res.Added = len(newChapters)
	res.Series = merged
	if res.Added == 0 && res.Warning == "" {
		lgr.Printf("[DEBUG] no new chapters for %s", filepath.Base(path))
		return res, nil
	}

	merged.Chapters = append(merged.Chapters, newChapters...)
	merged.SortChapters()

	if err := m.writeAtomic(path, merged); err != nil {
		return nil, err
	}
	lgr.Printf("[INFO] added %d chapter(s) to %s, total %d", res.Added, filepath.Base(path), len(merged.Chapters))
	return res, nil
}

// writeAtomic renders series into a temp file next to path and renames it over path.
// On any failure the temp file is removed and the previous file at path stays untouched.
func (m *Merger) writeAtomic(path string, s *domain.Series) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create book directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = tmp.Close()
		}
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			lgr.Printf("[WARN] failed to remove temp file %s: %v", tmpName, rmErr)
		}
	}()

	if err := m.render(tmp, s); err != nil {
		return fmt.Errorf("render book: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil { //nolint:gosec // books are meant to be readable
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace book: %w", err)
	}
	return nil
}

// lock acquires in-process and file locks for path, returns unlock func
func (m *Merger) lock(ctx context.Context, path string) (func(), error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}

	m.mu.Lock()
	pm, ok := m.paths[key]
	if !ok {
		pm = &sync.Mutex{}
		m.paths[key] = pm
	}
	m.mu.Unlock()

	pm.Lock()

	if err := os.MkdirAll(filepath.Dir(key), 0o750); err != nil {
		pm.Unlock()
		return nil, fmt.Errorf("create book directory: %w", err)
	}
	fl := flock.New(key + ".lock")
	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		pm.Unlock()
		if err == nil {
			err = ctx.Err()
		}
		return nil, fmt.Errorf("lock book %s: %w", path, err)
	}

	return func() {
		if err := fl.Unlock(); err != nil {
			lgr.Printf("[WARN] failed to release lock for %s: %v", path, err)
		}
		pm.Unlock()
	}, nil
}
