package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Service provides hall of shame persistence backed by Postgres.
type Service struct {
	db *sql.DB
}

// Awards are the standing category winners plus the overall worst entry.
type Awards struct {
	WorstOverall      *Entry `json:"worst_overall"`
	BloatKing         *Entry `json:"bloat_king"`
	SecurityNightmare *Entry `json:"security_nightmare"`
	SpaghettiMaster   *Entry `json:"spaghetti_master"`
}

// NewService creates a new leaderboard Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Add inserts an entry and returns it with its assigned ID and timestamp.
func (s *Service) Add(ctx context.Context, e *Entry) (*Entry, error) {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO shame_entries (repo_url, repo_name, score, grade, category, remark, highlights)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, submitted_at`,
		e.RepoURL, e.RepoName, e.Score, e.Grade, e.Category, e.Remark, pq.Array(e.Highlights),
	).Scan(&e.ID, &e.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("add shame entry %s: %w", e.RepoName, err)
	}
	return e, nil
}

// List returns entries ordered worst first, capped at limit.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, repo_url, repo_name, score, grade, category, remark, highlights, submitted_at
		 FROM shame_entries ORDER BY score ASC, submitted_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list shame entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Worst returns the lowest-scoring entry, or sql.ErrNoRows when the hall
// is empty.
func (s *Service) Worst(ctx context.Context) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, repo_url, repo_name, score, grade, category, remark, highlights, submitted_at
		 FROM shame_entries ORDER BY score ASC, submitted_at DESC LIMIT 1`,
	)
	e, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("worst shame entry: %w", err)
	}
	return e, nil
}

// CategoryWorst returns the lowest-scoring entry in a category.
func (s *Service) CategoryWorst(ctx context.Context, category string) (*Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, repo_url, repo_name, score, grade, category, remark, highlights, submitted_at
		 FROM shame_entries WHERE category = $1
		 ORDER BY score ASC, submitted_at DESC LIMIT 1`,
		category,
	)
	e, err := scanEntry(row)
	if err != nil {
		return nil, fmt.Errorf("worst %s entry: %w", category, err)
	}
	return e, nil
}

// GetAwards computes the standing awards. Categories with no entries are nil.
func (s *Service) GetAwards(ctx context.Context) (*Awards, error) {
	awards := &Awards{}

	worst, err := s.Worst(ctx)
	if err != nil {
		if errIsNoRows(err) {
			return awards, nil
		}
		return nil, err
	}
	awards.WorstOverall = worst

	for category, slot := range map[string]**Entry{
		CategoryBloatKing:         &awards.BloatKing,
		CategorySecurityNightmare: &awards.SecurityNightmare,
		CategorySpaghettiMaster:   &awards.SpaghettiMaster,
	} {
		e, err := s.CategoryWorst(ctx, category)
		if err != nil {
			if errIsNoRows(err) {
				continue
			}
			return nil, err
		}
		*slot = e
	}
	return awards, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	e := &Entry{}
	err := row.Scan(&e.ID, &e.RepoURL, &e.RepoName, &e.Score, &e.Grade,
		&e.Category, &e.Remark, pq.Array(&e.Highlights), &e.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("scan shame entry: %w", err)
	}
	return e, nil
}

func errIsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
