// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davitran/acadia/internal/platform/database/schema"
	"github.com/davitran/acadia/internal/platform/dberr"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed progress store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
Upsert records or updates a member's completion state for a chapter.

Description: Relies on the UNIQUE (userid, chapterid) constraint; a repeated
mark flips the flag in place and refreshes updatedat.

Parameters:
  - context: context.Context
  - progress: *UserProgress

Returns:
  - error: NotFound (absent chapter via FK) or execution errors
*/
func (repository *postgresRepository) Upsert(context context.Context, progress *UserProgress) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s, %s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.LearningUserProgress.Table,
		strings.Join(schema.LearningUserProgress.Columns(), ", "),
		schema.LearningUserProgress.UserID,
		schema.LearningUserProgress.ChapterID,
		schema.LearningUserProgress.IsCompleted, schema.LearningUserProgress.IsCompleted,
		schema.LearningUserProgress.UpdatedAt, schema.LearningUserProgress.UpdatedAt,
	)

	now := time.Now()
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = now
	}
	progress.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		progress.ID,
		progress.UserID,
		progress.ChapterID,
		progress.IsCompleted,
		progress.CreatedAt,
		progress.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Progress already recorded")
	}

	return nil
}

/*
CountPublishedChapters returns how many published chapters the course has.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - int: Published chapter count
  - error: Execution errors
*/
func (repository *postgresRepository) CountPublishedChapters(context context.Context, courseID string) (int, error) {

	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = TRUE",
		schema.CatalogChapter.Table,
		schema.CatalogChapter.CourseID,
		schema.CatalogChapter.IsPublished,
	)

	var count int
	if err := repository.pool.QueryRow(context, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_progress_repo_count_published_failed: %w", err)
	}

	return count, nil
}

/*
CountCompleted returns how many of the course's published chapters the
member has completed.

Description: Only published chapters count toward progress, so completions
on since-unpublished chapters are excluded at read time.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - int: Completed published chapter count
  - error: Execution errors
*/
func (repository *postgresRepository) CountCompleted(context context.Context, userID, courseID string) (int, error) {

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s up
		JOIN %s ch ON up.%s = ch.%s
		WHERE up.%s = $1 AND ch.%s = $2 AND ch.%s = TRUE AND up.%s = TRUE`,
		schema.LearningUserProgress.Table,
		schema.CatalogChapter.Table,
		schema.LearningUserProgress.ChapterID, schema.CatalogChapter.ID,
		schema.LearningUserProgress.UserID,
		schema.CatalogChapter.CourseID,
		schema.CatalogChapter.IsPublished,
		schema.LearningUserProgress.IsCompleted,
	)

	var count int
	if err := repository.pool.QueryRow(context, query, userID, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_progress_repo_count_completed_failed: %w", err)
	}

	return count, nil
}
