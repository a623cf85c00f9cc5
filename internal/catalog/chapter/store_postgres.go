// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
PostgreSQL implementation of the chapter aggregate's data access.

Reordering uses a pgx.Batch of independent position updates pipelined over a
single round-trip. Parent-course reads and the publication cascade write are
kept in this repository so chapter state rules never leave the aggregate.
*/
package chapter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davitran/acadia/internal/platform/apperr"
	"github.com/davitran/acadia/internal/platform/database/schema"
	"github.com/davitran/acadia/internal/platform/dberr"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
GetCourseRef returns the minimal parent-course projection.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - *CourseRef: Owner and publication state
  - error: apperr.NotFound on absent rows
*/
func (repository *postgresRepository) GetCourseRef(context context.Context, courseID string) (*CourseRef, error) {

	query := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s WHERE %s = $1",
		schema.CatalogCourse.ID,
		schema.CatalogCourse.OwnerID,
		schema.CatalogCourse.IsPublished,
		schema.CatalogCourse.Table,
		schema.CatalogCourse.ID,
	)

	ref := &CourseRef{}
	err := repository.pool.QueryRow(context, query, courseID).Scan(&ref.ID, &ref.OwnerID, &ref.IsPublished)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course not found")
		}
		return nil, fmt.Errorf("postgres_chapter_repo_course_ref_failed: %w", err)
	}

	return ref, nil
}

/*
Create persists a brand-new draft chapter.

Parameters:
  - context: context.Context
  - chapter: *Chapter

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) Create(context context.Context, chapter *Chapter) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.CatalogChapter.Table,
		strings.Join(schema.CatalogChapter.Columns(), ", "),
	)

	now := time.Now()
	if chapter.CreatedAt.IsZero() {
		chapter.CreatedAt = now
	}
	chapter.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		chapter.ID,
		chapter.CourseID,
		chapter.Title,
		chapter.Description,
		chapter.VideoURL,
		chapter.Position,
		chapter.IsPublished,
		chapter.IsFree,
		chapter.CreatedAt,
		chapter.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByID returns the chapter with the given ID, scoped to a course.

Parameters:
  - context: context.Context
  - courseID: string
  - chapterID: string

Returns:
  - *Chapter: Hydrated entity
  - error: apperr.NotFound on absent rows
*/
func (repository *postgresRepository) FindByID(context context.Context, courseID, chapterID string) (*Chapter, error) {

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1 AND %s = $2",
		strings.Join(schema.CatalogChapter.Columns(), ", "),
		schema.CatalogChapter.Table,
		schema.CatalogChapter.ID,
		schema.CatalogChapter.CourseID,
	)

	chapter := &Chapter{}
	err := repository.pool.QueryRow(context, query, chapterID, courseID).Scan(
		&chapter.ID,
		&chapter.CourseID,
		&chapter.Title,
		&chapter.Description,
		&chapter.VideoURL,
		&chapter.Position,
		&chapter.IsPublished,
		&chapter.IsFree,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Chapter not found")
		}
		return nil, fmt.Errorf("postgres_chapter_repo_find_failed: %w", err)
	}

	return chapter, nil
}

/*
MaxPosition returns the highest position currently used in the course.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - int: Highest position, 0 when the course is empty
  - error: Execution errors
*/
func (repository *postgresRepository) MaxPosition(context context.Context, courseID string) (int, error) {

	query := fmt.Sprintf(
		"SELECT COALESCE(MAX(%s), 0) FROM %s WHERE %s = $1",
		schema.CatalogChapter.Position,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.CourseID,
	)

	var maxPosition int
	if err := repository.pool.QueryRow(context, query, courseID).Scan(&maxPosition); err != nil {
		return 0, fmt.Errorf("postgres_chapter_repo_max_position_failed: %w", err)
	}

	return maxPosition, nil
}

/*
Update persists changes to the chapter's mutable fields.

Parameters:
  - context: context.Context
  - chapter: *Chapter

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) Update(context context.Context, chapter *Chapter) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6
		WHERE %s = $1`,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.Title,
		schema.CatalogChapter.Description,
		schema.CatalogChapter.VideoURL,
		schema.CatalogChapter.IsFree,
		schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.ID,
	)

	chapter.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		chapter.ID,
		chapter.Title,
		chapter.Description,
		chapter.VideoURL,
		chapter.IsFree,
		chapter.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_update_failed: %w", err)
	}

	return nil
}

/*
UpdatePositions applies a batch of independent position writes.

Description: Each update is a standalone statement pipelined via pgx.Batch.
Updates are scoped to the course so a reorder payload can never move
chapters belonging to another course.

Parameters:
  - context: context.Context
  - courseID: string
  - updates: []PositionUpdate

Returns:
  - error: Batch execution failures
*/
func (repository *postgresRepository) UpdatePositions(context context.Context, courseID string, updates []PositionUpdate) error {

	query := fmt.Sprintf(
		"UPDATE %s SET %s = $3, %s = $4 WHERE %s = $1 AND %s = $2",
		schema.CatalogChapter.Table,
		schema.CatalogChapter.Position,
		schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.ID,
		schema.CatalogChapter.CourseID,
	)

	now := time.Now()
	batch := &pgx.Batch{}
	for _, update := range updates {
		batch.Queue(query, update.ChapterID, courseID, update.Position, now)
	}

	results := repository.pool.SendBatch(context, batch)
	defer results.Close()

	for range updates {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("postgres_chapter_repo_reorder_failed: %w", err)
		}
	}

	return nil
}

/*
SetPublished flips a chapter's publication flag.

Parameters:
  - context: context.Context
  - chapterID: string
  - published: bool

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) SetPublished(context context.Context, chapterID string, published bool) error {

	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		schema.CatalogChapter.Table,
		schema.CatalogChapter.IsPublished,
		schema.CatalogChapter.UpdatedAt,
		schema.CatalogChapter.ID,
	)

	_, err := repository.pool.Exec(context, query, chapterID, published, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_set_published_failed: %w", err)
	}

	return nil
}

/*
CountPublished returns how many published chapters the course has.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - int: Published chapter count
  - error: Execution errors
*/
func (repository *postgresRepository) CountPublished(context context.Context, courseID string) (int, error) {

	query := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s = TRUE",
		schema.CatalogChapter.Table,
		schema.CatalogChapter.CourseID,
		schema.CatalogChapter.IsPublished,
	)

	var count int
	if err := repository.pool.QueryRow(context, query, courseID).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres_chapter_repo_count_published_failed: %w", err)
	}

	return count, nil
}

/*
SetCoursePublished flips the parent course's publication flag.

Parameters:
  - context: context.Context
  - courseID: string
  - published: bool

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) SetCoursePublished(context context.Context, courseID string, published bool) error {

	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		schema.CatalogCourse.Table,
		schema.CatalogCourse.IsPublished,
		schema.CatalogCourse.UpdatedAt,
		schema.CatalogCourse.ID,
	)

	_, err := repository.pool.Exec(context, query, courseID, published, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_set_course_published_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes the chapter row.

Description: Progress rows and the video asset link are removed by
ON DELETE CASCADE constraints.

Parameters:
  - context: context.Context
  - chapterID: string

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) Delete(context context.Context, chapterID string) error {

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.CatalogChapter.Table,
		schema.CatalogChapter.ID,
	)

	_, err := repository.pool.Exec(context, query, chapterID)
	if err != nil {
		return fmt.Errorf("postgres_chapter_repo_delete_failed: %w", err)
	}

	return nil
}

/*
FindVideoAsset returns the provider asset linked to a chapter.

Parameters:
  - context: context.Context
  - chapterID: string

Returns:
  - *VideoAsset: Hydrated entity
  - error: apperr.NotFound when no asset is attached
*/
func (repository *postgresRepository) FindVideoAsset(context context.Context, chapterID string) (*VideoAsset, error) {

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.CatalogVideoAsset.Columns(), ", "),
		schema.CatalogVideoAsset.Table,
		schema.CatalogVideoAsset.ChapterID,
	)

	asset := &VideoAsset{}
	err := repository.pool.QueryRow(context, query, chapterID).Scan(
		&asset.ID,
		&asset.ChapterID,
		&asset.AssetID,
		&asset.PlaybackID,
		&asset.IsReady,
		&asset.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("No video attached to this chapter")
		}
		return nil, fmt.Errorf("postgres_chapter_repo_find_asset_failed: %w", err)
	}

	return asset, nil
}

/*
ReplaceVideoAsset upserts the chapter's provider asset link.

Description: The chapterid column carries a UNIQUE constraint; re-attaching
a video replaces the existing row in place.

Parameters:
  - context: context.Context
  - asset: *VideoAsset

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) ReplaceVideoAsset(context context.Context, asset *VideoAsset) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (%s) DO UPDATE
		SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.CatalogVideoAsset.Table,
		strings.Join(schema.CatalogVideoAsset.Columns(), ", "),
		schema.CatalogVideoAsset.ChapterID,
		schema.CatalogVideoAsset.AssetID, schema.CatalogVideoAsset.AssetID,
		schema.CatalogVideoAsset.PlaybackID, schema.CatalogVideoAsset.PlaybackID,
		schema.CatalogVideoAsset.IsReady, schema.CatalogVideoAsset.IsReady,
	)

	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		asset.ID,
		asset.ChapterID,
		asset.AssetID,
		asset.PlaybackID,
		asset.IsReady,
		asset.CreatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Video asset conflict")
	}

	return nil
}

/*
HasPurchase reports whether the user has purchased the course.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - bool: True when an enrollment exists
  - error: Execution errors
*/
func (repository *postgresRepository) HasPurchase(context context.Context, userID, courseID string) (bool, error) {

	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		schema.CommercePurchase.Table,
		schema.CommercePurchase.UserID,
		schema.CommercePurchase.CourseID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_chapter_repo_has_purchase_failed: %w", err)
	}

	return exists, nil
}
