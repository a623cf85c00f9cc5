// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
PostgreSQL implementation for the course catalogue's data access.

It leans on Postgres to keep discovery cheap:
  - Array Aggregation: Collects published chapter IDs in a single round-trip.
  - EXISTS Subqueries: Resolves the viewer's purchase state without a second query.
  - FK Cascades: Course deletion removes chapters, purchases, and progress rows.

The repository follows an "Aggregate" pattern where cross-aggregate reads
(chapter counts, video assets) are exposed through the course repository to
keep domain services free of raw SQL.
*/
package course

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

// NewRepository constructs a PostgreSQL backed course store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
Create persists a brand-new draft course.

Parameters:
  - context: context.Context
  - course: *Course

Returns:
  - error: Conflict on duplicate slug, or execution errors
*/
func (repository *postgresRepository) Create(context context.Context, course *Course) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.CatalogCourse.Table,
		strings.Join(schema.CatalogCourse.Columns(), ", "),
	)

	now := time.Now()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		course.ID,
		course.OwnerID,
		course.CategoryID,
		course.Title,
		course.Slug,
		course.Description,
		course.ImageURL,
		course.Price,
		course.IsPublished,
		course.CreatedAt,
		course.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "A course with this slug already exists")
	}

	return nil
}

/*
FindByID returns the course with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Course: Hydrated entity
  - error: apperr.NotFound on absent rows
*/
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Course, error) {

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s = $1",
		strings.Join(schema.CatalogCourse.Columns(), ", "),
		schema.CatalogCourse.Table,
		schema.CatalogCourse.ID,
	)

	course := &Course{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&course.ID,
		&course.OwnerID,
		&course.CategoryID,
		&course.Title,
		&course.Slug,
		&course.Description,
		&course.ImageURL,
		&course.Price,
		&course.IsPublished,
		&course.CreatedAt,
		&course.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course not found")
		}
		return nil, fmt.Errorf("postgres_course_repo_find_failed: %w", err)
	}

	return course, nil
}

/*
Update persists changes to the course's mutable fields.

Parameters:
  - context: context.Context
  - course: *Course

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) Update(context context.Context, course *Course) error {

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1`,
		schema.CatalogCourse.Table,
		schema.CatalogCourse.CategoryID,
		schema.CatalogCourse.Title,
		schema.CatalogCourse.Slug,
		schema.CatalogCourse.Description,
		schema.CatalogCourse.ImageURL,
		schema.CatalogCourse.Price,
		schema.CatalogCourse.UpdatedAt,
		schema.CatalogCourse.ID,
	)

	course.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		course.ID,
		course.CategoryID,
		course.Title,
		course.Slug,
		course.Description,
		course.ImageURL,
		course.Price,
		course.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "A course with this slug already exists")
	}

	return nil
}

/*
SetPublished flips the course's publication flag.

Description: Intentionally ignores RowsAffected so repeated unpublish
requests stay idempotent. Existence is checked at the service layer.

Parameters:
  - context: context.Context
  - id: string
  - published: bool

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) SetPublished(context context.Context, id string, published bool) error {

	query := fmt.Sprintf(
		"UPDATE %s SET %s = $2, %s = $3 WHERE %s = $1",
		schema.CatalogCourse.Table,
		schema.CatalogCourse.IsPublished,
		schema.CatalogCourse.UpdatedAt,
		schema.CatalogCourse.ID,
	)

	_, err := repository.pool.Exec(context, query, id, published, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_course_repo_set_published_failed: %w", err)
	}

	return nil
}

/*
Delete permanently removes the course row.

Description: Dependent rows (chapters, video assets, attachments, purchases,
progress) are removed by ON DELETE CASCADE constraints.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1",
		schema.CatalogCourse.Table,
		schema.CatalogCourse.ID,
	)

	_, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_course_repo_delete_failed: %w", err)
	}

	return nil
}

/*
ListByOwner returns a page of the instructor's courses, newest first.

Parameters:
  - context: context.Context
  - ownerID: string
  - limit: int
  - offset: int

Returns:
  - []*Course: Owned courses
  - int: Total owned count
  - error: Execution errors
*/
func (repository *postgresRepository) ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Course, int, error) {

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s = $1",
		schema.CatalogCourse.Table,
		schema.CatalogCourse.OwnerID,
	)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, ownerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_course_repo_count_owned_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		strings.Join(schema.CatalogCourse.Columns(), ", "),
		schema.CatalogCourse.Table,
		schema.CatalogCourse.OwnerID,
		schema.CatalogCourse.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_course_repo_list_by_owner_failed: %w", err)
	}
	defer rows.Close()

	var courses []*Course
	for rows.Next() {
		course := &Course{}
		err := rows.Scan(
			&course.ID,
			&course.OwnerID,
			&course.CategoryID,
			&course.Title,
			&course.Slug,
			&course.Description,
			&course.ImageURL,
			&course.Price,
			&course.IsPublished,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_course_repo_scan_failed: %w", err)
		}
		courses = append(courses, course)
	}

	return courses, total, nil
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
		return 0, fmt.Errorf("postgres_course_repo_count_chapters_failed: %w", err)
	}

	return count, nil
}

/*
ListVideoAssetIDs returns the remote provider asset IDs referenced by the
course's chapters.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - []string: Provider asset identifiers
  - error: Execution errors
*/
func (repository *postgresRepository) ListVideoAssetIDs(context context.Context, courseID string) ([]string, error) {

	query := fmt.Sprintf(`
		SELECT va.%s
		FROM %s va
		JOIN %s ch ON va.%s = ch.%s
		WHERE ch.%s = $1`,
		schema.CatalogVideoAsset.AssetID,
		schema.CatalogVideoAsset.Table,
		schema.CatalogChapter.Table,
		schema.CatalogVideoAsset.ChapterID,
		schema.CatalogChapter.ID,
		schema.CatalogChapter.CourseID,
	)

	rows, err := repository.pool.Query(context, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("postgres_course_repo_list_assets_failed: %w", err)
	}
	defer rows.Close()

	var assetIDs []string
	for rows.Next() {
		var assetID string
		if err := rows.Scan(&assetID); err != nil {
			return nil, fmt.Errorf("postgres_course_repo_scan_asset_failed: %w", err)
		}
		assetIDs = append(assetIDs, assetID)
	}

	return assetIDs, nil
}

/*
ListPublished returns a page of published courses matching the filter,
newest first.

Description: Resolves the category name, the ordered list of published
chapter IDs, and the viewer's purchase state in a single round-trip.
Title matching is a case-sensitive substring search. The total match
count is resolved by a companion count query sharing the same filters.

Parameters:
  - context: context.Context
  - filter: DiscoveryFilter
  - viewerID: string (empty for anonymous viewers)
  - limit: int
  - offset: int

Returns:
  - []*DiscoveryRow: Matched courses
  - int: Total match count
  - error: Execution errors
*/
func (repository *postgresRepository) ListPublished(context context.Context, filter DiscoveryFilter, viewerID string, limit, offset int) ([]*DiscoveryRow, int, error) {

	// Companion count query, sharing the discovery filters
	var countBuilder strings.Builder
	var countArgs []any

	countBuilder.WriteString(fmt.Sprintf(
		"SELECT COUNT(*) FROM %s c WHERE c.%s = TRUE",
		schema.CatalogCourse.Table,
		schema.CatalogCourse.IsPublished,
	))

	if filter.Title != "" {
		countBuilder.WriteString(fmt.Sprintf(" AND c.%s LIKE $%d", schema.CatalogCourse.Title, len(countArgs)+1))
		countArgs = append(countArgs, "%"+filter.Title+"%")
	}
	if filter.CategoryID != "" {
		countBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CatalogCourse.CategoryID, len(countArgs)+1))
		countArgs = append(countArgs, filter.CategoryID)
	}

	var total int
	if err := repository.pool.QueryRow(context, countBuilder.String(), countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_course_repo_count_published_failed: %w", err)
	}

	// Query construction with category and purchase resolution
	var queryBuilder strings.Builder
	var args []any

	queryBuilder.WriteString(fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			cat.%s,
			COALESCE((
				SELECT array_agg(ch.%s ORDER BY ch.%s ASC)
				FROM %s ch
				WHERE ch.%s = c.%s AND ch.%s = TRUE
			), '{}'),
			EXISTS(
				SELECT 1 FROM %s p
				WHERE p.%s = c.%s AND p.%s = $1
			)
		FROM %s c
		LEFT JOIN %s cat ON c.%s = cat.%s
		WHERE c.%s = TRUE
	`,
		schema.CatalogCourse.ID, schema.CatalogCourse.OwnerID, schema.CatalogCourse.CategoryID,
		schema.CatalogCourse.Title, schema.CatalogCourse.Slug, schema.CatalogCourse.Description,
		schema.CatalogCourse.ImageURL, schema.CatalogCourse.Price, schema.CatalogCourse.IsPublished,
		schema.CatalogCourse.CreatedAt, schema.CatalogCourse.UpdatedAt,
		schema.CatalogCategory.Name,
		schema.CatalogChapter.ID, schema.CatalogChapter.Position,
		schema.CatalogChapter.Table,
		schema.CatalogChapter.CourseID, schema.CatalogCourse.ID, schema.CatalogChapter.IsPublished,
		schema.CommercePurchase.Table,
		schema.CommercePurchase.CourseID, schema.CatalogCourse.ID, schema.CommercePurchase.UserID,
		schema.CatalogCourse.Table,
		schema.CatalogCategory.Table, schema.CatalogCourse.CategoryID, schema.CatalogCategory.ID,
		schema.CatalogCourse.IsPublished,
	))
	args = append(args, viewerID)

	// Title substring filter injection
	if filter.Title != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s LIKE $%d", schema.CatalogCourse.Title, len(args)+1))
		args = append(args, "%"+filter.Title+"%")
	}

	// Category filter injection
	if filter.CategoryID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND c.%s = $%d", schema.CatalogCourse.CategoryID, len(args)+1))
		args = append(args, filter.CategoryID)
	}

	queryBuilder.WriteString(fmt.Sprintf(
		" ORDER BY c.%s DESC LIMIT $%d OFFSET $%d",
		schema.CatalogCourse.CreatedAt, len(args)+1, len(args)+2,
	))
	args = append(args, limit, offset)

	// Query execution
	rows, err := repository.pool.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_course_repo_list_published_failed: %w", err)
	}
	defer rows.Close()

	// Row Iteration and Entity Hydration
	var results []*DiscoveryRow
	for rows.Next() {
		row := &DiscoveryRow{}
		err := rows.Scan(
			&row.ID,
			&row.OwnerID,
			&row.CategoryID,
			&row.Title,
			&row.Slug,
			&row.Description,
			&row.ImageURL,
			&row.Price,
			&row.IsPublished,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.CategoryName,
			&row.ChapterIDs,
			&row.Purchased,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_course_repo_scan_discovery_failed: %w", err)
		}
		results = append(results, row)
	}

	return results, total, nil
}
