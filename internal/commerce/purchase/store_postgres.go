// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package purchase

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

// NewRepository constructs a PostgreSQL backed purchase store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
Create persists a new enrollment.

Description: The UNIQUE (userid, courseid) constraint turns a duplicate
enrollment into a client-safe Conflict.

Parameters:
  - context: context.Context
  - purchase: *Purchase

Returns:
  - error: apperr.Conflict on duplicates, or execution errors
*/
func (repository *postgresRepository) Create(context context.Context, purchase *Purchase) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5)`,
		schema.CommercePurchase.Table,
		strings.Join(schema.CommercePurchase.Columns(), ", "),
	)

	now := time.Now()
	if purchase.CreatedAt.IsZero() {
		purchase.CreatedAt = now
	}
	purchase.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		purchase.ID,
		purchase.UserID,
		purchase.CourseID,
		purchase.CreatedAt,
		purchase.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "Course already purchased")
	}

	return nil
}

/*
GetCourseRef returns the minimal course projection for enrollment vetting.

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
		return nil, fmt.Errorf("postgres_purchase_repo_course_ref_failed: %w", err)
	}

	return ref, nil
}

/*
Owned reports whether the user has purchased the course.

Parameters:
  - context: context.Context
  - userID: string
  - courseID: string

Returns:
  - bool: True when an enrollment exists
  - error: Execution errors
*/
func (repository *postgresRepository) Owned(context context.Context, userID, courseID string) (bool, error) {

	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)",
		schema.CommercePurchase.Table,
		schema.CommercePurchase.UserID,
		schema.CommercePurchase.CourseID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("postgres_purchase_repo_owned_failed: %w", err)
	}

	return exists, nil
}

/*
ListByUser returns a page of the member's enrollments, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int
  - offset: int

Returns:
  - []*Purchase: Enrollments
  - int: Total enrollment count
  - error: Execution errors
*/
func (repository *postgresRepository) ListByUser(context context.Context, userID string, limit, offset int) ([]*Purchase, int, error) {

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM %s WHERE %s = $1",
		schema.CommercePurchase.Table,
		schema.CommercePurchase.UserID,
	)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_purchase_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3`,
		strings.Join(schema.CommercePurchase.Columns(), ", "),
		schema.CommercePurchase.Table,
		schema.CommercePurchase.UserID,
		schema.CommercePurchase.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_purchase_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var purchases []*Purchase
	for rows.Next() {
		item := &Purchase{}
		err := rows.Scan(&item.ID, &item.UserID, &item.CourseID, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_purchase_repo_scan_failed: %w", err)
		}
		purchases = append(purchases, item)
	}

	return purchases, total, nil
}
