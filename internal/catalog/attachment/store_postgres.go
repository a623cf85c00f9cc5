// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package attachment

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
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed attachment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
GetCourseRef returns the minimal parent-course projection.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - *CourseRef: Owner projection
  - error: apperr.NotFound on absent rows
*/
func (repository *postgresRepository) GetCourseRef(context context.Context, courseID string) (*CourseRef, error) {

	query := fmt.Sprintf(
		"SELECT %s, %s FROM %s WHERE %s = $1",
		schema.CatalogCourse.ID,
		schema.CatalogCourse.OwnerID,
		schema.CatalogCourse.Table,
		schema.CatalogCourse.ID,
	)

	ref := &CourseRef{}
	err := repository.pool.QueryRow(context, query, courseID).Scan(&ref.ID, &ref.OwnerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Course not found")
		}
		return nil, fmt.Errorf("postgres_attachment_repo_course_ref_failed: %w", err)
	}

	return ref, nil
}

/*
Create persists a new attachment.

Parameters:
  - context: context.Context
  - attachment: *Attachment

Returns:
  - error: Execution errors
*/
func (repository *postgresRepository) Create(context context.Context, attachment *Attachment) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.CatalogAttachment.Table,
		strings.Join(schema.CatalogAttachment.Columns(), ", "),
	)

	now := time.Now()
	if attachment.CreatedAt.IsZero() {
		attachment.CreatedAt = now
	}
	attachment.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		attachment.ID,
		attachment.CourseID,
		attachment.Name,
		attachment.URL,
		attachment.CreatedAt,
		attachment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_attachment_repo_create_failed: %w", err)
	}

	return nil
}

/*
ListByCourse returns the course's attachments, newest first.

Parameters:
  - context: context.Context
  - courseID: string

Returns:
  - []*Attachment: Linked files
  - error: Execution errors
*/
func (repository *postgresRepository) ListByCourse(context context.Context, courseID string) ([]*Attachment, error) {

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		strings.Join(schema.CatalogAttachment.Columns(), ", "),
		schema.CatalogAttachment.Table,
		schema.CatalogAttachment.CourseID,
		schema.CatalogAttachment.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("postgres_attachment_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var attachments []*Attachment
	for rows.Next() {
		item := &Attachment{}
		err := rows.Scan(
			&item.ID,
			&item.CourseID,
			&item.Name,
			&item.URL,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_attachment_repo_scan_failed: %w", err)
		}
		attachments = append(attachments, item)
	}

	return attachments, nil
}

/*
Delete removes an attachment, scoped to its course.

Description: The course scope keeps a crafted URL from deleting another
course's file. Zero affected rows surface as NotFound.

Parameters:
  - context: context.Context
  - courseID: string
  - attachmentID: string

Returns:
  - error: apperr.NotFound when no row matched, or execution errors
*/
func (repository *postgresRepository) Delete(context context.Context, courseID, attachmentID string) error {

	query := fmt.Sprintf(
		"DELETE FROM %s WHERE %s = $1 AND %s = $2",
		schema.CatalogAttachment.Table,
		schema.CatalogAttachment.ID,
		schema.CatalogAttachment.CourseID,
	)

	tag, err := repository.pool.Exec(context, query, attachmentID, courseID)
	if err != nil {
		return fmt.Errorf("postgres_attachment_repo_delete_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Attachment not found")
	}

	return nil
}
