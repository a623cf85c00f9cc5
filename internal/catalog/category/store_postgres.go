// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davitran/acadia/internal/platform/apperr"
	"github.com/davitran/acadia/internal/platform/database/schema"
)

// postgresRepository implements [Repository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed category store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
List returns every category ordered alphabetically.

Parameters:
  - context: context.Context

Returns:
  - []*Category: All categories
  - error: Execution errors
*/
func (repository *postgresRepository) List(context context.Context) ([]*Category, error) {

	query := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s ORDER BY %s ASC",
		schema.CatalogCategory.ID,
		schema.CatalogCategory.Name,
		schema.CatalogCategory.CreatedAt,
		schema.CatalogCategory.Table,
		schema.CatalogCategory.Name,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var item Category
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan category: %w", err)
		}
		categories = append(categories, &item)
	}

	return categories, nil
}

/*
FindByID returns the category with the given ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Category: Hydrated entity
  - error: apperr.NotFound on absent rows
*/
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Category, error) {

	query := fmt.Sprintf(
		"SELECT %s, %s, %s FROM %s WHERE %s = $1",
		schema.CatalogCategory.ID,
		schema.CatalogCategory.Name,
		schema.CatalogCategory.CreatedAt,
		schema.CatalogCategory.Table,
		schema.CatalogCategory.ID,
	)

	var item Category
	err := repository.pool.QueryRow(context, query, id).Scan(&item.ID, &item.Name, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Category not found")
		}
		return nil, fmt.Errorf("postgres: failed to find category: %w", err)
	}

	return &item, nil
}
