// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package analytics

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davitran/acadia/internal/platform/database/schema"
)

// postgresRepository implements the [Repository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed analytics store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

/*
ListSales returns every enrollment in the instructor's courses.

Description: Flat (title, price) records ordered by purchase time so the
service can group by title in first-sale order. A course with a NULL price
contributes zero.

Parameters:
  - context: context.Context
  - ownerID: string

Returns:
  - []SaleRecord: One record per enrollment
  - error: Execution errors
*/
func (repository *postgresRepository) ListSales(context context.Context, ownerID string) ([]SaleRecord, error) {

	query := fmt.Sprintf(`
		SELECT c.%s, COALESCE(c.%s, 0)
		FROM %s p
		JOIN %s c ON p.%s = c.%s
		WHERE c.%s = $1
		ORDER BY p.%s ASC`,
		schema.CatalogCourse.Title,
		schema.CatalogCourse.Price,
		schema.CommercePurchase.Table,
		schema.CatalogCourse.Table,
		schema.CommercePurchase.CourseID, schema.CatalogCourse.ID,
		schema.CatalogCourse.OwnerID,
		schema.CommercePurchase.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_analytics_repo_list_sales_failed: %w", err)
	}
	defer rows.Close()

	var sales []SaleRecord
	for rows.Next() {
		var record SaleRecord
		if err := rows.Scan(&record.CourseTitle, &record.Price); err != nil {
			return nil, fmt.Errorf("postgres_analytics_repo_scan_failed: %w", err)
		}
		sales = append(sales, record)
	}

	return sales, nil
}
