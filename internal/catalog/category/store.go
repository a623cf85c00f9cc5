// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package category

import "context"

// Repository defines the data access contract for categories.
type Repository interface {

	/*
		List returns every category ordered alphabetically.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Category: All categories
		  - error: Retrieval failures
	*/
	List(context context.Context) ([]*Category, error)

	/*
		FindByID returns the category with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Category: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id string) (*Category, error)
}
