// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package category

import (
	"context"
)

// Service orchestrates category lookups.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

/*
List returns all categories for discovery filtering.

Parameters:
  - context: context.Context

Returns:
  - []*Category: All categories in alphabetical order
  - error: Storage failures
*/
func (service *Service) List(context context.Context) ([]*Category, error) {
	return service.repository.List(context)
}
