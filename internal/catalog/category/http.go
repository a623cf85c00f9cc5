// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davitran/acadia/internal/platform/respond"
)

// Handler implements category HTTP endpoints.
type Handler struct {
	categoryService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{categoryService: service}
}

// Routes returns a [chi.Router] with category routes.
//
// # Endpoints
//   - GET / : Lists all categories.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.list)
	return router
}

/*
List returns all categories.

GET /api/v1/categories

Response:
  - 200: []Category: Alphabetically ordered categories
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.categoryService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}
