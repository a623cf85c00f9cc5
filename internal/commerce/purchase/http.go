// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package purchase

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davitran/acadia/internal/platform/middleware"
	requestutil "github.com/davitran/acadia/internal/platform/request"
	"github.com/davitran/acadia/internal/platform/respond"
	"github.com/davitran/acadia/pkg/pagination"
)

// Handler implements enrollment HTTP endpoints.
type Handler struct {
	purchaseService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{purchaseService: service}
}

// Routes returns a [chi.Router] configured with enrollment routes.
//
// # Endpoints
//   - POST /{courseID} : Enrolls the caller in a course.
//   - GET  /           : Lists the caller's enrollments.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/{courseID}", handler.enroll)
	router.Get("/", handler.list)

	return router
}

/*
Enroll purchases a course for the caller.

POST /api/v1/enrollments/{courseID}

Response:
  - 201: Purchase: Recorded enrollment
  - 403: ErrForbidden: Caller owns the course
  - 404: ErrNotFound: Course absent or unpublished
  - 409: ErrConflict: Already enrolled
*/
func (handler *Handler) enroll(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.purchaseService.Enroll(request.Context(), userID, requestutil.ID(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

/*
List returns the caller's enrollments, newest first.

GET /api/v1/enrollments?page=...&limit=...

Response:
  - 200: []Purchase: Enrollments with pagination metadata
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	purchases, total, err := handler.purchaseService.ListOwned(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, purchases, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
