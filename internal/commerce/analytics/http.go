// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davitran/acadia/internal/platform/middleware"
	requestutil "github.com/davitran/acadia/internal/platform/request"
	"github.com/davitran/acadia/internal/platform/respond"
)

// Handler implements revenue reporting HTTP endpoints.
type Handler struct {
	analyticsService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{analyticsService: service}
}

// Routes returns a [chi.Router] configured with analytics routes.
//
// # Endpoints
//   - GET / : The caller's revenue report.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Get("/", handler.report)

	return router
}

/*
Report returns the caller's revenue summary.

GET /api/v1/analytics

Response:
  - 200: Report: Grouped revenue, total revenue and sale count
*/
func (handler *Handler) report(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.analyticsService.ForInstructor(request.Context(), userID))
}
