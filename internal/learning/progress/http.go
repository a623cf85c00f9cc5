// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davitran/acadia/internal/platform/middleware"
	requestutil "github.com/davitran/acadia/internal/platform/request"
	"github.com/davitran/acadia/internal/platform/respond"
	"github.com/davitran/acadia/internal/platform/validate"
)

// Handler implements progress HTTP endpoints.
type Handler struct {
	progressService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{progressService: service}
}

// Routes returns a [chi.Router] configured with progress routes.
//
// # Endpoints
//   - PUT /chapters/{chapterID} : Marks a chapter complete/incomplete.
//   - GET /courses/{courseID}   : Returns the caller's course percentage.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Put("/chapters/{chapterID}", handler.markChapter)
	router.Get("/courses/{courseID}", handler.forCourse)

	return router
}

// # Request Payloads

type markChapterRequest struct {
	IsCompleted bool `json:"is_completed"`
}

/*
MarkChapter records the caller's completion state for a chapter.

PUT /api/v1/progress/chapters/{chapterID}

Request:
  - Body: markChapterRequest (IsCompleted)

Response:
  - 200: UserProgress: Recorded state
  - 404: ErrNotFound: Chapter does not exist
*/
func (handler *Handler) markChapter(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input markChapterRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	record, err := handler.progressService.MarkChapter(
		request.Context(),
		userID,
		requestutil.ID(request, "chapterID"),
		input.IsCompleted,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

/*
ForCourse returns the caller's completion percentage for a course.

GET /api/v1/progress/courses/{courseID}

Response:
  - 200: {progress}: Percentage in [0, 100]
*/
func (handler *Handler) forCourse(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	percentage, err := handler.progressService.ForCourse(request.Context(), userID, requestutil.ID(request, "courseID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]float64{"progress": percentage})
}
