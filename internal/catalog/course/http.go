// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
HTTP delivery layer for the course catalogue.

# Route Layout

Discovery is public (anonymous viewers see published courses without progress);
everything else operates on the caller's own courses and requires authentication.
*/
package course

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davitran/acadia/internal/platform/middleware"
	requestutil "github.com/davitran/acadia/internal/platform/request"
	"github.com/davitran/acadia/internal/platform/respond"
	"github.com/davitran/acadia/internal/platform/validate"
	"github.com/davitran/acadia/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements course HTTP endpoints.
type Handler struct {
	courseService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{courseService: service}
}

// Routes returns a [chi.Router] configured with course routes.
//
// # Endpoints
//   - GET    /                      : Public discovery listing.
//   - POST   /                      : Creates a draft course (instructors only).
//   - GET    /mine                  : Lists the caller's courses.
//   - GET    /{courseID}            : Owner editing view.
//   - PATCH  /{courseID}            : Partial update.
//   - DELETE /{courseID}            : Deletes the course and its assets.
//   - POST   /{courseID}/publish    : Publishes a complete course.
//   - POST   /{courseID}/unpublish  : Hides the course from discovery.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public discovery
	router.Get("/", handler.discover)

	// Instructor endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Get("/mine", handler.listMine)
		r.Get("/{courseID}", handler.get)
		r.Patch("/{courseID}", handler.update)
		r.Delete("/{courseID}", handler.delete)
		r.Post("/{courseID}/publish", handler.publish)
		r.Post("/{courseID}/unpublish", handler.unpublish)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title string `json:"title"`
}

type updateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url"`
	CategoryID  *string  `json:"category_id"`
	Price       *float64 `json:"price"`
}

/*
Discover lists published courses for browsing.

GET /api/v1/courses?title=...&category_id=...&page=...&limit=...

Description: Anonymous-friendly. Title is a case-sensitive substring match.
Authenticated viewers get per-card progress on courses they own.

Response:
  - 200: []CourseCard: Newest-first published courses with pagination metadata
*/
func (handler *Handler) discover(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	// Viewer identity is optional here
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	filter := DiscoveryFilter{
		Title:      request.URL.Query().Get("title"),
		CategoryID: request.URL.Query().Get("category_id"),
	}

	cards, total, err := handler.courseService.ListPublished(
		request.Context(), viewerID, filter,
		paginationParams.Limit, paginationParams.Offset(),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cards, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
Create initialises a new draft course.

POST /api/v1/courses

Request:
  - Body: createRequest (Title)

Response:
  - 201: Course: Created draft
  - 401: ErrUnauthorized: Caller may not create courses
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	course, err := handler.courseService.Create(request.Context(), claims, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, course)
}

/*
ListMine returns the caller's courses, newest first.

GET /api/v1/courses/mine?page=...&limit=...

Response:
  - 200: []Course: Owned courses (drafts included) with pagination metadata
*/
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	courses, total, err := handler.courseService.ListOwned(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, courses, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
Get returns the owner's editing view of a course.

GET /api/v1/courses/{courseID}

Response:
  - 200: Course: Hydrated entity
  - 401: ErrUnauthorized: Caller does not own the course
  - 404: ErrNotFound: Course does not exist
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	course, err := handler.courseService.Get(request.Context(), requestutil.ID(request, "courseID"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
Update applies partial changes to a course.

PATCH /api/v1/courses/{courseID}

Request:
  - Body: updateRequest (all fields optional)

Response:
  - 200: Course: Updated entity
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Caller does not own the course
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input updateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	course, err := handler.courseService.Update(request.Context(), requestutil.ID(request, "courseID"), userID, UpdateInput{
		Title:       input.Title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CategoryID:  input.CategoryID,
		Price:       input.Price,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, course)
}

/*
Publish makes a complete course visible in discovery.

POST /api/v1/courses/{courseID}/publish

Response:
  - 200: Success: Course published
  - 400: ErrValidation: Course is incomplete
  - 401: ErrUnauthorized: Caller does not own the course
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.courseService.Publish(request.Context(), requestutil.ID(request, "courseID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Course published"})
}

/*
Unpublish hides a course from discovery.

POST /api/v1/courses/{courseID}/unpublish

Description: Idempotent. Published chapters keep their own state.

Response:
  - 200: Success: Course unpublished
  - 401: ErrUnauthorized: Caller does not own the course
*/
func (handler *Handler) unpublish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.courseService.Unpublish(request.Context(), requestutil.ID(request, "courseID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Course unpublished"})
}

/*
Delete removes a course, its chapters, and its remote video assets.

DELETE /api/v1/courses/{courseID}

Response:
  - 204: No Content: Course deleted
  - 401: ErrUnauthorized: Caller does not own the course
  - 404: ErrNotFound: Course does not exist
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.courseService.Delete(request.Context(), requestutil.ID(request, "courseID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
