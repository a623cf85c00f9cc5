// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
HTTP delivery layer for chapters.

Mounted under /courses/{courseID}/chapters so every route inherits the
course scope from the URL.
*/
package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davitran/acadia/internal/platform/middleware"
	requestutil "github.com/davitran/acadia/internal/platform/request"
	"github.com/davitran/acadia/internal/platform/respond"
	"github.com/davitran/acadia/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements chapter HTTP endpoints.
type Handler struct {
	chapterService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{chapterService: service}
}

// Routes returns a [chi.Router] configured with chapter routes.
//
// # Endpoints
//   - POST   /                        : Appends a draft chapter.
//   - POST   /reorder                 : Rewrites chapter positions.
//   - GET    /{chapterID}             : Learner view (video gated).
//   - PATCH  /{chapterID}             : Partial update.
//   - DELETE /{chapterID}             : Deletes the chapter.
//   - PUT    /{chapterID}/video       : Attaches/replaces the video.
//   - POST   /{chapterID}/publish     : Publishes a complete chapter.
//   - POST   /{chapterID}/unpublish   : Hides the chapter.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Learner view works for anonymous viewers too (free chapters)
	router.Get("/{chapterID}", handler.getForLearner)

	// Instructor endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", handler.create)
		r.Post("/reorder", handler.reorder)
		r.Patch("/{chapterID}", handler.update)
		r.Delete("/{chapterID}", handler.delete)
		r.Put("/{chapterID}/video", handler.attachVideo)
		r.Post("/{chapterID}/publish", handler.publish)
		r.Post("/{chapterID}/unpublish", handler.unpublish)
	})

	return router
}

// # Request Payloads

type createRequest struct {
	Title string `json:"title"`
}

type updateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsFree      *bool   `json:"is_free"`
}

type attachVideoRequest struct {
	UploadURL string `json:"upload_url"`
}

type reorderRequest struct {
	List []reorderItem `json:"list"`
}

type reorderItem struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

/*
Create appends a new draft chapter to the course.

POST /api/v1/courses/{courseID}/chapters

Request:
  - Body: createRequest (Title)

Response:
  - 201: Chapter: Created draft at the end of the course
  - 401: ErrUnauthorized: Caller does not own the course
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	chapter, err := handler.chapterService.Create(request.Context(), requestutil.ID(request, "courseID"), userID, input.Title)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, chapter)
}

/*
GetForLearner returns the member view of a published chapter.

GET /api/v1/courses/{courseID}/chapters/{chapterID}

Response:
  - 200: LearnerView: Chapter with gated video access
  - 404: ErrNotFound: Chapter or course not published
*/
func (handler *Handler) getForLearner(writer http.ResponseWriter, request *http.Request) {

	// Viewer identity is optional here
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	view, err := handler.chapterService.GetForLearner(
		request.Context(),
		viewerID,
		requestutil.ID(request, "courseID"),
		requestutil.ID(request, "chapterID"),
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, view)
}

/*
Update applies partial changes to a chapter.

PATCH /api/v1/courses/{courseID}/chapters/{chapterID}

Request:
  - Body: updateRequest (all fields optional)

Response:
  - 200: Chapter: Updated entity
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

	chapter, err := handler.chapterService.Update(
		request.Context(),
		requestutil.ID(request, "courseID"),
		requestutil.ID(request, "chapterID"),
		userID,
		UpdateInput{
			Title:       input.Title,
			Description: input.Description,
			IsFree:      input.IsFree,
		},
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

/*
AttachVideo submits a source video for the chapter.

PUT /api/v1/courses/{courseID}/chapters/{chapterID}/video

Request:
  - Body: attachVideoRequest (UploadURL)

Response:
  - 200: VideoAsset: New provider asset link
  - 503: ErrServiceUnavailable: Video provider failure
*/
func (handler *Handler) attachVideo(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input attachVideoRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	asset, err := handler.chapterService.AttachVideo(
		request.Context(),
		requestutil.ID(request, "courseID"),
		requestutil.ID(request, "chapterID"),
		userID,
		input.UploadURL,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, asset)
}

/*
Reorder rewrites the positions of the course's chapters.

POST /api/v1/courses/{courseID}/chapters/reorder

Request:
  - Body: reorderRequest (List of {id, position})

Response:
  - 200: Success: Positions updated
  - 401: ErrUnauthorized: Caller does not own the course
*/
func (handler *Handler) reorder(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input reorderRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updates := make([]PositionUpdate, 0, len(input.List))
	for _, item := range input.List {
		updates = append(updates, PositionUpdate{ChapterID: item.ID, Position: item.Position})
	}

	if err := handler.chapterService.Reorder(request.Context(), requestutil.ID(request, "courseID"), userID, updates); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Chapters reordered"})
}

/*
Publish makes a complete chapter visible to learners.

POST /api/v1/courses/{courseID}/chapters/{chapterID}/publish

Response:
  - 200: Success: Chapter published
  - 400: ErrValidation: Chapter is incomplete or video not processed
*/
func (handler *Handler) publish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.chapterService.Publish(
		request.Context(),
		requestutil.ID(request, "courseID"),
		requestutil.ID(request, "chapterID"),
		userID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Chapter published"})
}

/*
Unpublish hides a chapter from learners.

POST /api/v1/courses/{courseID}/chapters/{chapterID}/unpublish

Description: If this was the course's last published chapter, the course
itself is unpublished as well.

Response:
  - 200: Success: Chapter unpublished
  - 401: ErrUnauthorized: Caller does not own the course
*/
func (handler *Handler) unpublish(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.chapterService.Unpublish(
		request.Context(),
		requestutil.ID(request, "courseID"),
		requestutil.ID(request, "chapterID"),
		userID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Chapter unpublished"})
}

/*
Delete removes a chapter and its remote video asset.

DELETE /api/v1/courses/{courseID}/chapters/{chapterID}

Response:
  - 204: No Content: Chapter deleted
  - 404: ErrNotFound: Chapter does not exist
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.chapterService.Delete(
		request.Context(),
		requestutil.ID(request, "courseID"),
		requestutil.ID(request, "chapterID"),
		userID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
