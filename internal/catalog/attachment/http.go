// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

/*
HTTP delivery layer for course attachments.

Mounted under /courses/{courseID}/attachments; every route is owner-gated.
*/
package attachment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/davitran/acadia/internal/platform/middleware"
	requestutil "github.com/davitran/acadia/internal/platform/request"
	"github.com/davitran/acadia/internal/platform/respond"
	"github.com/davitran/acadia/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements attachment HTTP endpoints.
type Handler struct {
	attachmentService *Service
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{attachmentService: service}
}

// Routes returns a [chi.Router] configured with attachment routes.
//
// # Endpoints
//   - POST   /                : Links a new file to the course.
//   - GET    /                : Lists the course's attachments.
//   - DELETE /{attachmentID}  : Removes the attachment.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/", handler.create)
	router.Get("/", handler.list)
	router.Delete("/{attachmentID}", handler.delete)

	return router
}

// # Request Payloads

type createRequest struct {
	URL string `json:"url"`
}

/*
Create links a new supplementary file to the course.

POST /api/v1/courses/{courseID}/attachments

Request:
  - Body: createRequest (URL)

Response:
  - 201: Attachment: Created record
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

	record, err := handler.attachmentService.Create(request.Context(), requestutil.ID(request, "courseID"), userID, input.URL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

/*
List returns the course's attachments, newest first.

GET /api/v1/courses/{courseID}/attachments

Response:
  - 200: []Attachment: Linked files
  - 401: ErrUnauthorized: Caller does not own the course
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	attachments, err := handler.attachmentService.List(request.Context(), requestutil.ID(request, "courseID"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, attachments)
}

/*
Delete removes an attachment from the course.

DELETE /api/v1/courses/{courseID}/attachments/{attachmentID}

Response:
  - 204: No Content: Attachment deleted
  - 401: ErrUnauthorized: Caller does not own the course
  - 404: ErrNotFound: Attachment does not exist
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.attachmentService.Delete(
		request.Context(),
		requestutil.ID(request, "courseID"),
		requestutil.ID(request, "attachmentID"),
		userID,
	)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
