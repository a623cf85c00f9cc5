// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package attachment

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/davitran/acadia/internal/platform/apperr"
	"github.com/davitran/acadia/internal/platform/validate"
	"github.com/davitran/acadia/pkg/uuidv7"
)

// Service orchestrates course attachment management.
//
// Every operation is owner-gated: only the course's instructor may add,
// list, or remove attachments.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		logger:     logger,
	}
}

/*
Create links a new supplementary file to a course.

Description: The display name is derived from the URL's final path segment,
so "https://cdn.acadia.app/files/syllabus.pdf" shows up as "syllabus.pdf".

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string (authenticated caller)
  - fileURL: string

Returns:
  - *Attachment: Created record
  - err: NotFound, Unauthorized, or validation failures
*/
func (service *Service) Create(context context.Context, courseID, ownerID, fileURL string) (*Attachment, error) {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldURL, fileURL).
		Custom(FieldURL, !isAbsoluteURL(fileURL), "Must be an absolute URL")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	record := &Attachment{
		ID:       uuidv7.New(),
		CourseID: courseID,
		Name:     fileNameFromURL(fileURL),
		URL:      fileURL,
	}

	if err := service.repository.Create(context, record); err != nil {
		return nil, fmt.Errorf("attachment_service_create_failed: %w", err)
	}

	service.logger.Info("attachment_created",
		slog.String("attachment_id", record.ID),
		slog.String("course_id", courseID),
	)

	return record, nil
}

/*
List returns the course's attachments for its owner's editing view.

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string

Returns:
  - []*Attachment: Linked files, newest first
  - err: NotFound, Unauthorized, or storage failures
*/
func (service *Service) List(context context.Context, courseID, ownerID string) ([]*Attachment, error) {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return nil, err
	}

	attachments, err := service.repository.ListByCourse(context, courseID)
	if err != nil {
		return nil, fmt.Errorf("attachment_service_list_failed: %w", err)
	}

	return attachments, nil
}

/*
Delete removes an attachment from a course.

Parameters:
  - context: context.Context
  - courseID: string
  - attachmentID: string
  - ownerID: string

Returns:
  - err: NotFound, Unauthorized, or storage failures
*/
func (service *Service) Delete(context context.Context, courseID, attachmentID, ownerID string) error {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return err
	}

	if err := service.repository.Delete(context, courseID, attachmentID); err != nil {
		return err
	}

	service.logger.Info("attachment_deleted",
		slog.String("attachment_id", attachmentID),
		slog.String("course_id", courseID),
	)

	return nil
}

// # Internal Helpers

// guardOwner resolves the parent course and enforces ownership.
// Non-owners receive Unauthorized to match unauthenticated access.
func (service *Service) guardOwner(context context.Context, courseID, ownerID string) error {
	course, err := service.repository.GetCourseRef(context, courseID)
	if err != nil {
		return err
	}

	if course.OwnerID != ownerID {
		return apperr.Unauthorized("Not allowed to manage this course")
	}

	return nil
}

// isAbsoluteURL reports whether the value parses as an absolute URL.
func isAbsoluteURL(value string) bool {
	parsed, err := url.Parse(value)
	return err == nil && parsed.IsAbs() && parsed.Host != ""
}

// fileNameFromURL derives the display name from the URL's last path segment.
// Falls back to the full URL when the path carries no file name.
func fileNameFromURL(fileURL string) string {
	trimmed := strings.TrimRight(fileURL, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 && idx < len(trimmed)-1 {
		name := trimmed[idx+1:]
		if !strings.Contains(name, ":") {
			return name
		}
	}
	return fileURL
}
