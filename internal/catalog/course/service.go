// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package course

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davitran/acadia/internal/platform/apperr"
	"github.com/davitran/acadia/internal/platform/sec"
	"github.com/davitran/acadia/internal/platform/validate"
	"github.com/davitran/acadia/pkg/slug"
	"github.com/davitran/acadia/pkg/uuidv7"
)

// # Contracts & Types

// VideoProvider is the slice of the video host client the course
// lifecycle needs (asset teardown on course deletion).
type VideoProvider interface {
	DeleteAsset(context context.Context, assetID string) error
}

// Service orchestrates the course lifecycle.
//
// Ownership is enforced on every mutating operation: callers that do not
// own the target course are rejected as unauthorized rather than being
// told the course exists.
type Service struct {
	repository     Repository
	teacherPolicy  sec.TeacherPolicy
	videoProvider  VideoProvider
	progressReader ProgressReader
	logger         *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(
	repository Repository,
	teacherPolicy sec.TeacherPolicy,
	videoProvider VideoProvider,
	progressReader ProgressReader,
	logger *slog.Logger,
) *Service {
	return &Service{
		repository:     repository,
		teacherPolicy:  teacherPolicy,
		videoProvider:  videoProvider,
		progressReader: progressReader,
		logger:         logger,
	}
}

// # Draft Lifecycle

/*
Create initialises a new draft course for an instructor.

Description: Gated by the teacher policy. The course starts unpublished
with only a title; everything else is filled in later via Update.

Parameters:
  - context: context.Context
  - claims: *sec.AuthClaims (authenticated caller)
  - title: string

Returns:
  - *Course: Created draft
  - err: Unauthorized if the caller may not create courses
*/
func (service *Service) Create(context context.Context, claims *sec.AuthClaims, title string) (*Course, error) {

	// Course creation is restricted to accounts with instructor capability
	if !service.teacherPolicy.IsTeacher(claims) {
		return nil, apperr.Unauthorized("Not allowed to create courses")
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	course := &Course{
		ID:      uuidv7.New(),
		OwnerID: claims.UserID,
		Title:   title,
		Slug:    slug.From(title) + "-" + shortID(),
	}

	if err := service.repository.Create(context, course); err != nil {
		return nil, fmt.Errorf("course_service_create_failed: %w", err)
	}

	service.logger.Info("course_created",
		slog.String("course_id", course.ID),
		slog.String("owner_id", course.OwnerID),
	)

	return course, nil
}

/*
Get returns a course for its owner's editing view.

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string

Returns:
  - *Course: Hydrated entity
  - err: NotFound or Unauthorized
*/
func (service *Service) Get(context context.Context, courseID, ownerID string) (*Course, error) {
	return service.findOwned(context, courseID, ownerID)
}

/*
ListOwned returns a page of the instructor's courses, newest first.

Parameters:
  - context: context.Context
  - ownerID: string
  - limit: int
  - offset: int

Returns:
  - []*Course: Owned courses
  - int: Total owned count
  - err: Storage failures
*/
func (service *Service) ListOwned(context context.Context, ownerID string, limit, offset int) ([]*Course, int, error) {
	return service.repository.ListByOwner(context, ownerID, limit, offset)
}

// UpdateInput carries the optional fields of a course update.
// Nil pointers leave the current value untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	CategoryID  *string
	Price       *float64
}

/*
Update applies partial changes to a draft or published course.

Description: Only the owner may edit. The publication flag is never
touched here; it is managed exclusively by Publish/Unpublish.

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string
  - input: UpdateInput

Returns:
  - *Course: Updated entity
  - err: NotFound, Unauthorized, or storage failures
*/
func (service *Service) Update(context context.Context, courseID, ownerID string, input UpdateInput) (*Course, error) {

	course, err := service.findOwned(context, courseID, ownerID)
	if err != nil {
		return nil, err
	}

	// Apply only the provided fields
	if input.Title != nil {
		validator := &validate.Validator{}
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.ImageURL != nil {
		course.ImageURL = *input.ImageURL
	}
	if input.CategoryID != nil {
		if *input.CategoryID == "" {
			course.CategoryID = nil
		} else {
			course.CategoryID = input.CategoryID
		}
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldPrice,
				Message: "Price cannot be negative",
			})
		}
		course.Price = input.Price
	}

	if err := service.repository.Update(context, course); err != nil {
		return nil, fmt.Errorf("course_service_update_failed: %w", err)
	}

	return course, nil
}

// # Publication Lifecycle

/*
Publish makes a course visible in discovery.

Description: A course may only be published when its required fields are
complete AND it has at least one published chapter. Incomplete courses
are rejected with a field-level validation error.

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string

Returns:
  - err: NotFound, Unauthorized, or validation failures
*/
func (service *Service) Publish(context context.Context, courseID, ownerID string) error {

	course, err := service.findOwned(context, courseID, ownerID)
	if err != nil {
		return err
	}

	publishedChapters, err := service.repository.CountPublishedChapters(context, courseID)
	if err != nil {
		return fmt.Errorf("course_service_count_chapters_failed: %w", err)
	}

	// Completeness gate: all required fields plus at least one published chapter
	validator := &validate.Validator{}
	validator.Custom(FieldTitle, course.Title == "", "Title is required").
		Custom(FieldDescription, course.Description == "", "Description is required").
		Custom(FieldImageURL, course.ImageURL == "", "Image is required").
		Custom(FieldCategoryID, course.CategoryID == nil, "Category is required").
		Custom(FieldChapters, publishedChapters == 0, "At least one published chapter is required")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.SetPublished(context, courseID, true); err != nil {
		return fmt.Errorf("course_service_publish_failed: %w", err)
	}

	service.logger.Info("course_published", slog.String("course_id", courseID))

	return nil
}

/*
Unpublish removes a course from discovery.

Description: Unconditional and idempotent. Already-unpublished courses
succeed without modification.

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string

Returns:
  - err: NotFound, Unauthorized, or storage failures
*/
func (service *Service) Unpublish(context context.Context, courseID, ownerID string) error {

	if _, err := service.findOwned(context, courseID, ownerID); err != nil {
		return err
	}

	if err := service.repository.SetPublished(context, courseID, false); err != nil {
		return fmt.Errorf("course_service_unpublish_failed: %w", err)
	}

	service.logger.Info("course_unpublished", slog.String("course_id", courseID))

	return nil
}

/*
Delete permanently removes a course and everything it owns.

Description: Remote video assets are deleted from the provider first on a
best-effort basis; a provider failure is logged but never blocks the
database deletion. Chapters, purchases, and progress rows cascade.

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string

Returns:
  - err: NotFound, Unauthorized, or storage failures
*/
func (service *Service) Delete(context context.Context, courseID, ownerID string) error {

	if _, err := service.findOwned(context, courseID, ownerID); err != nil {
		return err
	}

	// Best-effort teardown of remote video assets
	assetIDs, err := service.repository.ListVideoAssetIDs(context, courseID)
	if err != nil {
		service.logger.Warn("course_asset_listing_failed",
			slog.String("course_id", courseID),
			slog.Any("error", err),
		)
	}

	for _, assetID := range assetIDs {
		if err := service.videoProvider.DeleteAsset(context, assetID); err != nil {
			service.logger.Warn("course_asset_cleanup_failed",
				slog.String("course_id", courseID),
				slog.String("asset_id", assetID),
				slog.Any("error", err),
			)
		}
	}

	if err := service.repository.Delete(context, courseID); err != nil {
		return fmt.Errorf("course_service_delete_failed: %w", err)
	}

	service.logger.Info("course_deleted", slog.String("course_id", courseID))

	return nil
}

// # Internal Helpers

// findOwned loads a course and enforces ownership.
//
// Non-owners receive Unauthorized rather than NotFound so the error shape
// matches unauthenticated access and does not leak course existence details
// to other instructors.
func (service *Service) findOwned(context context.Context, courseID, ownerID string) (*Course, error) {
	course, err := service.repository.FindByID(context, courseID)
	if err != nil {
		return nil, err
	}

	if course.OwnerID != ownerID {
		return nil, apperr.Unauthorized("Not allowed to manage this course")
	}

	return course, nil
}

// shortID returns the trailing segment of a fresh UUID for slug uniqueness.
func shortID() string {
	id := uuidv7.New()
	return id[len(id)-12:]
}
