// Copyright (c) 2026 Acadia Learning. All rights reserved.
// Author: davi.tran.dev@gmail.com

package chapter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/davitran/acadia/internal/platform/apperr"
	"github.com/davitran/acadia/internal/platform/validate"
	"github.com/davitran/acadia/internal/platform/videohost"
	"github.com/davitran/acadia/pkg/uuidv7"
)

// # Contracts & Types

// VideoProvider is the slice of the video host client used by the
// chapter lifecycle (attach, status refresh, teardown).
type VideoProvider interface {
	CreateAsset(context context.Context, uploadURL string) (*videohost.Asset, error)
	GetAsset(context context.Context, assetID string) (*videohost.Asset, error)
	DeleteAsset(context context.Context, assetID string) error
}

// Service orchestrates the chapter lifecycle and its structural invariants.
type Service struct {
	repository    Repository
	videoProvider VideoProvider
	logger        *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(repository Repository, videoProvider VideoProvider, logger *slog.Logger) *Service {
	return &Service{
		repository:    repository,
		videoProvider: videoProvider,
		logger:        logger,
	}
}

// # Draft Lifecycle

/*
Create appends a new draft chapter to a course.

Description: The new chapter lands at the end of the course: its position is
the current maximum plus one, or 1 for the first chapter.

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string (authenticated caller)
  - title: string

Returns:
  - *Chapter: Created draft
  - err: NotFound, Unauthorized, or storage failures
*/
func (service *Service) Create(context context.Context, courseID, ownerID, title string) (*Chapter, error) {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Append-only positioning: max+1, or 1 for the first chapter
	maxPosition, err := service.repository.MaxPosition(context, courseID)
	if err != nil {
		return nil, fmt.Errorf("chapter_service_max_position_failed: %w", err)
	}

	chapter := &Chapter{
		ID:       uuidv7.New(),
		CourseID: courseID,
		Title:    title,
		Position: maxPosition + 1,
	}

	if err := service.repository.Create(context, chapter); err != nil {
		return nil, fmt.Errorf("chapter_service_create_failed: %w", err)
	}

	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("course_id", courseID),
		slog.Int("position", chapter.Position),
	)

	return chapter, nil
}

// UpdateInput carries the optional fields of a chapter update.
// Nil pointers leave the current value untouched.
type UpdateInput struct {
	Title       *string
	Description *string
	IsFree      *bool
}

/*
Update applies partial changes to a chapter.

Parameters:
  - context: context.Context
  - courseID: string
  - chapterID: string
  - ownerID: string
  - input: UpdateInput

Returns:
  - *Chapter: Updated entity
  - err: NotFound, Unauthorized, or storage failures
*/
func (service *Service) Update(context context.Context, courseID, chapterID, ownerID string, input UpdateInput) (*Chapter, error) {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return nil, err
	}

	chapter, err := service.repository.FindByID(context, courseID, chapterID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		validator := &validate.Validator{}
		validator.Required(FieldTitle, *input.Title).MaxLen(FieldTitle, *input.Title, 200)
		if err := validator.Err(); err != nil {
			return nil, err
		}
		chapter.Title = *input.Title
	}
	if input.Description != nil {
		chapter.Description = *input.Description
	}
	if input.IsFree != nil {
		chapter.IsFree = *input.IsFree
	}

	if err := service.repository.Update(context, chapter); err != nil {
		return nil, fmt.Errorf("chapter_service_update_failed: %w", err)
	}

	return chapter, nil
}

/*
AttachVideo ingests a source video for a chapter, replacing any prior asset.

Description: The previous remote asset (if any) is deleted from the provider
on a best-effort basis before the replacement is created. The chapter keeps
the raw source URL; playback uses the provider's playback ID.

Parameters:
  - context: context.Context
  - courseID: string
  - chapterID: string
  - ownerID: string
  - uploadURL: string

Returns:
  - *VideoAsset: New provider asset link
  - err: NotFound, Unauthorized, provider, or storage failures
*/
func (service *Service) AttachVideo(context context.Context, courseID, chapterID, ownerID, uploadURL string) (*VideoAsset, error) {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return nil, err
	}

	chapter, err := service.repository.FindByID(context, courseID, chapterID)
	if err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldUploadURL, uploadURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Tear down the previous remote asset before replacing it.
	// Best-effort: an orphaned provider asset must not block the re-upload.
	if existing, err := service.repository.FindVideoAsset(context, chapterID); err == nil {
		if err := service.videoProvider.DeleteAsset(context, existing.AssetID); err != nil {
			service.logger.Warn("chapter_stale_asset_cleanup_failed",
				slog.String("chapter_id", chapterID),
				slog.String("asset_id", existing.AssetID),
				slog.Any("error", err),
			)
		}
	}

	// Submit the new source to the provider
	remote, err := service.videoProvider.CreateAsset(context, uploadURL)
	if err != nil {
		return nil, err
	}

	asset := &VideoAsset{
		ID:         uuidv7.New(),
		ChapterID:  chapterID,
		AssetID:    remote.AssetID,
		PlaybackID: remote.PlaybackID,
		IsReady:    remote.Ready,
	}

	if err := service.repository.ReplaceVideoAsset(context, asset); err != nil {
		return nil, fmt.Errorf("chapter_service_replace_asset_failed: %w", err)
	}

	// Record the raw source URL on the chapter itself
	chapter.VideoURL = uploadURL
	if err := service.repository.Update(context, chapter); err != nil {
		return nil, fmt.Errorf("chapter_service_video_url_update_failed: %w", err)
	}

	service.logger.Info("chapter_video_attached",
		slog.String("chapter_id", chapterID),
		slog.String("asset_id", asset.AssetID),
	)

	return asset, nil
}

// # Ordering

/*
Reorder rewrites chapter positions from a client-supplied layout.

Description: Each entry is applied as an independent write; the batch is not
transactional, matching the append-only position model. Entries referencing
chapters outside the course are silently ignored by the scoped update.

Parameters:
  - context: context.Context
  - courseID: string
  - ownerID: string
  - updates: []PositionUpdate

Returns:
  - err: NotFound, Unauthorized, or batch failures
*/
func (service *Service) Reorder(context context.Context, courseID, ownerID string, updates []PositionUpdate) error {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Custom(FieldPositions, len(updates) == 0, "At least one position update is required")
	for _, update := range updates {
		validator.Custom(FieldPositions, update.ChapterID == "", "Chapter ID is required").
			Custom(FieldPositions, update.Position < 1, "Positions start at 1")
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.UpdatePositions(context, courseID, updates); err != nil {
		return fmt.Errorf("chapter_service_reorder_failed: %w", err)
	}

	service.logger.Info("chapters_reordered",
		slog.String("course_id", courseID),
		slog.Int("count", len(updates)),
	)

	return nil
}

// # Publication Lifecycle

/*
Publish makes a chapter visible to learners.

Description: A chapter may only be published once its title and description
are filled in and its video asset has finished processing. Transcoding is
asynchronous, so an asset still marked processing is re-queried at the
provider and the refreshed state is persisted before the gate is applied.

Parameters:
  - context: context.Context
  - courseID: string
  - chapterID: string
  - ownerID: string

Returns:
  - err: NotFound, Unauthorized, or validation failures
*/
func (service *Service) Publish(context context.Context, courseID, chapterID, ownerID string) error {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return err
	}

	chapter, err := service.repository.FindByID(context, courseID, chapterID)
	if err != nil {
		return err
	}

	// Content completeness gate
	asset, assetErr := service.repository.FindVideoAsset(context, chapterID)
	if assetErr == nil && !asset.IsReady {
		service.refreshAssetStatus(context, asset)
	}
	hasReadyVideo := assetErr == nil && asset.IsReady

	validator := &validate.Validator{}
	validator.Custom(FieldTitle, chapter.Title == "", "Title is required").
		Custom(FieldDescription, chapter.Description == "", "Description is required").
		Custom(FieldVideo, !hasReadyVideo, "A processed video is required")

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repository.SetPublished(context, chapterID, true); err != nil {
		return fmt.Errorf("chapter_service_publish_failed: %w", err)
	}

	service.logger.Info("chapter_published",
		slog.String("chapter_id", chapterID),
		slog.String("course_id", courseID),
	)

	return nil
}

/*
Unpublish hides a chapter from learners.

Description: Unconditional and idempotent; the chapter's existence is not
re-checked before the flip. If the course is left with zero published
chapters, the course itself is force-unpublished so discovery never lists
an empty course.

Parameters:
  - context: context.Context
  - courseID: string
  - chapterID: string
  - ownerID: string

Returns:
  - err: NotFound (course), Unauthorized, or storage failures
*/
func (service *Service) Unpublish(context context.Context, courseID, chapterID, ownerID string) error {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return err
	}

	if err := service.repository.SetPublished(context, chapterID, false); err != nil {
		return fmt.Errorf("chapter_service_unpublish_failed: %w", err)
	}

	if err := service.cascadeCourseUnpublish(context, courseID); err != nil {
		return err
	}

	service.logger.Info("chapter_unpublished",
		slog.String("chapter_id", chapterID),
		slog.String("course_id", courseID),
	)

	return nil
}

/*
Delete permanently removes a chapter.

Description: The remote video asset (if any) is deleted from the provider on
a best-effort basis first. Deleting the last published chapter triggers the
same empty-course cascade as Unpublish.

Parameters:
  - context: context.Context
  - courseID: string
  - chapterID: string
  - ownerID: string

Returns:
  - err: NotFound, Unauthorized, or storage failures
*/
func (service *Service) Delete(context context.Context, courseID, chapterID, ownerID string) error {

	if err := service.guardOwner(context, courseID, ownerID); err != nil {
		return err
	}

	if _, err := service.repository.FindByID(context, courseID, chapterID); err != nil {
		return err
	}

	// Best-effort teardown of the remote asset
	if asset, err := service.repository.FindVideoAsset(context, chapterID); err == nil {
		if err := service.videoProvider.DeleteAsset(context, asset.AssetID); err != nil {
			service.logger.Warn("chapter_asset_cleanup_failed",
				slog.String("chapter_id", chapterID),
				slog.String("asset_id", asset.AssetID),
				slog.Any("error", err),
			)
		}
	}

	if err := service.repository.Delete(context, chapterID); err != nil {
		return fmt.Errorf("chapter_service_delete_failed: %w", err)
	}

	if err := service.cascadeCourseUnpublish(context, courseID); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted",
		slog.String("chapter_id", chapterID),
		slog.String("course_id", courseID),
	)

	return nil
}

// # Learner Access

/*
GetForLearner returns a member's view of a published chapter.

Description: The video is included only when the chapter is free or the
viewer has purchased the course; otherwise the view is locked.

Parameters:
  - context: context.Context
  - userID: string (empty for anonymous viewers)
  - courseID: string
  - chapterID: string

Returns:
  - *LearnerView: Chapter with gated video access
  - err: NotFound or storage failures
*/
func (service *Service) GetForLearner(context context.Context, userID, courseID, chapterID string) (*LearnerView, error) {

	course, err := service.repository.GetCourseRef(context, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, apperr.NotFound("Course not found")
	}

	chapter, err := service.repository.FindByID(context, courseID, chapterID)
	if err != nil {
		return nil, err
	}
	if !chapter.IsPublished {
		return nil, apperr.NotFound("Chapter not found")
	}

	// Access gate: free chapters are open, paid ones require enrollment
	unlocked := chapter.IsFree
	if !unlocked && userID != "" {
		purchased, err := service.repository.HasPurchase(context, userID, courseID)
		if err != nil {
			return nil, fmt.Errorf("chapter_service_purchase_check_failed: %w", err)
		}
		unlocked = purchased
	}

	view := &LearnerView{
		Chapter: *chapter,
		Locked:  !unlocked,
	}

	if unlocked {
		if asset, err := service.repository.FindVideoAsset(context, chapterID); err == nil {
			view.Video = asset
		}
	}

	return view, nil
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

// refreshAssetStatus re-queries the provider for an asset still marked
// processing and persists the result when transcoding has completed.
// Provider failures leave the stored state untouched; the publish gate
// then rejects the chapter as usual.
func (service *Service) refreshAssetStatus(context context.Context, asset *VideoAsset) {
	remote, err := service.videoProvider.GetAsset(context, asset.AssetID)
	if err != nil {
		service.logger.Warn("chapter_asset_status_refresh_failed",
			slog.String("chapter_id", asset.ChapterID),
			slog.String("asset_id", asset.AssetID),
			slog.Any("error", err),
		)
		return
	}

	if !remote.Ready {
		return
	}

	asset.IsReady = true
	if remote.PlaybackID != "" {
		asset.PlaybackID = remote.PlaybackID
	}

	if err := service.repository.ReplaceVideoAsset(context, asset); err != nil {
		service.logger.Warn("chapter_asset_status_persist_failed",
			slog.String("chapter_id", asset.ChapterID),
			slog.String("asset_id", asset.AssetID),
			slog.Any("error", err),
		)
	}
}

// cascadeCourseUnpublish hides the course when no published chapters remain.
func (service *Service) cascadeCourseUnpublish(context context.Context, courseID string) error {
	remaining, err := service.repository.CountPublished(context, courseID)
	if err != nil {
		return fmt.Errorf("chapter_service_cascade_count_failed: %w", err)
	}

	if remaining > 0 {
		return nil
	}

	if err := service.repository.SetCoursePublished(context, courseID, false); err != nil {
		return fmt.Errorf("chapter_service_cascade_unpublish_failed: %w", err)
	}

	service.logger.Info("course_unpublished_empty_cascade", slog.String("course_id", courseID))

	return nil
}
